// Package studentrepo provides read-only Postgres adapters over the
// platform's directory tables: students, schools and staff access grants.
// The order core never writes these tables; they are owned by the directory
// service and shared through the common relational store.
package studentrepo

import (
	"context"
	"errors"

	"mealorder/internal/core/domain/model/kernel"
	"mealorder/internal/core/domain/model/student"
	"mealorder/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CodeStudentNotFound is the machine-readable code for missing students.
const CodeStudentNotFound = "STUDENT_NOT_FOUND"

// StudentDTO maps the directory's students table.
type StudentDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParentID uuid.UUID `gorm:"type:uuid;index"`
	SchoolID uuid.UUID `gorm:"type:uuid;index"`
	Active   bool
}

// TableName overrides GORM's default naming to use "students".
func (StudentDTO) TableName() string {
	return "students"
}

// SchoolDTO maps the directory's schools table.
type SchoolDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Active bool
}

// TableName overrides GORM's default naming to use "schools".
func (SchoolDTO) TableName() string {
	return "schools"
}

// StaffGrantDTO maps the staff access grants table: one row per staff member
// per school they may manage orders for.
type StaffGrantDTO struct {
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	SchoolID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Active   bool
}

// TableName overrides GORM's default naming to use "staff_access_grants".
func (StaffGrantDTO) TableName() string {
	return "staff_access_grants"
}

// GormStudentDirectory implements ports.StudentDirectory and
// ports.AccessGrants over the shared directory tables.
type GormStudentDirectory struct {
	db *gorm.DB
}

// NewGormStudentDirectory creates a directory adapter over the given
// connection.
func NewGormStudentDirectory(db *gorm.DB) *GormStudentDirectory {
	return &GormStudentDirectory{db: db}
}

// GetStudent retrieves a student together with its school's active flag.
func (d *GormStudentDirectory) GetStudent(ctx context.Context, id kernel.UUID) (student.Student, error) {
	if err := id.Validate(); err != nil {
		return student.Student{}, err
	}

	var dto StudentDTO
	err := d.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return student.Student{}, errs.NewObjectNotFoundError(CodeStudentNotFound, "studentId", id.String())
		}
		return student.Student{}, errs.NewDependencyError("student directory", err)
	}

	var school SchoolDTO
	err = d.db.WithContext(ctx).First(&school, "id = ?", dto.SchoolID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// A student pointing at a missing school is treated as an
			// inactive school, not a lookup failure.
			school = SchoolDTO{ID: dto.SchoolID, Active: false}
		} else {
			return student.Student{}, errs.NewDependencyError("student directory", err)
		}
	}

	studentID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return student.Student{}, err
	}
	parentID, err := kernel.UUIDFromBytes(dto.ParentID[:])
	if err != nil {
		return student.Student{}, err
	}
	schoolID, err := kernel.UUIDFromBytes(dto.SchoolID[:])
	if err != nil {
		return student.Student{}, err
	}

	return student.NewStudent(studentID, parentID, schoolID, dto.Active, school.Active)
}

// HasStaffAccess reports whether the user holds an active staff grant for the
// school.
func (d *GormStudentDirectory) HasStaffAccess(
	ctx context.Context,
	userID, schoolID kernel.UUID,
) (bool, error) {
	if err := errors.Join(userID.Validate(), schoolID.Validate()); err != nil {
		return false, err
	}

	var count int64
	err := d.db.WithContext(ctx).
		Model(&StaffGrantDTO{}).
		Where("user_id = ? AND school_id = ? AND active", userID.Bytes(), schoolID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, errs.NewDependencyError("staff access grants", err)
	}

	return count > 0, nil
}
