// Package student holds the read-only view of a student this core consumes.
// Students are owned by the platform directory; the order core never mutates
// them, it only reads them for authorization and order attribution.
package student

import (
	"mealorder/internal/core/domain/model/kernel"
	"mealorder/internal/pkg/errs"
)

// Student is the directory's view of a student, as needed for order
// authorization: who the guardian is, which school the student attends, and
// whether both are active.
type Student struct {
	id           kernel.UUID
	parentID     kernel.UUID
	schoolID     kernel.UUID
	active       bool
	schoolActive bool
}

// NewStudent builds the read model from directory data.
func NewStudent(id, parentID, schoolID kernel.UUID, active, schoolActive bool) (Student, error) {
	if err := id.Validate(); err != nil {
		return Student{}, errs.NewValueIsRequiredErrorWithCause("student id", err)
	}
	if err := parentID.Validate(); err != nil {
		return Student{}, errs.NewValueIsRequiredErrorWithCause("student parent id", err)
	}
	if err := schoolID.Validate(); err != nil {
		return Student{}, errs.NewValueIsRequiredErrorWithCause("student school id", err)
	}

	return Student{
		id:           id,
		parentID:     parentID,
		schoolID:     schoolID,
		active:       active,
		schoolActive: schoolActive,
	}, nil
}

// ID returns the student's identifier.
func (s Student) ID() kernel.UUID { return s.id }

// ParentID returns the guardian's user identifier.
func (s Student) ParentID() kernel.UUID { return s.parentID }

// SchoolID returns the identifier of the school the student attends.
func (s Student) SchoolID() kernel.UUID { return s.schoolID }

// IsActive reports whether the student record is active.
func (s Student) IsActive() bool { return s.active }

// IsSchoolActive reports whether the student's school is active.
func (s Student) IsSchoolActive() bool { return s.schoolActive }

// IsParent reports whether the given user is the student's guardian.
func (s Student) IsParent(userID kernel.UUID) bool {
	return s.parentID.IsEqual(userID)
}
