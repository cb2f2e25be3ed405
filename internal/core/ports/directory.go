package ports

import (
	"context"

	"mealorder/internal/core/domain/model/kernel"
	"mealorder/internal/core/domain/model/student"
)

// StudentDirectory is the read-only view onto the platform's student records.
// The order core uses it only for authorization and order attribution.
type StudentDirectory interface {
	// GetStudent retrieves a student with its school's active flag.
	// A missing student surfaces as an ObjectNotFoundError with code
	// STUDENT_NOT_FOUND; an unreachable directory as a DependencyError.
	GetStudent(ctx context.Context, id kernel.UUID) (student.Student, error)
}

// AccessGrants is the secondary lookup consulted when an actor is neither the
// student's guardian nor a privileged role: school staff may hold an explicit
// grant for a school's students.
type AccessGrants interface {
	// HasStaffAccess reports whether userID holds an active staff grant for
	// the school.
	HasStaffAccess(ctx context.Context, userID, schoolID kernel.UUID) (bool, error)
}
