package services

import (
	"context"

	"mealorder/internal/core/domain/model/actor"
	"mealorder/internal/core/domain/model/kernel"
	"mealorder/internal/core/domain/model/student"
	"mealorder/internal/core/ports"
	"mealorder/internal/pkg/errs"
)

// Authorization error codes returned by Authorizer.
const (
	CodeStudentInactive = "STUDENT_INACTIVE"
	CodeSchoolInactive  = "SCHOOL_INACTIVE"
	CodeNotAuthorized   = "NOT_AUTHORIZED"
)

// Authorizer decides whether an acting identity may place or manage orders
// for a target student.
//
// Check order matters: existence and active-state checks run before ownership
// so a non-owner cannot learn more about another student than a legitimate
// caller would, while legitimate callers still get actionable errors.
type Authorizer struct {
	directory ports.StudentDirectory
	grants    ports.AccessGrants
}

// NewAuthorizer creates an Authorizer over the directory and staff access
// grant lookups.
func NewAuthorizer(directory ports.StudentDirectory, grants ports.AccessGrants) Authorizer {
	return Authorizer{directory: directory, grants: grants}
}

// AuthorizeForStudent checks that the actor may act on the student's orders
// and returns the student for order attribution.
//
// Algorithm: fetch the student (STUDENT_NOT_FOUND propagates from the
// directory); reject inactive students and inactive schools; admins and
// system actors pass unconditionally; otherwise the actor must be the
// student's guardian or hold a staff access grant for the student's school.
func (a Authorizer) AuthorizeForStudent(
	ctx context.Context,
	act actor.Actor,
	studentID kernel.UUID,
) (student.Student, error) {
	if err := act.Validate(); err != nil {
		return student.Student{}, err
	}

	target, err := a.directory.GetStudent(ctx, studentID)
	if err != nil {
		return student.Student{}, err
	}

	if !target.IsActive() {
		return student.Student{}, errs.NewAuthorizationError(
			CodeStudentInactive,
			"orders cannot be placed for an inactive student",
		)
	}

	if !target.IsSchoolActive() {
		return student.Student{}, errs.NewAuthorizationError(
			CodeSchoolInactive,
			"orders cannot be placed for a student of an inactive school",
		)
	}

	if act.Role() == actor.RoleAdmin || act.Role() == actor.RoleSystem {
		return target, nil
	}

	if target.IsParent(act.ID()) {
		return target, nil
	}

	hasGrant, err := a.grants.HasStaffAccess(ctx, act.ID(), target.SchoolID())
	if err != nil {
		return student.Student{}, err
	}
	if hasGrant {
		return target, nil
	}

	return student.Student{}, errs.NewAuthorizationError(
		CodeNotAuthorized,
		"actor is neither the student's guardian nor staff of the student's school",
	)
}
