package queries

import (
	"errors"
	"time"

	"mealorder/internal/core/domain/model/actor"
	"mealorder/internal/core/domain/model/kernel"
	"mealorder/internal/pkg/errs"
	"mealorder/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

const (
	// DefaultPageSize is used when the caller requests no page size.
	DefaultPageSize = 20

	// MaxPageSize caps how many orders one page may carry.
	MaxPageSize = 100
)

// ListOrdersQuery retrieves a page of a user's order history, newest first.
// Non-elevated actors may only list their own orders; staff, admins and the
// system may list anyone's.
type ListOrdersQuery struct {
	asking actor.Actor
	userID kernel.UUID
	page   int
	size   int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a query over one user's order history. Page
// numbers below 1 are normalized to 1; sizes below 1 fall back to
// DefaultPageSize and sizes above MaxPageSize are clamped to it.
func NewListOrdersQuery(asking actor.Actor, userID kernel.UUID, page, size int) (ListOrdersQuery, error) {
	if err := errors.Join(asking.Validate(), userID.Validate()); err != nil {
		return ListOrdersQuery{}, err
	}

	if !asking.Role().IsElevated() && !asking.ID().IsEqual(userID) {
		return ListOrdersQuery{}, errs.NewAuthorizationError(
			"NOT_AUTHORIZED",
			"only elevated roles may list another user's orders",
		)
	}

	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	return ListOrdersQuery{
		asking: asking,
		userID: userID,
		page:   page,
		size:   size,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Actor returns the identity asking for the listing.
func (q ListOrdersQuery) Actor() actor.Actor { return q.asking }

// UserID returns the user whose orders are listed.
func (q ListOrdersQuery) UserID() kernel.UUID { return q.userID }

// Page returns the normalized 1-based page number.
func (q ListOrdersQuery) Page() int { return q.page }

// Size returns the normalized page size.
func (q ListOrdersQuery) Size() int { return q.size }

// Offset returns the row offset of the page's first row.
func (q ListOrdersQuery) Offset() int { return (q.page - 1) * q.size }

// ListOrdersQueryResponse is one order summary row in the history listing.
// Line items are not included; callers drill in via the single-order read.
type ListOrdersQueryResponse struct {
	ID            kernel.UUID
	StudentID     kernel.UUID
	DeliveryDate  kernel.DeliveryDate
	Status        string
	PaymentStatus string
	TotalAmount   int64
	Currency      string
	CreatedAt     time.Time
}
