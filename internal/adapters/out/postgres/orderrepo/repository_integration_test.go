package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"mealorder/internal/adapters/out/postgres/orderrepo"
	"mealorder/internal/core/domain/model/actor"
	"mealorder/internal/core/domain/model/kernel"
	"mealorder/internal/core/domain/model/order"
	"mealorder/internal/core/ports"
	"mealorder/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite exercises GormOrderRepository against a
// real PostgreSQL container.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTrips() {
	ctx := context.Background()
	testOrder := suite.newPendingOrder(kernel.NewUUID())

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.True(retrieved.IsEqual(testOrder))
	suite.Equal(testOrder.UserID(), retrieved.UserID())
	suite.Equal(testOrder.StudentID(), retrieved.StudentID())
	suite.Equal(order.StatusPending, retrieved.Status())
	suite.Equal(order.PaymentPending, retrieved.PaymentStatus())
	suite.True(retrieved.Total().IsEqual(testOrder.Total()))
	suite.Require().Len(retrieved.Items(), 2)
	suite.Equal("peanut allergy", retrieved.AllergyNotes())
	suite.Equal("blue", retrieved.Metadata()["lunchbox"])
	suite.JSONEq(`{"spice":"mild"}`, string(retrieved.Items()[0].Customization()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateID_ReturnsConflict() {
	ctx := context.Background()
	testOrder := suite.newPendingOrder(kernel.NewUUID())

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrConflict)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFound() {
	retrieved, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
	suite.Equal(orderrepo.CodeOrderNotFound, notFoundErr.Code)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllForUser_PagesNewestFirst() {
	ctx := context.Background()
	userID := kernel.NewUUID()

	for range 5 {
		suite.Require().NoError(suite.repository.Add(ctx, suite.newPendingOrder(userID)))
	}
	// Another user's order must not leak into the page.
	suite.Require().NoError(suite.repository.Add(ctx, suite.newPendingOrder(kernel.NewUUID())))

	firstPage, err := suite.repository.GetAllForUser(ctx, userID, ports.Page{Number: 1, Size: 3})
	suite.Require().NoError(err)
	suite.Require().Len(firstPage, 3)

	secondPage, err := suite.repository.GetAllForUser(ctx, userID, ports.Page{Number: 2, Size: 3})
	suite.Require().NoError(err)
	suite.Require().Len(secondPage, 2)

	seen := make(map[kernel.UUID]bool)
	all := append(append([]*order.Order{}, firstPage...), secondPage...)
	for _, o := range all {
		suite.Equal(userID, o.UserID())
		suite.False(seen[o.ID()], "pages must not overlap")
		seen[o.ID()] = true
	}

	for i := range len(all) - 1 {
		suite.False(all[i].CreatedAt().Before(all[i+1].CreatedAt()),
			"orders must be sorted newest first")
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_MatchingExpected_Persists() {
	ctx := context.Background()
	testOrder := suite.newPendingOrder(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.transitionAsStaff(testOrder, order.StatusConfirmed)
	suite.Require().NoError(suite.repository.UpdateStatus(ctx, testOrder, order.StatusPending))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusConfirmed, retrieved.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_StaleExpected_ReturnsConflict() {
	ctx := context.Background()
	testOrder := suite.newPendingOrder(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// A concurrent actor confirmed the order first.
	winner, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.transitionAsStaff(winner, order.StatusConfirmed)
	suite.Require().NoError(suite.repository.UpdateStatus(ctx, winner, order.StatusPending))

	suite.transitionAsStaff(testOrder, order.StatusConfirmed)
	err = suite.repository.UpdateStatus(ctx, testOrder, order.StatusPending)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrConflict)

	// The stored status is the winner's, untouched by the loser.
	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusConfirmed, retrieved.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_MissingOrder_ReturnsNotFound() {
	ctx := context.Background()
	testOrder := suite.newPendingOrder(kernel.NewUUID())
	suite.transitionAsStaff(testOrder, order.StatusConfirmed)

	err := suite.repository.UpdateStatus(ctx, testOrder, order.StatusPending)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdatePaymentStatus_DoesNotTouchStatus() {
	ctx := context.Background()
	testOrder := suite.newPendingOrder(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.RecordPaymentResult(order.PaymentPaid))
	suite.Require().NoError(suite.repository.UpdatePaymentStatus(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.PaymentPaid, retrieved.PaymentStatus())
	suite.Equal(order.StatusPending, retrieved.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateDetails_PendingOnly() {
	ctx := context.Background()
	testOrder := suite.newPendingOrder(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.UpdateDetails("no onions", "egg allergy", map[string]string{"tray": "2"}))
	suite.Require().NoError(suite.repository.UpdateDetails(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal("no onions", retrieved.Instructions())
	suite.Equal("egg allergy", retrieved.AllergyNotes())
	suite.Equal("2", retrieved.Metadata()["tray"])

	// Confirm the order; edits must now fail with a conflict.
	suite.transitionAsStaff(retrieved, order.StatusConfirmed)
	suite.Require().NoError(suite.repository.UpdateStatus(ctx, retrieved, order.StatusPending))

	err = suite.repository.UpdateDetails(ctx, testOrder)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrConflict)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetPendingWithDeliveryBefore_FiltersByStatusAndDate() {
	ctx := context.Background()

	stale := suite.newPendingOrderForDate(kernel.NewUUID(), "2024-03-04")
	fresh := suite.newPendingOrderForDate(kernel.NewUUID(), "2030-01-07")
	confirmedStale := suite.newPendingOrderForDate(kernel.NewUUID(), "2024-03-05")

	suite.Require().NoError(suite.repository.Add(ctx, stale))
	suite.Require().NoError(suite.repository.Add(ctx, fresh))
	suite.Require().NoError(suite.repository.Add(ctx, confirmedStale))

	suite.transitionAsStaff(confirmedStale, order.StatusConfirmed)
	suite.Require().NoError(suite.repository.UpdateStatus(ctx, confirmedStale, order.StatusPending))

	cutoff, err := kernel.DeliveryDateFromString("2025-01-01")
	suite.Require().NoError(err)

	found, err := suite.repository.GetPendingWithDeliveryBefore(ctx, cutoff)
	suite.Require().NoError(err)
	suite.Require().Len(found, 1)
	suite.Equal(stale.ID(), found[0].ID())
}

// newPendingOrder builds a two-line pending order for the given user.
func (suite *OrderRepositoryIntegrationTestSuite) newPendingOrder(userID kernel.UUID) *order.Order {
	return suite.newPendingOrderForDate(userID, "2030-01-07")
}

func (suite *OrderRepositoryIntegrationTestSuite) newPendingOrderForDate(
	userID kernel.UUID, date string,
) *order.Order {
	price, err := kernel.NewMoney(50, "INR")
	suite.Require().NoError(err)
	first, err := order.NewItem(kernel.NewUUID(), "Veg Thali", 2, price, "less salt", []byte(`{"spice":"mild"}`))
	suite.Require().NoError(err)

	price2, err := kernel.NewMoney(30, "INR")
	suite.Require().NoError(err)
	second, err := order.NewItem(kernel.NewUUID(), "Lassi", 1, price2, "", nil)
	suite.Require().NoError(err)

	deliveryDate, err := kernel.DeliveryDateFromString(date)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), userID, kernel.NewUUID(), kernel.NewUUID(),
		deliveryDate, []order.Item{first, second},
		"", "peanut allergy", map[string]string{"lunchbox": "blue"},
	)
	suite.Require().NoError(err)
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) transitionAsStaff(o *order.Order, next order.Status) {
	suite.Require().NoError(o.TransitionTo(next, actor.RoleStaff, false))
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
