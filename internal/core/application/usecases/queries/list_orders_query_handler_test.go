package queries_test

import (
	"context"
	"testing"
	"time"

	"mealorder/internal/adapters/out/postgres/orderrepo"
	"mealorder/internal/core/application/usecases/queries"
	"mealorder/internal/core/domain/model/actor"
	"mealorder/internal/core/domain/model/kernel"
	"mealorder/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ListOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.ListOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *ListOrdersQueryHandlerTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewListOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db)
}

func (suite *ListOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *ListOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_EmptyHistory_ReturnsEmptySlice() {
	owner := suite.actorWithRole(actor.RoleParent)

	query, err := queries.NewListOrdersQuery(owner, owner.ID(), 1, 10)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_SummaryFields() {
	owner := suite.actorWithRole(actor.RoleParent)
	stored := suite.seedOrders(owner.ID(), 1)[0]

	query, err := queries.NewListOrdersQuery(owner, owner.ID(), 1, 10)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	summary := result[0]
	suite.True(stored.ID().IsEqual(summary.ID))
	suite.True(stored.StudentID().IsEqual(summary.StudentID))
	suite.Equal("pending", summary.Status)
	suite.Equal("pending", summary.PaymentStatus)
	suite.Equal(int64(130), summary.TotalAmount)
	suite.Equal("INR", summary.Currency)
	suite.Equal("2030-01-07", summary.DeliveryDate.String())
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_PagesNewestFirstWithoutOverlap() {
	owner := suite.actorWithRole(actor.RoleParent)
	stored := suite.seedOrders(owner.ID(), 5)

	// Another user's history must never leak into the listing.
	foreign := suite.actorWithRole(actor.RoleParent)
	suite.seedOrders(foreign.ID(), 1)

	firstQuery, err := queries.NewListOrdersQuery(owner, owner.ID(), 1, 3)
	suite.Require().NoError(err)
	firstPage, err := suite.handler.Handle(context.Background(), firstQuery)
	suite.Require().NoError(err)
	suite.Require().Len(firstPage, 3)

	secondQuery, err := queries.NewListOrdersQuery(owner, owner.ID(), 2, 3)
	suite.Require().NoError(err)
	secondPage, err := suite.handler.Handle(context.Background(), secondQuery)
	suite.Require().NoError(err)
	suite.Require().Len(secondPage, 2)

	seen := make(map[kernel.UUID]bool)
	all := append(append([]queries.ListOrdersQueryResponse{}, firstPage...), secondPage...)
	for _, summary := range all {
		suite.False(seen[summary.ID], "order %s appeared on more than one page", summary.ID)
		seen[summary.ID] = true
	}
	for _, o := range stored {
		suite.True(seen[o.ID()], "order %s missing from the listing", o.ID())
	}

	for i := range len(all) - 1 {
		suite.False(all[i].CreatedAt.Before(all[i+1].CreatedAt),
			"orders should be listed newest first")
	}
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_AdminListsAnotherUser() {
	owner := suite.actorWithRole(actor.RoleParent)
	suite.seedOrders(owner.ID(), 2)
	admin := suite.actorWithRole(actor.RoleAdmin)

	query, err := queries.NewListOrdersQuery(admin, owner.ID(), 1, 10)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Len(result, 2)
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_PagePastEnd_ReturnsEmptySlice() {
	owner := suite.actorWithRole(actor.RoleParent)
	suite.seedOrders(owner.ID(), 2)

	query, err := queries.NewListOrdersQuery(owner, owner.ID(), 5, 10)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	var invalidQuery queries.ListOrdersQuery

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewListOrdersQuery constructor")
}

func (suite *ListOrdersQueryHandlerTestSuite) actorWithRole(role actor.Role) actor.Actor {
	a, err := actor.NewActor(kernel.NewUUID(), role)
	suite.Require().NoError(err)
	return a
}

func (suite *ListOrdersQueryHandlerTestSuite) seedOrders(userID kernel.UUID, count int) []*order.Order {
	orders := make([]*order.Order, 0, count)
	for range count {
		stored := newStoredOrder(suite.T(), userID)
		err := suite.orderRepo.Add(context.Background(), stored)
		suite.Require().NoError(err)
		orders = append(orders, stored)
	}
	return orders
}

func TestListOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ListOrdersQueryHandlerTestSuite))
}
