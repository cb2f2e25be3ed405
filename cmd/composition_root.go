package cmd

import (
	"time"

	"mealorder/internal/adapters/out/postgres"
	"mealorder/internal/adapters/out/postgres/menurepo"
	"mealorder/internal/adapters/out/postgres/studentrepo"
	"mealorder/internal/core/application/usecases/commands"
	"mealorder/internal/core/application/usecases/queries"
	"mealorder/internal/core/domain/services"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. All handlers share
// one GORM connection pool; each command takes its own unit of work from the
// factory.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	directory  *studentrepo.GormStudentDirectory
	catalog    *menurepo.GormMenuCatalog
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		directory:  studentrepo.NewGormStudentDirectory(gormDB),
		catalog:    menurepo.NewGormMenuCatalog(gormDB),
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	validator := services.NewOrderValidator(
		time.Duration(c.config.OrderMinLeadHours)*time.Hour,
		c.config.OrderAllowWeekendDelivery,
		c.config.OrderMaxItems,
	)
	authorizer := services.NewAuthorizer(c.directory, c.directory)

	return commands.NewCreateOrderCommandHandler(
		c.orderUoWFactory(), validator, authorizer, c.catalog, commands.SystemClock,
	)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateOrderDetailsCommandHandler() commands.UpdateOrderDetailsCommandHandler {
	return commands.NewUpdateOrderDetailsCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRecordPaymentResultCommandHandler() commands.RecordPaymentResultCommandHandler {
	return commands.NewRecordPaymentResultCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCancelExpiredOrdersCommandHandler() commands.CancelExpiredOrdersCommandHandler {
	return commands.NewCancelExpiredOrdersCommandHandler(c.orderUoWFactory(), commands.SystemClock)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
