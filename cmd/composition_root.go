package cmd

import (
	"log/slog"

	"epharmacy/internal/adapters/out/postgres"
	"epharmacy/internal/core/application/usecases/commands"
	"epharmacy/internal/core/application/usecases/queries"
	"epharmacy/internal/core/ports"
	"epharmacy/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	storage    ports.PrescriptionStorage
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	storage ports.PrescriptionStorage,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		storage:    storage,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.PlacementUoWFactory = FuncPlacementUoWFactory(func() commands.PlacementUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.storage)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.fulfillmentUoWFactory())
}

func (c *CompositionRoot) CreateReviewPrescriptionCommandHandler() commands.ReviewPrescriptionCommandHandler {
	return commands.NewReviewPrescriptionCommandHandler(c.fulfillmentUoWFactory())
}

func (c *CompositionRoot) CreateFinalizeRejectedOrdersCommandHandler() commands.FinalizeRejectedOrdersCommandHandler {
	return commands.NewFinalizeRejectedOrdersCommandHandler(c.fulfillmentUoWFactory())
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPharmacyOrdersQueryHandler() queries.GetPharmacyOrdersQueryHandler {
	return queries.NewGetPharmacyOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	finalize := c.CreateFinalizeRejectedOrdersCommandHandler()
	return jobs.NewJobManager(&finalize, jobs.Schedule{
		RejectedOrderFinalization: c.config.RejectedOrderSchedule,
		RejectedOrderGracePeriod:  c.config.RejectedOrderGracePeriod,
	}, c.logger)
}

func (c *CompositionRoot) fulfillmentUoWFactory() commands.FulfillmentUoWFactory {
	return FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
}

type FuncPlacementUoWFactory func() commands.PlacementUoW

func (f FuncPlacementUoWFactory) Create() commands.PlacementUoW {
	return f()
}

type FuncFulfillmentUoWFactory func() commands.FulfillmentUoW

func (f FuncFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	return f()
}
