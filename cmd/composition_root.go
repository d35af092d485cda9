package cmd

import (
	"log/slog"

	adminhttp "momoadmin/internal/adapters/in/http"
	"momoadmin/internal/core/application/usecases/commands"
	"momoadmin/internal/core/application/usecases/queries"
	"momoadmin/internal/core/ports"
	"momoadmin/internal/jobs"
)

type CompositionRoot struct {
	config        Config
	uowFactory    ports.UnitOfWorkFactory
	readModel     ports.OrderReadModel
	notifications ports.NotificationQueue
	logger        *slog.Logger
}

func NewCompositionRoot(
	config Config,
	store Store,
	notifications ports.NotificationQueue,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:        config,
		uowFactory:    store.UoWFactory,
		readModel:     store.ReadModel,
		notifications: notifications,
		logger:        logger,
	}
}

func (c *CompositionRoot) CreateTransitionOrderStatusCommandHandler() commands.TransitionOrderStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})

	retry := commands.DefaultRetryPolicy()
	retry.MaxAttempts = c.config.TransitionMaxAttempts

	return commands.NewTransitionOrderStatusCommandHandler(f, c.notifications, retry, c.logger)
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.readModel)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.readModel)
}

func (c *CompositionRoot) CreateGetOrderAuditLogQueryHandler() queries.GetOrderAuditLogQueryHandler {
	return queries.NewGetOrderAuditLogQueryHandler(c.readModel)
}

func (c *CompositionRoot) CreateGetOrderBacklogQueryHandler() queries.GetOrderBacklogQueryHandler {
	return queries.NewGetOrderBacklogQueryHandler(c.readModel)
}

func (c *CompositionRoot) CreateHTTPServer() *adminhttp.Server {
	return adminhttp.NewServer(
		c.CreateTransitionOrderStatusCommandHandler(),
		c.CreatePlaceOrderCommandHandler(),
		c.CreateGetOrdersQueryHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetOrderAuditLogQueryHandler(),
		c.CreateGetOrderBacklogQueryHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetOrderBacklogQueryHandler(), c.config.BacklogReportSchedule, c.logger)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
