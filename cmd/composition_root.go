package cmd

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	httpin "restaurant/internal/adapters/in/http"
	"restaurant/internal/adapters/out/eventbus"
	"restaurant/internal/adapters/out/postgres/menurepo"
	"restaurant/internal/adapters/out/postgres/orderrepo"
	"restaurant/internal/adapters/out/postgres/staffrepo"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
	"restaurant/internal/jobs"
)

// CompositionRoot builds and hands out fully wired adapters and use case
// handlers. The Redis client is optional; without it events stay in-process
// and the metrics job is skipped.
type CompositionRoot struct {
	gormDB      *gorm.DB
	redisClient *redis.Client
	logger      *slog.Logger

	orderRepository ports.OrderRepository
	staffDirectory  ports.StaffDirectory
	catalogGateway  ports.CatalogGateway
	scheduler       services.AssignmentScheduler

	hub       *eventbus.Hub
	bridge    *eventbus.RedisBridge
	publisher ports.EventPublisher
}

func NewCompositionRoot(
	_ Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	staffDirectory := staffrepo.NewGormStaffDirectory(gormDB)

	scheduler, err := services.NewAssignmentScheduler(staffDirectory)
	if err != nil {
		return nil, err
	}

	root := &CompositionRoot{
		gormDB:          gormDB,
		redisClient:     redisClient,
		logger:          logger,
		orderRepository: orderrepo.NewGormOrderRepository(gormDB),
		staffDirectory:  staffDirectory,
		catalogGateway:  menurepo.NewGormCatalogGateway(gormDB),
		scheduler:       scheduler,
		hub:             eventbus.NewHub(logger),
	}

	root.publisher = root.hub
	if redisClient != nil {
		root.bridge = eventbus.NewRedisBridge(root.hub, redisClient, logger)
		root.publisher = root.bridge
	}

	return root, nil
}

// EventBridge returns the Redis relay, or nil when Redis is not configured.
func (c *CompositionRoot) EventBridge() *eventbus.RedisBridge {
	return c.bridge
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.orderRepository, c.catalogGateway, c.scheduler, c.publisher, time.Now)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderRepository, c.publisher, time.Now)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderRepository, c.publisher, time.Now)
}

func (c *CompositionRoot) CreateGenerateBillCommandHandler() commands.GenerateBillCommandHandler {
	return commands.NewGenerateBillCommandHandler(c.orderRepository, time.Now)
}

func (c *CompositionRoot) CreateClearHistoryCommandHandler() commands.ClearHistoryCommandHandler {
	return commands.NewClearHistoryCommandHandler(c.orderRepository)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStaffOrdersQueryHandler() queries.GetStaffOrdersQueryHandler {
	return queries.NewGetStaffOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateTrackOrderQueryHandler() queries.TrackOrderQueryHandler {
	return queries.NewTrackOrderQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every handler into the HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateGenerateBillCommandHandler(),
		c.CreateClearHistoryCommandHandler(),
		c.CreateGetAllOrdersQueryHandler(),
		c.CreateGetCustomerOrdersQueryHandler(),
		c.CreateGetStaffOrdersQueryHandler(),
		c.CreateTrackOrderQueryHandler(),
		c.hub,
	)
}

// CreateJobManager wires the background jobs. The metrics job requires Redis
// and is left out without it.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	var metricsJob *jobs.OrderMetricsJob
	if c.redisClient != nil {
		metricsJob = jobs.NewOrderMetricsJob(c.gormDB, c.redisClient, c.logger)
	}
	return jobs.NewJobManager(metricsJob, jobs.NewStalePendingJob(c.orderRepository, c.logger))
}
