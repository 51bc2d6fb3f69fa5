//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"time"

	"routing/internal/gateway/http/geocoder"
	"routing/internal/gateway/http/vroom"
	"routing/internal/gateway/redis/geocode_cache"
	"routing/internal/gateway/smtp/mailer"
	order_delivered_post "routing/internal/handlers/rest/order_delivered_post"
	order_failed_post "routing/internal/handlers/rest/order_failed_post"
	route_cancel_post "routing/internal/handlers/rest/route_cancel_post"
	route_driver_post "routing/internal/handlers/rest/route_driver_post"
	route_get "routing/internal/handlers/rest/route_get"
	route_start_post "routing/internal/handlers/rest/route_start_post"
	routes_generate_post "routing/internal/handlers/rest/routes_generate_post"
	routes_get "routing/internal/handlers/rest/routes_get"
	"routing/internal/handlers/tasks/route_stats"
	"routing/internal/pkg/config"
	driverRepo "routing/internal/repository/driver"
	orderRepo "routing/internal/repository/order"
	routeRepo "routing/internal/repository/route"
	vehicleRepo "routing/internal/repository/vehicle"
	deliveryService "routing/internal/service/delivery"
	planningService "routing/internal/service/planning"
	routeService "routing/internal/service/route"

	"routing/pkg/background"
	"routing/pkg/logger"
	"routing/pkg/querier"
	"routing/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	goredis "github.com/go-redis/redis/v8"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
)

type (
	RouteStatsInterval time.Duration
)

type Application struct {
	ServicePlanning   ServicePlanning
	ServiceRoute      ServiceRoute
	ServiceDelivery   ServiceDelivery
	BackgroundWorkers *background.Worker
}

type ServicePlanning interface {
	routes_generate_post.Service
}

type ServiceRoute interface {
	route_get.Service
	routes_get.Service
	route_driver_post.Service
	route_start_post.Service
	route_cancel_post.Service
	route_stats.Service
}

type ServiceDelivery interface {
	order_delivered_post.Service
	order_failed_post.Service
}

var repositorySet = wire.NewSet(
	provideTxManager,
	provideQuerier,

	provideOrderRepository,
	provideVehicleRepository,
	provideRouteRepository,
	provideDriverRepository,

	wire.Bind(new(planningService.TxManager), new(*tx.Manager)),
	wire.Bind(new(routeService.TxManager), new(*tx.Manager)),
	wire.Bind(new(deliveryService.TxManager), new(*tx.Manager)),

	wire.Bind(new(planningService.OrderRepository), new(*orderRepo.Repository)),
	wire.Bind(new(planningService.VehicleRepository), new(*vehicleRepo.Repository)),
	wire.Bind(new(planningService.RouteRepository), new(*routeRepo.Repository)),

	wire.Bind(new(routeService.Repository), new(*routeRepo.Repository)),
	wire.Bind(new(routeService.VehicleRepository), new(*vehicleRepo.Repository)),
	wire.Bind(new(routeService.OrderRepository), new(*orderRepo.Repository)),
	wire.Bind(new(routeService.DriverRepository), new(*driverRepo.Repository)),

	wire.Bind(new(deliveryService.OrderRepository), new(*orderRepo.Repository)),
	wire.Bind(new(deliveryService.RouteRepository), new(*routeRepo.Repository)),
	wire.Bind(new(deliveryService.VehicleRepository), new(*vehicleRepo.Repository)),
)

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	redisClient *goredis.Client,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		repositorySet,
		provideRouteStatsInterval,

		provideGeocodeCache,
		provideGeocoder,
		provideSolver,
		provideMailer,

		provideServicePlanning,
		provideServiceRoute,
		provideServiceDelivery,

		provideRouteStatsTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServicePlanning), new(*planningService.Planning)),
		wire.Bind(new(ServiceRoute), new(*routeService.Route)),
		wire.Bind(new(ServiceDelivery), new(*deliveryService.Delivery)),

		wire.Bind(new(planningService.Geocoder), new(*geocoder.Client)),
		wire.Bind(new(planningService.Solver), new(*vroom.Client)),
		wire.Bind(new(routeService.Notifier), new(*mailer.Mailer)),

		wire.Bind(new(route_stats.Service), new(*routeService.Route)),
	)
	return &Application{}, nil
}

type KafkaWorkerApp struct {
	DeliveryService *deliveryService.Delivery
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-delivery-outcome)
func InitializeKafkaWorkerApp(
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
) (*KafkaWorkerApp, error) {
	wire.Build(
		repositorySet,

		provideServiceDelivery,

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideOrderRepository(querier *querier.Querier) *orderRepo.Repository {
	return orderRepo.New(querier)
}

func provideVehicleRepository(querier *querier.Querier) *vehicleRepo.Repository {
	return vehicleRepo.New(querier)
}

func provideRouteRepository(querier *querier.Querier) *routeRepo.Repository {
	return routeRepo.New(querier)
}

func provideDriverRepository(querier *querier.Querier) *driverRepo.Repository {
	return driverRepo.New(querier)
}

func provideGeocodeCache(client *goredis.Client, cfg *config.Config) *geocode_cache.Cache {
	return geocode_cache.New(client, cfg.Redis.TTL)
}

func provideGeocoder(cfg *config.Config, cache *geocode_cache.Cache, log logger.Logger) *geocoder.Client {
	return geocoder.New(cfg.Geocoder, cache, log)
}

func provideSolver(cfg *config.Config, log logger.Logger) *vroom.Client {
	return vroom.New(cfg.Solver, log)
}

func provideMailer(cfg *config.Config) *mailer.Mailer {
	return mailer.New(cfg.Mail)
}

func provideServicePlanning(
	orders planningService.OrderRepository,
	vehicles planningService.VehicleRepository,
	routes planningService.RouteRepository,
	geo planningService.Geocoder,
	solver planningService.Solver,
	txManager planningService.TxManager,
	log logger.Logger,
) *planningService.Planning {
	return planningService.New(orders, vehicles, routes, geo, solver, txManager, log)
}

func provideServiceRoute(
	repository routeService.Repository,
	vehicles routeService.VehicleRepository,
	orders routeService.OrderRepository,
	drivers routeService.DriverRepository,
	notifier routeService.Notifier,
	txManager routeService.TxManager,
	log logger.Logger,
) *routeService.Route {
	return routeService.New(repository, vehicles, orders, drivers, notifier, txManager, log)
}

func provideServiceDelivery(
	orders deliveryService.OrderRepository,
	routes deliveryService.RouteRepository,
	vehicles deliveryService.VehicleRepository,
	txManager deliveryService.TxManager,
) *deliveryService.Delivery {
	return deliveryService.New(orders, routes, vehicles, txManager)
}

func provideRouteStatsInterval(cfg *config.Config) RouteStatsInterval {
	return RouteStatsInterval(cfg.Tasks.RouteStatsInterval)
}

func provideRouteStatsTask(
	log logger.Logger,
	service route_stats.Service,
	interval RouteStatsInterval,
) *route_stats.RouteStats {
	return route_stats.NewRouteStats(log, service, time.Duration(interval))
}

func provideTaskList(
	routeStatsTask *route_stats.RouteStats,
) []background.Task {
	return []background.Task{
		routeStatsTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
