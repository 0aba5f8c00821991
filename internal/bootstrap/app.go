package bootstrap

import (
	"context"
	"fmt"
	"log"

	"github.com/Domenick1991/lastchanceair/api"
	"github.com/Domenick1991/lastchanceair/config"
	"github.com/Domenick1991/lastchanceair/internal/cache"
	"github.com/Domenick1991/lastchanceair/internal/catalog"
	"github.com/Domenick1991/lastchanceair/internal/email"
	"github.com/Domenick1991/lastchanceair/internal/kafka"
	"github.com/Domenick1991/lastchanceair/internal/notification"
	"github.com/Domenick1991/lastchanceair/internal/repository"
	"github.com/Domenick1991/lastchanceair/internal/service/booking"
	"github.com/Domenick1991/lastchanceair/internal/service/flights"
	"github.com/Domenick1991/lastchanceair/internal/service/identity"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
)

// App holds the wired API process: router, catalog and everything that needs
// closing on shutdown.
type App struct {
	Router     *gin.Engine
	Catalog    *catalog.Catalog
	Dispatcher *notification.Dispatcher

	scheduler *cron.Cron
	closers   []func()
}

// Repositories bundles the two stores the services depend on.
type Repositories struct {
	Users    repository.UserRepository
	Bookings repository.BookingRepository
}

// NewApp connects the configured backends and wires services into the router.
// The caller owns the returned App and must Close it.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{}

	repos, err := app.openRepositories(ctx, cfg.Database)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Catalog = catalog.New()
	if err := app.scheduleRegeneration(cfg.Catalog.RegenerateCron); err != nil {
		app.Close()
		return nil, err
	}

	var dealsCache flights.DealsCache
	if cfg.Redis.Enabled() {
		redisCache := cache.NewRedisCache(cfg.Redis)
		if err := redisCache.Ping(ctx); err != nil {
			log.Printf("redis unavailable, deals are not cached: %v", err)
			redisCache.Close()
		} else {
			dealsCache = redisCache
			app.closers = append(app.closers, func() { redisCache.Close() })
		}
	}

	app.Dispatcher = notification.NewDispatcher(app.deliverer(ctx, cfg), cfg.Notification.Workers, cfg.Notification.QueueSize)
	app.Dispatcher.Start()

	app.Router = api.NewRouter(cfg.HTTP,
		api.NewAuthHandler(identity.NewIdentityService(repos.Users, app.Dispatcher, cfg.Email.FrontendBaseURL)),
		api.NewFlightHandler(flights.NewFlightService(app.Catalog, dealsCache)),
		api.NewBookingHandler(booking.NewBookingService(repos.Bookings, app.Catalog, app.Dispatcher)),
	)
	return app, nil
}

func (a *App) openRepositories(ctx context.Context, cfg config.DatabaseConfig) (Repositories, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		log.Printf("using in-memory store, data is lost on restart")
		store := repository.NewMemoryStore()
		return Repositories{Users: store.Users(), Bookings: store.Bookings()}, nil
	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.DSN())
		if err != nil {
			return Repositories{}, fmt.Errorf("connect postgres: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		if err := repository.EnsureSchema(ctx, pool); err != nil {
			return Repositories{}, err
		}
		return Repositories{
			Users:    repository.NewUserRepository(pool),
			Bookings: repository.NewBookingRepository(pool),
		}, nil
	default:
		return Repositories{}, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

func (a *App) scheduleRegeneration(expr string) error {
	if expr == "" {
		return nil
	}
	a.scheduler = cron.New()
	if _, err := a.scheduler.AddFunc(expr, func() { a.Catalog.Regenerate() }); err != nil {
		return fmt.Errorf("catalog regenerate_cron %q: %w", expr, err)
	}
	a.scheduler.Start()
	return nil
}

// deliverer publishes to Kafka when it is configured and reachable, otherwise
// sends emails from this process.
func (a *App) deliverer(ctx context.Context, cfg *config.Config) notification.Deliverer {
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		if err := producer.CheckConnection(ctx); err != nil {
			log.Printf("kafka unavailable, sending notifications in-process: %v", err)
			producer.Close()
		} else {
			a.closers = append(a.closers, func() { producer.Close() })
			return kafka.NewTopicPublisher(producer, cfg.Kafka.NotificationsTopic)
		}
	}
	return notification.NewHandler(email.NewSender(cfg.Email))
}

// Close stops the scheduler, drains queued notifications and releases
// connections in reverse order of acquisition.
func (a *App) Close() {
	if a.scheduler != nil {
		<-a.scheduler.Stop().Done()
	}
	if a.Dispatcher != nil {
		a.Dispatcher.Close()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
