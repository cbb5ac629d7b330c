package wire

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"insurance-server/cmd/config"
	"insurance-server/internal/infra/async"
	"insurance-server/internal/infra/cache"
	"insurance-server/internal/infra/node"
	"insurance-server/internal/infra/notification"
	"insurance-server/internal/infra/pubsub"
	"insurance-server/internal/infra/sql"
	"insurance-server/internal/insurance/communication"
	"insurance-server/internal/insurance/usecases"
)

const (
	_databaseTimeout = 10 * time.Second
	_memoryDSN       = ":memory:"
)

// Shared infrastructure is built once per process, however many injectors
// ask for it.
var (
	databaseOnce sync.Once
	database     sql.ORM
	databaseErr  error

	cacheOnce sync.Once
	formCache cache.Cache
	cacheErr  error

	pubsubOnce    sync.Once
	pubsubFactory *pubsub.Factory
)

func provideAppConfig() config.AppConfig {
	return config.LoadConfig()
}

func provideDatabase(cfg config.AppConfig) (sql.ORM, error) {
	databaseOnce.Do(func() {
		database, databaseErr = openDatabase(cfg.Database)
	})
	return database, databaseErr
}

func openDatabase(cfg config.DatabaseConfig) (sql.ORM, error) {
	switch cfg.Driver {
	case "postgres":
		db := sql.NewPosgreDatabase(cfg.URL)
		if err := db.Open(context.Background()); err != nil {
			return nil, fmt.Errorf("waiting for postgres: %w", err)
		}
		db.Close()

		orm, err := sql.NewPosgreORM(cfg.DSN, _databaseTimeout)
		if err != nil {
			return nil, fmt.Errorf("opening postgres: %w", err)
		}
		return orm, nil

	case "sqlite", "":
		if cfg.DSN == "" || cfg.DSN == _memoryDSN {
			return sql.NewMemoryORM()
		}
		return sql.NewSqliteORM(cfg.DSN)

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

func provideCache(cfg config.AppConfig) (cache.Cache, error) {
	cacheOnce.Do(func() {
		switch cfg.Cache.Driver {
		case "redis":
			redisConfig := cache.DefaultRedisConfig()
			redisConfig.Addr = cfg.Redis.Addr
			redisConfig.Password = cfg.Redis.Password
			redisConfig.DB = cfg.Redis.DB
			formCache, cacheErr = cache.NewRedisCache(redisConfig)
		case "memory", "":
			formCache, cacheErr = cache.New(cache.DefaultConfig())
		default:
			cacheErr = fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
		}
	})
	return formCache, cacheErr
}

// providePubSubFactory gives every node its own consumer group so that each
// one sees every submission event.
func providePubSubFactory(cfg config.AppConfig) *pubsub.Factory {
	pubsubOnce.Do(func() {
		group := node.GetNodeInfo().GroupFor(cfg.Kafka.Group)
		slog.Debug("pubsub consumer group", slog.String("group", group))
		pubsubFactory = pubsub.NewFactory(pubsub.FactoryOptions{
			Environment:       cfg.General.Environment,
			KafkaBrokers:      cfg.Kafka.Brokers,
			ConsumerGroup:     group,
			SchemaRegistryURL: cfg.Kafka.SchemaRegistryURL,
		})
	})
	return pubsubFactory
}

func providePublisherFactory(factory *pubsub.Factory) pubsub.PublisherFactory {
	return factory.GetPublisherFactory()
}

func provideConsumerFactory(factory *pubsub.Factory) pubsub.ConsumerFactory {
	return factory.GetConsumerFactory()
}

func provideFormService(repository usecases.TemplateRepository, formCache cache.Cache, cfg config.AppConfig) *usecases.SimpleFormService {
	return usecases.NewFormService(repository, formCache, cfg.Cache.TTL)
}

func provideOptionFetcher(cfg config.AppConfig) *usecases.HTTPOptionFetcher {
	return usecases.NewHTTPOptionFetcher(cfg.Forms.OptionsTimeout)
}

func provideTemplateCacheWorker(cfg config.AppConfig, service usecases.FormService) (*usecases.TemplateCacheWorker, error) {
	return usecases.NewTemplateCacheWorker(cfg.Forms.CacheRefreshSchedule, service)
}

func provideNotificationClient(cfg config.AppConfig) *notification.MailerSendClient {
	return notification.NewMailerSendClient(notification.MailerSendConfig{
		APIKey:    cfg.Notifications.MailerSendAPIKey,
		FromEmail: cfg.Notifications.FromEmail,
		FromName:  cfg.Notifications.FromName,
	})
}

func provideSubmissionNotifier(cfg config.AppConfig, broker async.InternalBroker, client notification.NotificationClient) *communication.SubmissionNotifier {
	return communication.NewSubmissionNotifier(broker, client, cfg.Notifications.Recipient)
}
