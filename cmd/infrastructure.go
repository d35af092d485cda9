package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"momoadmin/internal/adapters/out/memory"
	"momoadmin/internal/adapters/out/notification/kafka"
	"momoadmin/internal/adapters/out/notification/logsink"
	"momoadmin/internal/adapters/out/notification/rabbitmq"
	"momoadmin/internal/adapters/out/notification/redis"
	"momoadmin/internal/adapters/out/postgres"
	"momoadmin/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
	goredis "github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Store is the persistence chosen by STORE_DRIVER.
type Store struct {
	UoWFactory ports.UnitOfWorkFactory
	ReadModel  ports.OrderReadModel
	Close      func() error
}

// OpenStore connects to PostgreSQL and migrates the schema, or creates an empty
// in-memory store.
func OpenStore(config Config, logger *slog.Logger) (Store, error) {
	if config.StoreDriver == StoreDriverMemory {
		logger.Warn("using in-memory store, orders are lost on restart")
		store := memory.NewStore(nil)
		return Store{
			UoWFactory: memory.NewUnitOfWorkFactory(store),
			ReadModel:  memory.NewReadModel(store),
			Close:      func() error { return nil },
		}, nil
	}

	db, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		return Store{}, fmt.Errorf("connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return Store{}, err
	}

	if err = postgres.Migrate(db); err != nil {
		_ = sqlDB.Close()
		return Store{}, fmt.Errorf("migrate: %w", err)
	}

	return Store{
		UoWFactory: postgres.NewGormUnitOfWorkFactory(db),
		ReadModel:  postgres.NewGormOrderReadModel(db),
		Close:      sqlDB.Close,
	}, nil
}

// Transport is the notification transport chosen by NOTIFY_TRANSPORT.
type Transport struct {
	Dispatcher ports.NotificationDispatcher
	Close      func() error
}

// OpenTransport connects to the configured broker.
func OpenTransport(ctx context.Context, config Config, logger *slog.Logger) (Transport, error) {
	switch config.NotifyTransport {
	case NotifyTransportRabbitMQ:
		conn, err := amqp.DialConfig(config.RabbitMQURL, amqp.Config{Dial: amqp.DefaultDial(10 * time.Second)})
		if err != nil {
			return Transport{}, fmt.Errorf("connect to rabbitmq: %w", err)
		}
		publisher, err := rabbitmq.NewPublisher(conn, config.RabbitMQQueue)
		if err != nil {
			_ = conn.Close()
			return Transport{}, err
		}
		return Transport{
			Dispatcher: publisher,
			Close: func() error {
				return errors.Join(publisher.Close(), conn.Close())
			},
		}, nil

	case NotifyTransportKafka:
		publisher := kafka.NewPublisher(strings.Split(config.KafkaHost, ","), config.KafkaNotificationTopic)
		return Transport{Dispatcher: publisher, Close: publisher.Close}, nil

	case NotifyTransportRedis:
		client := goredis.NewClient(&goredis.Options{Addr: config.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return Transport{}, fmt.Errorf("connect to redis: %w", err)
		}
		return Transport{Dispatcher: redis.NewPublisher(client), Close: client.Close}, nil

	default:
		return Transport{Dispatcher: logsink.NewDispatcher(logger), Close: func() error { return nil }}, nil
	}
}
