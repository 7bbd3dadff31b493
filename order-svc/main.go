package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tasterealm/config"
	httpapi "tasterealm/order-svc/internal/api/http"
	"tasterealm/order-svc/internal/service"
	"tasterealm/order-svc/internal/storage"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

type resources struct {
	db          *sql.DB
	rdb         *redis.Client
	kafkaWriter *kafka.Writer
}

func (r *resources) Close() {
	if r.kafkaWriter != nil {
		r.kafkaWriter.Close()
	}
	if r.rdb != nil {
		r.rdb.Close()
	}
	if r.db != nil {
		r.db.Close()
	}
}

func (r *resources) postgres() *storage.PostgresRepository {
	if r.db == nil {
		r.db = config.MustInitPostgres()
		repo := storage.NewPostgresRepository(r.db)
		if err := repo.EnsureSchema(context.Background()); err != nil {
			log.Fatal("Failed to ensure schema:", err)
		}
	}
	return storage.NewPostgresRepository(r.db)
}

func newStore(cfg config.Config, res *resources) storage.Store {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		log.Println("[order-svc] using in-memory profile store")
		return storage.NewMemoryStore()
	case config.StorePostgres:
		log.Println("[order-svc] using postgres profile store")
		return res.postgres()
	default:
		log.Println("[order-svc] using redis profile store")
		res.rdb = config.MustInitRedis()
		return storage.NewRedisStore(res.rdb, cfg.StoreTTL)
	}
}

func newStorageFactory(store storage.Store) service.StorageFactory {
	profiles := storage.NewProfileStorage(store)
	return func(profileID string) (service.CartStore, service.OrderLog) {
		return profiles.Cart(profileID), profiles.Orders(profileID)
	}
}

func newMenu(cfg config.Config, res *resources) (service.MenuRepository, error) {
	seed, err := storage.LoadYAMLMenu(cfg.MenuFile)
	if cfg.MenuSource != config.MenuPostgres {
		if err != nil {
			return nil, err
		}
		return seed, nil
	}

	repo := res.postgres()
	if err == nil {
		items, _ := seed.ListMenu(context.Background())
		if err := repo.SeedMenu(context.Background(), items); err != nil {
			return nil, err
		}
	} else {
		log.Printf("[order-svc] WARNING: menu seed %s not loaded: %v", cfg.MenuFile, err)
	}
	return repo, nil
}

func newPublisher(cfg config.Config, res *resources) service.OrderPublisher {
	if cfg.KafkaBroker == "" {
		log.Println("[order-svc] KAFKA_BROKER not set, order events disabled")
		return nil
	}
	res.kafkaWriter = config.NewKafkaWriter(cfg.KafkaBroker, cfg.OrdersTopic)
	return storage.NewKafkaPublisher(res.kafkaWriter)
}

func main() {
	cfg := config.Load(":8081")

	res := &resources{}
	defer res.Close()

	menuRepo, err := newMenu(cfg, res)
	if err != nil {
		log.Fatal("Failed to load menu:", err)
	}

	sessions := service.NewSessionManager(newStorageFactory(newStore(cfg, res)), service.CheckoutOptions{
		ProcessingDelay: cfg.ProcessingDelay,
		Publisher:       newPublisher(cfg, res),
	}, cfg.SessionIdleTTL)
	defer sessions.Close()

	handler := httpapi.NewHandler(
		service.NewMenuService(menuRepo),
		sessions,
		service.NewAuthService(cfg.AuthDelay),
		service.DefaultQRGenerator{BaseURL: cfg.QRBaseURL},
	)
	server := httpapi.NewServer(cfg.HTTPAddr, httpapi.NewRouter(handler))

	go func() {
		log.Printf("Order Service starting on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[order-svc] shutdown error: %v", err)
	}
	log.Println("Order Service stopped")
}
