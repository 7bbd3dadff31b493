package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

const (
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	MenuYAML     = "yaml"
	MenuPostgres = "postgres"
)

type Config struct {
	HTTPAddr        string
	StoreDriver     string
	StoreTTL        time.Duration
	MenuSource      string
	MenuFile        string
	ProcessingDelay time.Duration
	SessionIdleTTL  time.Duration
	AuthDelay       time.Duration
	KafkaBroker     string
	OrdersTopic     string
	StatsGroupID    string
	QRBaseURL       string
	OrderSvcURL     string
	StatsSvcURL     string
	FrontendDir     string
}

// Load reads the configuration from the environment. A .env file in the working
// directory, when present, seeds variables that are not already set.
func Load(defaultAddr string) Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to read .env file: %v", err)
	}

	return Config{
		HTTPAddr:        getEnv("HTTP_ADDR", defaultAddr),
		StoreDriver:     strings.ToLower(getEnv("STORE_DRIVER", StoreRedis)),
		StoreTTL:        getDuration("STORE_TTL", 0),
		MenuSource:      strings.ToLower(getEnv("MENU_SOURCE", MenuYAML)),
		MenuFile:        getEnv("MENU_FILE", "config/menu.yaml"),
		ProcessingDelay: getDuration("ORDER_PROCESSING_DELAY", 2*time.Second),
		SessionIdleTTL:  getDuration("SESSION_IDLE_TTL", 30*time.Minute),
		AuthDelay:       getDuration("AUTH_DELAY", 1500*time.Millisecond),
		KafkaBroker:     os.Getenv("KAFKA_BROKER"),
		OrdersTopic:     getEnv("ORDERS_TOPIC", "orders"),
		StatsGroupID:    getEnv("STATS_GROUP_ID", "stats-svc-consumer"),
		QRBaseURL:       getEnv("QR_BASE_URL", "http://localhost"),
		OrderSvcURL:     getEnv("ORDER_SVC_URL", "http://order-svc:8081"),
		StatsSvcURL:     getEnv("STATS_SVC_URL", "http://stats-svc:8082"),
		FrontendDir:     getEnv("FRONTEND_DIR", "./frontend"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}

func PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"))
}

func MustInitPostgres() *sql.DB {
	db, err := sql.Open("postgres", PostgresDSN())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_HOST") + ":" + os.Getenv("REDIS_PORT"),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaReader(broker, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{broker},
		Topic:   topic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(broker, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
}
