package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tasterealm/config"
	httpapi "tasterealm/stats-svc/internal/api/http"
	"tasterealm/stats-svc/internal/service"
	"tasterealm/stats-svc/internal/storage"
)

func main() {
	cfg := config.Load(":8082")

	rdb := config.MustInitRedis()
	defer rdb.Close()
	store := storage.NewStore(rdb)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.KafkaBroker != "" {
		reader := config.NewKafkaReader(cfg.KafkaBroker, cfg.OrdersTopic, cfg.StatsGroupID)
		defer reader.Close()
		go service.NewConsumer(reader, store).Start(ctx)
	} else {
		log.Println("[stats-svc] KAFKA_BROKER not set, consumer disabled")
	}

	handler := httpapi.NewHandler(service.NewStatsService(store))
	server := httpapi.NewServer(cfg.HTTPAddr, httpapi.NewRouter(handler))

	go func() {
		log.Printf("Stats Service starting on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[stats-svc] shutdown error: %v", err)
	}
	log.Println("Stats Service stopped")
}
