package main

import (
	"log"
	"net/http"
	"time"

	"tasterealm/api-gateway/internal/gateway"
	"tasterealm/config"

	"github.com/rs/cors"
)

func main() {
	cfg := config.Load(":8080")

	gw := gateway.NewGateway(gateway.Config{
		OrderSvcURL: cfg.OrderSvcURL,
		StatsSvcURL: cfg.StatsSvcURL,
		FrontendDir: cfg.FrontendDir,
	}, &http.Client{Timeout: 30 * time.Second})

	r := gw.SetupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8080", "http://127.0.0.1:8080", "*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	handler := c.Handler(r)

	log.Printf("API Gateway starting on %s", cfg.HTTPAddr)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, handler))
}
