package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"storefront/internal/config"
	httpctrl "storefront/internal/controllers/http"
	"storefront/internal/infra/rabbitmq"
	"storefront/internal/services"
	"storefront/internal/store"
	"storefront/internal/store/airtable"
	"storefront/internal/store/mysqlstore"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var recordStore store.Store
	switch cfg.StoreBackend {
	case config.BackendMySQL:
		s, err := mysqlstore.Open(cfg.MySQLDSN)
		if err != nil {
			log.Fatalf("store: mysql: %v", err)
		}
		recordStore = s
	default:
		recordStore = airtable.New(cfg.AirtableURL, cfg.AirtableAPIKey, cfg.AirtableBaseID, 10*time.Second)
	}

	var publisher rabbitmq.PublisherInterface
	if cfg.AMQPURL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.OrderExchange)
		if err != nil {
			log.Fatalf("failed to init publisher: %v", err)
		}
		defer pub.Close()
		publisher = pub
	}

	catalog := services.NewCatalogService(recordStore)
	orders := services.NewOrderService(recordStore, publisher)

	if cfg.RedisAddr != "" {
		// One shared cache: order joins read it, catalog mutations
		// invalidate it.
		cache := services.NewRedisProductCache(redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		}))
		orders.SetProductCache(cache)
		catalog.SetProductCache(cache)
	}

	handler := httpctrl.NewHandler(catalog, orders)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	handler.RegisterRoutes(r)

	log.Printf("Starting storefront API on %s (store backend: %s)", cfg.HTTPAddr, cfg.StoreBackend)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
