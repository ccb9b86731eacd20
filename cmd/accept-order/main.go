package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"groceryDeliveryManagement/internal/config"
	"groceryDeliveryManagement/internal/db"
	"groceryDeliveryManagement/internal/geocode"
	"groceryDeliveryManagement/internal/notify"
	"groceryDeliveryManagement/internal/service"
	"groceryDeliveryManagement/repository"
)

// accept-order runs the seller order-acceptance flow against the configured
// database: it confirms the order, offers it to a delivery agent and prints
// the result as JSON.
func main() {
	orderID := flag.Int64("order", 0, "order id to accept")
	sellerID := flag.Int64("seller", 0, "seller id accepting the order")
	flag.Parse()
	if *orderID == 0 || *sellerID == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadWithDefaults()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Printf("close db: %v", err)
		}
	}()

	var events notify.Publisher = notify.Noop{}
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		defer func() { _ = client.Close() }()
		events = notify.NewRedisPublisher(client)
	}

	svc := &service.OrderService{
		Orders:   repository.NewOrderRepository(d),
		Agents:   repository.NewAgentRepository(d),
		Sellers:  repository.NewSellerRepository(d),
		Products: repository.NewProductRepository(d),
		Settings: repository.NewSettingsRepository(d),
		Earnings: repository.NewEarningRepository(d),
		Geocoder: geocode.Disabled{},
		Events:   events,
		Log:      logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res, err := svc.AcceptOrder(ctx, *orderID, *sellerID)
	if err != nil {
		log.Fatalf("accept order: %v", err)
	}
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		log.Fatalf("encode result: %v", err)
	}
	os.Stdout.Write(append(out, '\n'))
}
