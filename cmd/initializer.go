package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"reelstore/internal/config"
	"reelstore/internal/handlers"
	"reelstore/internal/models"
	"reelstore/internal/pay"
	"reelstore/internal/repositories"
	"reelstore/internal/services"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	cfg      config.Config

	orders repositories.OrderStore
	mailer *services.MailerService

	orderHandler    *handlers.OrderHandler
	downloadHandler *handlers.DownloadHandler
	contactHandler  *handlers.ContactHandler
	adminHandler    *handlers.AdminHandler
}

func initializeApp(cfg config.Config, errorLog, infoLog *log.Logger) (*application, error) {
	slogger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	gateway, err := pay.NewClient(nil, cfg.Gateway.KeyID, cfg.Gateway.KeySecret, cfg.Gateway.BaseURL, slogger)
	if err != nil {
		return nil, err
	}

	var verifier pay.Verifier
	switch cfg.Gateway.Mode {
	case config.GatewayStatus:
		verifier = pay.NewStatusVerifier(gateway)
	default:
		verifier = pay.NewSignatureVerifier(cfg.Gateway.KeySecret)
	}

	// Order ledger: Redis when configured, otherwise the in-process map.
	var orders repositories.OrderStore
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		orders = repositories.NewRedisOrderRepo(rdb, cfg.OrderExpiry())
		infoLog.Printf("order ledger: redis at %s", cfg.Redis.Addr)
	} else {
		orders = repositories.NewMemoryOrderRepo(cfg.OrderExpiry())
		infoLog.Printf("order ledger: in-memory, expiry %s", cfg.OrderExpiry())
	}

	redemptions, err := repositories.NewRedemptionRepo(cfg.SnapshotPath)
	if err != nil {
		return nil, err
	}
	if cfg.SnapshotPath != "" {
		infoLog.Printf("redemption ledger: %d records loaded from %s", redemptions.Count(), cfg.SnapshotPath)
	}

	var content repositories.ContentStore
	if cfg.Content.S3.Bucket != "" {
		content = repositories.NewS3ContentRepo(
			cfg.Content.S3.AccessKey,
			cfg.Content.S3.SecretKey,
			cfg.Content.S3.Region,
			cfg.Content.S3.Endpoint,
			cfg.Content.S3.Bucket,
			cfg.Content.S3.Prefix,
		)
		infoLog.Printf("content store: s3 bucket %s", cfg.Content.S3.Bucket)
	} else {
		content = &repositories.DirContentRepo{Dir: cfg.Content.Dir}
		infoLog.Printf("content store: directory %s", cfg.Content.Dir)
	}

	catalog := models.NewCatalog(cfg.Packages)

	mailer := services.NewMailerService(
		cfg.SMTP.Host, cfg.SMTP.Port,
		cfg.SMTP.Username, cfg.SMTP.Password,
		cfg.SMTP.From, cfg.SMTP.AdminEmail,
		infoLog, errorLog,
	)

	orderService := &services.OrderService{
		Orders:   orders,
		Gateway:  gateway,
		Catalog:  catalog,
		Currency: cfg.Currency,
	}
	paymentService := &services.PaymentService{
		Orders:      orders,
		Redemptions: redemptions,
		Verifier:    verifier,
		Mailer:      mailer,
		BaseURL:     cfg.Server.BaseURL,
	}
	deliveryService := &services.DeliveryService{
		Redemptions: redemptions,
		Content:     content,
		BaseURL:     cfg.Server.BaseURL,
	}
	statsService := &services.StatsService{Redemptions: redemptions}

	return &application{
		errorLog: errorLog,
		infoLog:  infoLog,
		cfg:      cfg,
		orders:   orders,
		mailer:   mailer,
		orderHandler: &handlers.OrderHandler{
			Orders:   orderService,
			Payments: paymentService,
		},
		downloadHandler: &handlers.DownloadHandler{Delivery: deliveryService},
		contactHandler:  &handlers.ContactHandler{Mailer: mailer},
		adminHandler:    &handlers.AdminHandler{Stats: statsService},
	}, nil
}
