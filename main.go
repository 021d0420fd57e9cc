package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"sdc_backend/internals/configs"
	database "sdc_backend/internals/databases"
	"sdc_backend/internals/jobs"
	middlewares "sdc_backend/internals/middlewares"
	routes "sdc_backend/internals/route"
)

func main() {
	configs.LoadEnv()
	cfg := configs.Load()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	middlewares.SetupMiddlewares(app, cfg)

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB(cfg)
	database.TunePool(cfg)
	if ok, _ := strconv.ParseBool(configs.GetEnv("AUTO_MIGRATE", "false")); ok {
		if err := database.Migrate(database.DB); err != nil {
			log.Fatalf("❌ migrate failed: %v", err)
		}
	}
	database.WarmUpQueries()

	routes.SetupRoutes(app, database.DB)

	// 🕑 periodic allocation ledger audit
	var stopAudit func() context.Context
	if auditCfg := jobs.LoadLedgerAuditConfig(); auditCfg.Enabled {
		c, err := jobs.StartLedgerAuditCron(database.DB, auditCfg)
		if err != nil {
			log.Fatalf("❌ ledger audit schedule: %v", err)
		}
		stopAudit = c.Stop
	}

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Printf("✅ Listening on :%s", cfg.AppPort)
		if err := app.Listen("0.0.0.0:" + cfg.AppPort); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + close the DB pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
	if stopAudit != nil {
		<-stopAudit().Done()
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
