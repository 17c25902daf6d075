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

	"ecowaste/internal/app"
	"ecowaste/internal/config"
	"ecowaste/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real env vars win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("level=warn msg=.env not loaded err=%v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("level=fatal msg=config error err=%v", err)
	}
	if cfg.AppEnv == "prod" || cfg.AppEnv == "production" || cfg.AppEnv == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("level=fatal msg=db connect failed err=%v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("level=fatal msg=migrate failed err=%v", err)
	}

	if cfg.Razorpay.KeyID == "" || cfg.Razorpay.KeySecret == "" {
		log.Printf("level=warn msg=razorpay keys missing, payment endpoints disabled")
	}

	a := app.New(cfg, db, app.Options{Loggerf: log.Printf})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("level=info msg=server listening addr=%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("level=fatal msg=server error err=%v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Printf("level=info msg=shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	a.Hub.Close()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("level=error msg=shutdown failed err=%v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
