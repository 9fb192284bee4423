package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-ordering/config"
	"github.com/yeremiapane/restaurant-ordering/database"
	"github.com/yeremiapane/restaurant-ordering/notify"
	"github.com/yeremiapane/restaurant-ordering/router"
	"github.com/yeremiapane/restaurant-ordering/services"
	"github.com/yeremiapane/restaurant-ordering/utils"
	"golang.org/x/sync/errgroup"
)

const amqpExchange = "restaurant.events"

func main() {
	cfg := config.Load()

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
		if cfg.JWTSecret == "" {
			utils.ErrorLogger.Fatal("JWT_SECRET must be set in release mode")
		}
		if cfg.StaffKey == "" {
			utils.ErrorLogger.Fatal("STAFF_KEY must be set in release mode")
		}
	}
	utils.ConfigureJWT(cfg.JWTSecret, cfg.TokenTTL)

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate database: %v", err)
	}

	categories, err := config.LoadCatalogCategories(cfg.CatalogFile)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load catalog: %v", err)
	}
	registry, err := services.NewCategoryRegistry(categories)
	if err != nil {
		utils.ErrorLogger.Fatalf("Invalid catalog: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var tokens utils.TokenStore = utils.NewMemoryTokenStore()
	if cfg.RedisURL != "" {
		redisTokens, err := utils.NewRedisTokenStore(ctx, cfg.RedisURL)
		if err != nil {
			utils.ErrorLogger.Fatalf("Failed to connect to redis: %v", err)
		}
		defer redisTokens.Close()
		tokens = redisTokens
		utils.InfoLogger.Println("Token revocation backed by redis")
	}

	hub := notify.NewHub()
	publishers := notify.Multi{hub}
	if cfg.AMQPURL != "" {
		amqpPub, err := notify.NewAMQPPublisher(cfg.AMQPURL, amqpExchange)
		if err != nil {
			utils.ErrorLogger.Fatalf("Failed to connect to AMQP broker: %v", err)
		}
		defer amqpPub.Close()
		publishers = append(publishers, amqpPub)
		utils.InfoLogger.Printf("Publishing events to AMQP exchange %s", amqpExchange)
	}

	r := router.SetupRouter(router.Dependencies{
		DB:             db,
		Registry:       registry,
		Tokens:         tokens,
		Hub:            hub,
		Publisher:      publishers,
		CORSOrigins:    cfg.CORSOrigins,
		StaffKey:       cfg.StaffKey,
		RestaurantName: cfg.RestaurantName,
		PublicBaseURL:  cfg.PublicBaseURL,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.AttendanceResetCron != "" {
		scheduler, err := services.NewAttendanceScheduler(services.NewSupplierService(db, publishers), cfg.AttendanceResetCron)
		if err != nil {
			utils.ErrorLogger.Fatalf("Failed to start attendance scheduler: %v", err)
		}
		scheduler.Start()
		g.Go(func() error {
			<-gctx.Done()
			return scheduler.Stop()
		})
	}

	g.Go(func() error {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		utils.InfoLogger.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		utils.ErrorLogger.Errorf("Server stopped with error: %v", err)
		os.Exit(1)
	}
	utils.InfoLogger.Println("Server stopped")
}
