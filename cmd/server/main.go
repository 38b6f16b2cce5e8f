package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/restaurant-management/internal/config"
	"github.com/iliyamo/restaurant-management/internal/database"
	"github.com/iliyamo/restaurant-management/internal/handler"
	"github.com/iliyamo/restaurant-management/internal/middleware"
	"github.com/iliyamo/restaurant-management/internal/queue"
	"github.com/iliyamo/restaurant-management/internal/repository"
	"github.com/iliyamo/restaurant-management/internal/router"
	"github.com/iliyamo/restaurant-management/internal/service"
)

// txTimeout bounds every workflow transaction. A transaction that
// cannot finish inside this window is rolled back and reported as a
// timeout.
const txTimeout = 5 * time.Second

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}
	cancel()

	// Transactional core.
	store := repository.NewStore()
	coord := service.NewCoordinator(db, txTimeout)
	orderSvc := service.NewOrderService(store, coord)
	billingSvc := service.NewBillingService(store, coord)
	reservationSvc := service.NewReservationService(store, coord)

	// Read repositories.
	menuRepo := repository.NewMenuRepo(db)
	employeeRepo := repository.NewEmployeeRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	tableRepo := repository.NewTableRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	billRepo := repository.NewBillRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	reviewRepo := repository.NewReviewRepo(db)

	// Background activity log consumer; reconnects on its own.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	// Distributed rate limiting; absent Redis the API runs unlimited.
	rlCfg := config.LoadRateLimitConfig()
	rdb := config.NewRedisClient()
	if rdb == nil && rlCfg.Enabled {
		log.Printf("redis unavailable, rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(rlCfg, rdb))

	router.Register(e, router.Deps{
		JWTSecret:    cfg.JWTSecret,
		Health:       handler.Health(db),
		Auth:         handler.NewAuthHandler(cfg, employeeRepo),
		Menu:         handler.NewMenuHandler(menuRepo),
		Tables:       handler.NewTableHandler(tableRepo),
		Customers:    handler.NewCustomerHandler(customerRepo),
		Orders:       handler.NewOrderHandler(orderSvc, orderRepo),
		Bills:        handler.NewBillHandler(billingSvc, billRepo),
		Reservations: handler.NewReservationHandler(reservationSvc, reservationRepo),
		Reviews:      handler.NewReviewHandler(reviewRepo),
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
