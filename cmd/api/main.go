package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"homecare/internal/config"
	"homecare/internal/database"
	"homecare/internal/middleware"
	"homecare/internal/modules/assignment"
	"homecare/internal/modules/auth"
	"homecare/internal/modules/booking"
	"homecare/internal/modules/pricing"
	jwtsvc "homecare/internal/pkg/jwt"
	"homecare/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	settingsRepo := repository.NewSettingsRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	helperRepo := repository.NewHelperRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	shiftRepo := repository.NewShiftRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	calc := pricing.NewCalculator(settingsRepo)

	authService := auth.NewService(adminRepo, j)
	authHandler := auth.NewHandler(authService)

	bookingService := booking.NewService(bookingRepo, shiftRepo, serviceRepo, customerRepo, helperRepo, calc)
	bookingHandler := booking.NewHandler(bookingService)

	assignmentService := assignment.NewService(bookingRepo, shiftRepo, helperRepo, calc)
	assignmentHandler := assignment.NewHandler(assignmentService)

	sweeper := assignment.NewSweeper(bookingRepo, shiftRepo, helperRepo, calc, assignment.SweeperConfig{
		Interval:  cfg.SweepInterval,
		Lookahead: cfg.SweepLookahead,
		Cutoff:    cfg.SweepCutoff,
	})

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.RequestLogger())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)

		admin := v1.Group("/admin")
		admin.Use(middleware.Auth(j))
		{
			bookingHandler.RegisterRoutes(admin)
			assignmentHandler.RegisterRoutes(admin)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stopSweeper := sweeper.Start(ctx)
	defer close(stopSweeper)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()
	log.Printf("listening on %s", cfg.Addr)

	<-ctx.Done()
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}
