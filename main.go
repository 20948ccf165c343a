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
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"hotel-backoffice/config"
	"hotel-backoffice/controllers"
	"hotel-backoffice/routes"
	"hotel-backoffice/services"
)

func main() {
	// Load .env (optional)
	envErr := godotenv.Load()

	cfg := config.LoadAppConfig()
	log := config.NewLogger(cfg)
	if envErr != nil {
		log.Debug(".env not loaded; using process environment")
	}
	gin.SetMode(cfg.GinMode)

	db, err := config.ConnectDatabase(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("database connect failed")
	}
	log.Info("database connection established")

	// Initialize services
	activity := services.NewActivityService(db, log)
	invoiceSvc := services.NewInvoiceService(db, activity, cfg.DefaultCurrency, cfg.SystemUserID)
	reservationSvc := services.NewReservationService(db, activity, cfg.SystemUserID)
	staySvc := services.NewStayService(db, invoiceSvc, activity, log, cfg.SystemUserID)

	// Initialize controllers
	ctl := routes.Controllers{
		Guests: controllers.NewGuestController(services.NewGuestService(db), reservationSvc, staySvc, invoiceSvc, log),
		Rooms: controllers.NewRoomController(
			services.NewRoomService(db),
			services.NewRoomTypeService(db),
			services.NewRoomStatusService(db),
			log,
		),
		Reservations: controllers.NewReservationController(reservationSvc, staySvc, log),
		Invoices:     controllers.NewInvoiceController(invoiceSvc, log),
		Items:        controllers.NewItemController(services.NewItemService(db), log),
		Users:        controllers.NewUserController(services.NewUserService(db), log),
		Dashboard:    controllers.NewDashboardController(services.NewDashboardService(db, cfg.DefaultCurrency), activity, log),
	}

	router := routes.SetupRouter(ctl, routes.Options{
		CorsOrigins:  cfg.CorsOrigins,
		SystemUserID: cfg.SystemUserID,
		Log:          log,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.WithField("addr", addr).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("listen failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.WithFields(logrus.Fields{"addr": addr}).Info("server stopped gracefully")
}
