package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookcircle/config"
	"bookcircle/cron"
	"bookcircle/database"
	bookRepoPkg "bookcircle/database/repository/book"
	creditRepoPkg "bookcircle/database/repository/credit"
	rentalRepoPkg "bookcircle/database/repository/rental"
	societyRepoPkg "bookcircle/database/repository/society"
	userRepoPkg "bookcircle/database/repository/user"
	"bookcircle/handlers"
	"bookcircle/routes"
	"bookcircle/services/book"
	"bookcircle/services/credit"
	"bookcircle/services/notification"
	"bookcircle/services/payment"
	"bookcircle/services/rental"
	"bookcircle/services/society"
	"bookcircle/services/user"
	"bookcircle/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	storageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	societyRepo := societyRepoPkg.NewMongoSocietyRepo()
	bookRepo := bookRepoPkg.NewMongoBookRepo()
	rentalRepo := rentalRepoPkg.NewMongoRentalRepo()
	creditRepo := creditRepoPkg.NewMongoCreditRepo()

	// services.
	notificationService := &notification.DefaultNotificationService{
		Users: userRepo,
	}

	creditService := &credit.DefaultCreditService{
		Repo:     creditRepo,
		Users:    userRepo,
		Rentals:  rentalRepo,
		Notifier: notificationService,
	}

	userService := &user.DefaultUserService{
		Repo:    userRepo,
		Credits: creditService,
	}

	societyService := &society.DefaultSocietyService{
		Repo:     societyRepo,
		Users:    userRepo,
		Notifier: notificationService,
	}

	catalogClient := book.NewCatalogClient(config.AppConfig.BooksAPIKey, utils.GetCacheClient())
	bookService := &book.DefaultBookService{
		Repo:      bookRepo,
		Users:     userRepo,
		Societies: societyRepo,
		Credits:   creditService,
		Catalog:   catalogClient,
	}

	paymentHandler := payment.NewPaymentHandler(logger, creditService, notificationService)
	rentalService := &rental.DefaultRentalService{
		Rentals:  rentalRepo,
		Books:    bookRepo,
		Users:    userRepo,
		Payments: paymentHandler,
		Credits:  creditService,
		Notifier: notificationService,
	}

	// handlers.
	userHandler := handlers.NewUserHandler(userService, creditService, notificationService)
	societyHandler := handlers.NewSocietyHandler(societyService)
	bookHandler := handlers.NewBookHandler(bookService, storageService)
	rentalHandler := handlers.NewRentalHandler(rentalService)
	adminHandler := handlers.NewAdminHandler(userService, societyService, creditService, userRepo, rentalRepo)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:       userRepo,
		UserHandler:    userHandler,
		SocietyHandler: societyHandler,
		BookHandler:    bookHandler,
		RentalHandler:  rentalHandler,
		AdminHandler:   adminHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background workers: overdue sweeps and due-date reminders.
	cron.InitRentalWorker(rentalRepo, notificationService)

	utils.StartHealthMonitor(utils.GetCacheClient(), utils.GetAuthCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
