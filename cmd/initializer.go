package main

import (
	"database/sql"
	"log"

	"firebase.google.com/go/messaging"
	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"tumaBack/internal/config"
	"tumaBack/internal/handlers"
	"tumaBack/internal/repositories"
	"tumaBack/internal/retry"
	"tumaBack/internal/services"
	"tumaBack/utils"
)

type application struct {
	errorLog   *log.Logger
	infoLog    *log.Logger
	signingKey string
	db         *sql.DB

	wsManager *WebSocketManager

	userRepo *repositories.UserRepository

	userHandler     *handlers.UserHandler
	serviceHandler  *handlers.ServiceHandler
	bookingHandler  *handlers.BookingHandler
	messageHandler  *handlers.MessageHandler
	reviewHandler   *handlers.ReviewHandler
	favoriteHandler *handlers.FavoriteHandler
	paymentHandler  *handlers.PaymentHandler
	mediaHandler    *handlers.MediaHandler

	messageService *services.MessageService
}

func initializeApp(db *sql.DB, rdb *redis.Client, fcmClient *messaging.Client, storage *utils.Storage, cfg config.Config, errorLog, infoLog *log.Logger) *application {
	wsManager := NewWebSocketManager()

	// Repositories
	userRepo := repositories.UserRepository{DB: db}
	serviceRepo := repositories.ServiceRepository{DB: db}
	bookingRepo := repositories.BookingRepository{DB: db}
	messageRepo := repositories.MessageRepository{DB: db}
	reviewRepo := repositories.ReviewRepository{DB: db}
	favoriteRepo := repositories.FavoriteRepository{DB: db}
	paymentRepo := repositories.PaymentRepository{DB: db}

	// Services
	tokenManager, err := utils.NewManager(cfg.JWT.SigningKey)
	if err != nil {
		errorLog.Fatal(err)
	}
	notificationService := &services.NotificationService{Client: fcmClient, UserRepo: &userRepo}
	userService := &services.UserService{UserRepo: &userRepo, TokenManager: tokenManager, SigningKey: cfg.JWT.SigningKey}
	serviceService := &services.ServiceService{ServiceRepo: &serviceRepo, Redis: rdb, Retry: retry.Default}
	bookingService := &services.BookingService{
		BookingRepo: &bookingRepo,
		ServiceRepo: &serviceRepo,
		Realtime:    wsManager,
		Notifier:    notificationService,
	}
	messageService := &services.MessageService{
		MessageRepo: &messageRepo,
		BookingRepo: &bookingRepo,
		Realtime:    wsManager,
		Notifier:    notificationService,
	}
	reviewService := &services.ReviewService{ReviewsRepo: &reviewRepo, BookingRepo: &bookingRepo}
	favoriteService := &services.FavoriteService{FavoriteRepo: &favoriteRepo}
	paymentService := services.NewPaymentService(&paymentRepo, &bookingRepo, cfg.Stripe.Currency)

	// Handlers
	userHandler := &handlers.UserHandler{Service: userService}
	serviceHandler := &handlers.ServiceHandler{Service: serviceService}
	bookingHandler := &handlers.BookingHandler{Service: bookingService}
	messageHandler := &handlers.MessageHandler{Service: messageService}
	reviewHandler := &handlers.ReviewHandler{Service: reviewService}
	favoriteHandler := &handlers.FavoriteHandler{Service: favoriteService}
	paymentHandler := &handlers.PaymentHandler{Service: paymentService}
	mediaHandler := &handlers.MediaHandler{Storage: storage}

	return &application{
		errorLog:        errorLog,
		infoLog:         infoLog,
		signingKey:      cfg.JWT.SigningKey,
		db:              db,
		wsManager:       wsManager,
		userRepo:        &userRepo,
		userHandler:     userHandler,
		serviceHandler:  serviceHandler,
		bookingHandler:  bookingHandler,
		messageHandler:  messageHandler,
		reviewHandler:   reviewHandler,
		favoriteHandler: favoriteHandler,
		paymentHandler:  paymentHandler,
		mediaHandler:    mediaHandler,
		messageService:  messageService,
	}
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Printf("Failed to open DB: %v", err)
		return nil, err
	}
	if err = db.Ping(); err != nil {
		log.Printf("Failed to ping DB: %v", err)
		return nil, err
	}
	db.SetMaxIdleConns(35)
	log.Println("Successfully connected to database")
	return db, nil
}
