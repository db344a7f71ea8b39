package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"taskhive/internal/adapter/api"
	"taskhive/internal/adapter/api/handler"
	apimiddleware "taskhive/internal/adapter/api/middleware"
	"taskhive/internal/adapter/api/router"
	"taskhive/internal/adapter/repository"
	"taskhive/internal/infrastructure/firebase"
	"taskhive/internal/infrastructure/mailer"
	"taskhive/internal/infrastructure/ws"
	"taskhive/internal/usecase"
	"taskhive/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption

	// Service account JSON wins over a file path so deploys can inject
	// credentials without mounting a file.
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
	} else if serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"); serviceAccountPath != "" {
		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}
		opts = append(opts, option.WithCredentialsFile(serviceAccountPath))
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	taskRepo := repository.NewFirestoreTaskRepository(firestoreClient)
	bidRepo := repository.NewFirestoreBidRepository(firestoreClient)
	progressRepo := repository.NewFirestoreProgressRepository(firestoreClient)
	ratingRepo := repository.NewFirestoreRatingRepository(firestoreClient)
	notificationRepo := repository.NewFirestoreNotificationRepository(firestoreClient)
	calendarRepo := repository.NewFirestoreCalendarRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	hub := ws.NewHub()
	hub.Start(ctx)

	smtpMailer := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPPassword)

	dispatcher := usecase.NewNotificationDispatcher(notificationRepo, userRepo, hub, smtpMailer, cfg.NotifyQueueSize)
	dispatcher.Start(ctx)

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient)
	userUseCase := usecase.NewUserUseCase(userRepo)
	taskUseCase := usecase.NewTaskUseCase(taskRepo, userRepo, dispatcher)
	bidUseCase := usecase.NewBidUseCase(bidRepo, taskRepo, dispatcher)
	recommendationUseCase := usecase.NewRecommendationUseCase(taskRepo, userRepo)
	progressUseCase := usecase.NewProgressUseCase(progressRepo, taskRepo)
	ratingUseCase := usecase.NewRatingUseCase(ratingRepo, taskRepo, userRepo)
	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo)
	calendarUseCase := usecase.NewCalendarUseCase(calendarRepo)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	roleMiddleware := apimiddleware.NewRoleMiddleware(userRepo)

	handlers := router.Handlers{
		Auth:           handler.NewAuthHandler(authUseCase),
		User:           handler.NewUserHandler(userUseCase),
		Task:           handler.NewTaskHandler(taskUseCase),
		Bid:            handler.NewBidHandler(bidUseCase),
		Recommendation: handler.NewRecommendationHandler(recommendationUseCase),
		Progress:       handler.NewProgressHandler(progressUseCase),
		Rating:         handler.NewRatingHandler(ratingUseCase),
		Notification:   handler.NewNotificationHandler(notificationUseCase),
		Calendar:       handler.NewCalendarHandler(calendarUseCase),
		WebSocket:      handler.NewWebSocketHandler(hub, authClient),
	}

	router.Setup(e, handlers, authMiddleware, roleMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
