package main

import (
	"context"
	"log"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"saturnalia/internal/adapter/api"
	"saturnalia/internal/adapter/api/handler"
	apimiddleware "saturnalia/internal/adapter/api/middleware"
	"saturnalia/internal/adapter/api/router"
	"saturnalia/internal/adapter/repository"
	"saturnalia/internal/infrastructure/firebase"
	fsinfra "saturnalia/internal/infrastructure/firestore"
	"saturnalia/internal/infrastructure/storage"
	"saturnalia/internal/infrastructure/websocket"
	"saturnalia/internal/state"
	"saturnalia/internal/usecase"
	"saturnalia/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	credentialsPath := ""

	// Service account comes from the environment in production; a file path
	// is the local-development fallback.
	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		credentialsPath = os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if credentialsPath == "" {
			credentialsPath = "./service-account.json"
		}

		if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", credentialsPath)
		}

		log.Printf("Using Firebase service account from file: %s", credentialsPath)
		opt = option.WithCredentialsFile(credentialsPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, credentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	subscriber := fsinfra.NewSubscriber(firestoreClient)

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	productRepo := repository.NewFirestoreProductRepository(firestoreClient, subscriber)
	cartRepo := repository.NewFirestoreCartRepository(firestoreClient, subscriber)
	orderRepo := repository.NewFirestoreOrderRepository(firestoreClient, subscriber)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	// The catalog mirror is process-wide; every feed connection shares it.
	catalog := state.NewCatalog(productRepo)
	catalog.Start(ctx)
	defer catalog.Stop()

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient, cfg.AllowedEmailDomain)
	productUseCase := usecase.NewProductUseCase(productRepo)
	cartUseCase := usecase.NewCartUseCase(cartRepo, productRepo)
	checkoutUseCase := usecase.NewCheckoutUseCase(cartRepo, orderRepo)
	orderUseCase := usecase.NewOrderUseCase(orderRepo)
	adminGate := usecase.NewAdminGate(cfg.AdminID, cfg.AdminPassword)

	orderProcessor := usecase.NewOrderProcessorUseCase(orderRepo, productRepo, time.Duration(cfg.ProcessorInterval)*time.Second)
	go orderProcessor.StartProcessingJob(ctx)

	handler.Setup(authUseCase, productUseCase, cartUseCase, checkoutUseCase, orderUseCase, adminGate)
	handler.SetupFileHandler(storageClient)

	wsHandler := handler.NewWebSocketHandler(wsManager, authUseCase, catalog, cartRepo, orderRepo)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authUseCase)
	adminMiddleware := apimiddleware.NewAdminMiddleware(adminGate)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	router.Setup(e, authMiddleware, adminMiddleware, wsHandler)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
