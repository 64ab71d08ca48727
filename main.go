package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Madhav-Gupta-28/upi-paysim-backend-go/config"
	"github.com/Madhav-Gupta-28/upi-paysim-backend-go/handlers"
	custommiddleware "github.com/Madhav-Gupta-28/upi-paysim-backend-go/middleware"
	"github.com/Madhav-Gupta-28/upi-paysim-backend-go/routes"
	"github.com/Madhav-Gupta-28/upi-paysim-backend-go/store"
)

func main() {
	// Load environment variables
	config.LoadEnv()

	// Initialize Echo
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(custommiddleware.Metrics())

	// Pick the transaction store backend
	transactionStore, err := buildStore()
	if err != nil {
		log.Fatal("Failed to initialize transaction store:", err)
	}

	// Setup routes
	static := &handlers.StaticHandler{Root: config.GetEnv("STATIC_DIR", "public")}
	h := handlers.NewTransactionHandler(transactionStore, static)
	routes.SetupRoutes(e, h, static)

	// Start the server
	port := config.GetEnv("PORT", "8080")
	fmt.Printf("Payment simulation server running on http://localhost:%s\n", port)
	e.Logger.Fatal(e.Start(":" + port))
}

func buildStore() (store.TransactionStore, error) {
	backend := config.GetEnv("STORE_BACKEND", "memory")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch backend {
	case "memory":
		return store.NewMemoryStore(), nil
	case "mongo":
		return store.NewMongoStore(ctx, os.Getenv("MONGODB_URI"), config.GetEnv("MONGODB_DATABASE", "paysim"))
	case "dynamo":
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, err
		}
		return store.NewDynamoStore(
			store.WithDynamoClient(dynamodb.NewFromConfig(cfg)),
			store.WithTableName(config.GetEnv("DYNAMO_TABLE", "transactions")),
		), nil
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", backend)
	}
}
