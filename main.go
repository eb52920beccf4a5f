// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"kesar-storefront/cart"
	"kesar-storefront/catalog"
	"kesar-storefront/controllers"
	"kesar-storefront/middleware"
	"kesar-storefront/notify"
	"kesar-storefront/routes"
	"kesar-storefront/stock"
	"kesar-storefront/storage"
	"kesar-storefront/utils"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	// Set the JWT secret key
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		utils.JwtKey = []byte(secret)
	}

	// Pick the persistence substrate
	var store storage.Store
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		client, err := storage.Connect(uri)
		if err != nil {
			log.Fatal(err)
		}
		defer func() {
			if err = client.Disconnect(context.TODO()); err != nil {
				log.Fatal(err)
			}
		}()
		store = storage.NewMongoStore(client, "kesar", "kv")
	} else if path := os.Getenv("DATA_FILE"); path != "" {
		fileStore, err := storage.NewFileStore(path)
		if err != nil {
			log.Fatal(err)
		}
		store = fileStore
	} else {
		log.Println("No MONGO_URI or DATA_FILE set. Carts will not survive restarts.")
		store = storage.NewMemoryStore()
	}

	persist := storage.NewPersistence(store, cart.SchemaVersion, "kesar:")
	cart.RegisterMigrations(persist)

	// Load the product catalog
	products, err := catalog.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Simulated collaborators
	checker := stock.NewSimulator(
		envDuration("STOCK_LATENCY_MS", 500*time.Millisecond),
		envFloat("STOCK_FAILURE_RATE", 0.1),
	)
	orchestrator := cart.NewOrchestrator(persist, checker, notify.LogNotifier{})

	var mailer utils.Mailer = &utils.SimulatedMailer{
		Latency:     envDuration("MAIL_LATENCY_MS", time.Second),
		FailureRate: envFloat("MAIL_FAILURE_RATE", 0.1),
	}
	if os.Getenv("POSTMARK_API_TOKEN") != "" {
		mailer = utils.NewPostmarkMailer()
	}

	// Initialize controllers
	productController := controllers.NewProductController(products)
	cartController := controllers.NewCartController(orchestrator, products)
	contactController := controllers.NewContactController(mailer)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, productController, cartController, contactController)
	router.Use(middleware.SessionMiddleware)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	fmt.Printf("Server is running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	ms, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using default", key, v)
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("Invalid %s=%q, using default", key, v)
		return def
	}
	return f
}
