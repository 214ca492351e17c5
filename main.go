// main.go
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gewnthar/sdmxmeta/config"
	"github.com/gewnthar/sdmxmeta/database"
	"github.com/gewnthar/sdmxmeta/handlers"
	"github.com/gewnthar/sdmxmeta/sdmx"
	"github.com/gewnthar/sdmxmeta/services"
)

func main() {
	log.Println("Starting SDMX metadata extraction service...")

	configPath := "config/config.yaml"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configPath = "config.yaml"
		if _, errFallback := os.Stat(configPath); os.IsNotExist(errFallback) {
			log.Fatalf("Config file not found at default paths. Error: %v", errFallback)
		}
	}

	if err := config.LoadConfig(configPath); err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	log.Printf("Configuration loaded. Server port: %s, DB name: %s",
		config.AppConfig.Server.Port, config.AppConfig.Database.DBName)
	log.Printf("Known SDMX endpoints: %d, fetch timeout: %s",
		len(config.AppConfig.SDMX.Endpoints), config.AppConfig.SDMX.FetchTimeout)

	if len(config.AppConfig.SDMX.StructurePrefixes) > 0 {
		sdmx.SetStructurePrefixes(config.AppConfig.SDMX.StructurePrefixes)
		log.Printf("Navigator using namespace prefixes: %v", config.AppConfig.SDMX.StructurePrefixes)
	}

	if err := database.InitDB(config.AppConfig.Database); err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}
	defer database.CloseDB()

	services.InitCacheInventory()

	// --- Setup HTTP routes ---
	http.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := database.DB.Ping(); err != nil {
			http.Error(w, `{"status": "error", "message": "database connection error"}`, http.StatusInternalServerError)
			log.Printf("Health check failed: DB ping error: %v", err)
			return
		}
		fmt.Fprintln(w, `{"status": "ok", "message": "sdmxmeta backend is healthy"}`)
	})

	http.HandleFunc("/api/schemas/extract", handlers.ExtractSchemaHandler)
	http.HandleFunc("/api/schemas/cached", handlers.CachedSchemaHandler)
	http.HandleFunc("/api/schemas/key", handlers.ConstructKeyHandler)
	http.HandleFunc("/api/availability/extract", handlers.ExtractAvailabilityHandler)
	http.HandleFunc("/api/availability/cached", handlers.CachedAvailabilityHandler)
	http.HandleFunc("/api/availability/values", handlers.AvailableValuesHandler)
	http.HandleFunc("/api/reconcile", handlers.ReconcileHandler)
	http.HandleFunc("/api/reconcile/gaps", handlers.DataGapsHandler)

	serverAddr := ":" + config.AppConfig.Server.Port
	log.Printf("Server starting on http://localhost%s\n", serverAddr)
	if err := http.ListenAndServe(serverAddr, nil); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
