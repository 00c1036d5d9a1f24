package main

import (
	"fmt"
	"log"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/models"
)

// Seeds the catalog with a few demo products for local development.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	products := []models.Product{
		{Name: "Espresso beans 1kg", Price: 18.50, Stock: 40},
		{Name: "Pour-over kettle", Price: 42.00, Stock: 15},
		{Name: "Ceramic mug", Price: 9.90, Stock: 120},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			log.Printf("Warning: failed to seed product %q: %v", products[i].Name, err)
			continue
		}
		fmt.Printf("Seeded product %d: %s\n", products[i].ID, products[i].Name)
	}
}
