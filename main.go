package main

import (
	"log"
	"net/http"
	"os"

	"go-inventory-sales/config"
	"go-inventory-sales/middlewares"
	"go-inventory-sales/models"
	"go-inventory-sales/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	db := config.ConnectDB()

	// Tables only. The stock/profitability views and the total/movement
	// triggers are provisioned with the database itself.
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Sale{},
		&models.SaleItem{},
		&models.StockIn{},
		&models.StockInItem{},
		&models.InventoryMovement{},
	); err != nil {
		log.Fatalf("auto-migration failed: %v", err)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	frontendOrigin := os.Getenv("FRONTEND_ORIGIN")
	if frontendOrigin == "" {
		frontendOrigin = "http://localhost:5173"
	}
	r.Use(middlewares.CORS(frontendOrigin))

	routes.SetupRoutes(r, db)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Inventory and Sales API"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
