package routes

import (
	"go-inventory-sales/controllers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	categoryCtl := controllers.NewCategoryController(db)
	productCtl := controllers.NewProductController(db)
	saleCtl := controllers.NewSaleController(db)
	stockInCtl := controllers.NewStockInController(db)
	movementCtl := controllers.NewInventoryMovementController(db)
	reportsCtl := controllers.NewReportsController(db)

	categories := r.Group("/categories")
	{
		categories.POST("", categoryCtl.Create)
		categories.GET("", categoryCtl.List)
		categories.GET("/:id", categoryCtl.GetByID)
		categories.PUT("/:id", categoryCtl.Update)
		categories.DELETE("/:id", categoryCtl.Delete)
	}

	products := r.Group("/products")
	{
		products.POST("", productCtl.Create)
		products.GET("", productCtl.List)
		products.GET("/:id", productCtl.GetByID)
		products.PATCH("/:id", productCtl.Update)
		products.DELETE("/:id", productCtl.Delete)
	}

	sales := r.Group("/sales")
	{
		sales.POST("", saleCtl.Create)
		sales.GET("", saleCtl.List)
		sales.GET("/items/:item_id", saleCtl.GetItem)
		sales.GET("/:id", saleCtl.GetByID)
		sales.PATCH("/:id", saleCtl.Update)
		sales.DELETE("/:id", saleCtl.Delete)
		sales.POST("/:id/items", saleCtl.AddItem)
		sales.PATCH("/:id/items/:item_id", saleCtl.UpdateItem)
		sales.DELETE("/:id/items/:item_id", saleCtl.DeleteItem)
	}

	stockIn := r.Group("/stock-in")
	{
		stockIn.POST("", stockInCtl.Create)
		stockIn.GET("", stockInCtl.List)
		stockIn.GET("/items/:item_id", stockInCtl.GetItem)
		stockIn.GET("/:id", stockInCtl.GetByID)
		stockIn.PATCH("/:id", stockInCtl.Update)
		stockIn.DELETE("/:id", stockInCtl.Delete)
		stockIn.POST("/:id/items", stockInCtl.AddItem)
		stockIn.PATCH("/:id/items/:item_id", stockInCtl.UpdateItem)
		stockIn.DELETE("/:id/items/:item_id", stockInCtl.DeleteItem)
	}

	movements := r.Group("/inventory-movements")
	{
		movements.GET("", movementCtl.List)
		movements.GET("/:id", movementCtl.GetByID)
		movements.PATCH("/:id", movementCtl.Update)
	}

	reports := r.Group("/reports")
	{
		reports.GET("/product-stock", reportsCtl.ProductStock)
		reports.GET("/product-stock/summary", reportsCtl.ProductStockSummary)
		reports.GET("/product-stock/export", reportsCtl.ExportProductStock)
		reports.GET("/profitability", reportsCtl.Profitability)
		reports.GET("/profitability/summary", reportsCtl.ProfitabilitySummary)
		reports.GET("/profitability/export", reportsCtl.ExportProfitability)
	}
}
