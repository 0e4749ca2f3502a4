package controllers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"go-inventory-sales/models"
	"go-inventory-sales/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReportsController struct {
	DB *gorm.DB
}

func NewReportsController(db *gorm.DB) *ReportsController {
	return &ReportsController{DB: db}
}

type ProductStockSummary struct {
	TotalProducts          int64   `json:"total_products"`
	TotalStockValue        float64 `json:"total_stock_value"`
	ProductsNeedingRestock int64   `json:"products_needing_restock"`
	RestockPercentage      float64 `json:"restock_percentage"`
}

type MostProfitableProduct struct {
	Name        string  `gorm:"column:product_name" json:"name"`
	TotalProfit float64 `gorm:"column:total_profit" json:"total_profit"`
}

type ProfitabilitySummary struct {
	TotalSales            int64                   `json:"total_sales"`
	TotalRevenue          float64                 `json:"total_revenue"`
	TotalCOGS             float64                 `json:"total_cogs"`
	TotalGrossProfit      float64                 `json:"total_gross_profit"`
	AverageProfitMargin   float64                 `json:"average_profit_margin"`
	TopProfitableProducts []MostProfitableProduct `json:"top_profitable_products"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// productStockQuery applies the productFilter/search parameters shared by the
// stock report and its export.
func (ctl *ReportsController) productStockQuery(c *gin.Context) *gorm.DB {
	q := ctl.DB.Model(&models.ProductStock{})

	switch c.Query("productFilter") {
	case "r":
		q = q.Where("needs_restock = ?", 1)
	case "nr":
		q = q.Where("needs_restock = ?", 0)
	}
	if search := c.Query("search"); search != "" {
		q = q.Where("LOWER(name) LIKE ?", likePattern(search))
	}
	return q
}

// profitabilityQuery applies the date-range/search/product_id parameters
// shared by the profitability report and its export. Responds 400 itself on a
// malformed parameter.
func (ctl *ReportsController) profitabilityQuery(c *gin.Context) (*gorm.DB, bool) {
	q := ctl.DB.Model(&models.ProfitabilityReport{})

	q, ok := dateRange(c, q, "sale_datetime")
	if !ok {
		return nil, false
	}
	if search := c.Query("search"); search != "" {
		q = q.Where("LOWER(product_name) LIKE ?", likePattern(search))
	}
	if s := c.Query("product_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product_id"})
			return nil, false
		}
		q = q.Where("product_id = ?", id)
	}
	return q, true
}

func (ctl *ReportsController) ProductStock(c *gin.Context) {
	page, limit := pageParams(c)

	q := ctl.productStockQuery(c)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if total == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no product stock data found"})
		return
	}

	var rows []models.ProductStock
	if err := q.Order("name").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, utils.Paginate(rows, total, page, limit))
}

func (ctl *ReportsController) Profitability(c *gin.Context) {
	page, limit := pageParams(c)

	q, ok := ctl.profitabilityQuery(c)
	if !ok {
		return
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if total == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no profitability data found for the given criteria"})
		return
	}

	var rows []models.ProfitabilityReport
	if err := q.Order("sale_datetime DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, utils.Paginate(rows, total, page, limit))
}

// ProductStockSummary aggregates the stock view. The needs_restock_only flag
// scopes every figure, including the percentage's denominator.
func (ctl *ReportsController) ProductStockSummary(c *gin.Context) {
	needsRestockOnly, _ := strconv.ParseBool(c.DefaultQuery("needs_restock_only", "false"))

	scope := func() *gorm.DB {
		q := ctl.DB.Model(&models.ProductStock{})
		if needsRestockOnly {
			q = q.Where("needs_restock = ?", 1)
		}
		return q
	}

	var totalProducts int64
	if err := scope().Count(&totalProducts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var totalStockValue float64
	if err := scope().
		Select("COALESCE(SUM(stock_on_hand * price), 0)").
		Scan(&totalStockValue).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var needingRestock int64
	if err := scope().Where("needs_restock = ?", 1).Count(&needingRestock).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	restockPercentage := 0.0
	if totalProducts > 0 {
		restockPercentage = round2(float64(needingRestock) / float64(totalProducts) * 100)
	}

	c.JSON(http.StatusOK, ProductStockSummary{
		TotalProducts:          totalProducts,
		TotalStockValue:        totalStockValue,
		ProductsNeedingRestock: needingRestock,
		RestockPercentage:      restockPercentage,
	})
}

// ProfitabilitySummary aggregates the profitability view over an optional
// date range. An empty scope returns zeroes rather than a division error.
func (ctl *ReportsController) ProfitabilitySummary(c *gin.Context) {
	var start, end *time.Time
	if s := c.Query("start_date"); s != "" {
		t, err := utils.ParseStartDate(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date format, use YYYY-MM-DD"})
			return
		}
		start = &t
	}
	if s := c.Query("end_date"); s != "" {
		t, err := utils.ParseEndDate(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date format, use YYYY-MM-DD"})
			return
		}
		end = &t
	}

	scope := func() *gorm.DB {
		q := ctl.DB.Model(&models.ProfitabilityReport{})
		if start != nil {
			q = q.Where("sale_datetime >= ?", *start)
		}
		if end != nil {
			q = q.Where("sale_datetime <= ?", *end)
		}
		return q
	}

	var totalSales int64
	if err := scope().Count(&totalSales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if totalSales == 0 {
		c.JSON(http.StatusOK, ProfitabilitySummary{})
		return
	}

	var totals struct {
		TotalRevenue     float64 `gorm:"column:total_revenue"`
		TotalCOGS        float64 `gorm:"column:total_cogs"`
		TotalGrossProfit float64 `gorm:"column:total_gross_profit"`
	}
	if err := scope().
		Select(`COALESCE(SUM(total_revenue), 0) AS total_revenue,
			COALESCE(SUM(total_cogs), 0) AS total_cogs,
			COALESCE(SUM(gross_profit), 0) AS total_gross_profit`).
		Scan(&totals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	averageProfitMargin := 0.0
	if totals.TotalRevenue > 0 {
		averageProfitMargin = round2(totals.TotalGrossProfit / totals.TotalRevenue * 100)
	}

	// Ties share whatever order the aggregation produces; no secondary
	// tie-break is promised.
	var topProducts []MostProfitableProduct
	if err := scope().
		Select("product_name, SUM(gross_profit) AS total_profit").
		Group("product_id, product_name").
		Order("SUM(gross_profit) DESC").
		Limit(3).
		Scan(&topProducts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ProfitabilitySummary{
		TotalSales:            totalSales,
		TotalRevenue:          totals.TotalRevenue,
		TotalCOGS:             totals.TotalCOGS,
		TotalGrossProfit:      totals.TotalGrossProfit,
		AverageProfitMargin:   averageProfitMargin,
		TopProfitableProducts: topProducts,
	})
}
