package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"go-inventory-sales/models"
	"go-inventory-sales/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProductController struct {
	DB *gorm.DB
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

type productCreateInput struct {
	Name         string  `json:"name" binding:"required,max=150"`
	CategoryID   *uint   `json:"category_id"`
	SKU          *string `json:"sku" binding:"omitempty,max=64"`
	Price        float64 `json:"price" binding:"required,gt=0"`
	ReorderLevel *int    `json:"reorder_level"`
}

type productUpdateInput struct {
	Name         *string  `json:"name" binding:"omitempty,min=1,max=150"`
	CategoryID   *uint    `json:"category_id"`
	SKU          *string  `json:"sku" binding:"omitempty,max=64"`
	Price        *float64 `json:"price" binding:"omitempty,gt=0"`
	ReorderLevel *int     `json:"reorder_level"`
}

func (ctl *ProductController) Create(c *gin.Context) {
	var input productCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	if input.CategoryID != nil {
		var category models.Category
		if err := ctl.DB.First(&category, "category_id = ?", *input.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("category ID %d not found", *input.CategoryID)})
			return
		}
	}

	if input.SKU != nil && *input.SKU != "" {
		var exist models.Product
		if err := ctl.DB.Where("sku = ?", *input.SKU).First(&exist).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("a product with SKU '%s' already exists", *input.SKU)})
			return
		}
	}

	reorderLevel := 10
	if input.ReorderLevel != nil {
		reorderLevel = *input.ReorderLevel
	}

	product := models.Product{
		Name:         input.Name,
		CategoryID:   input.CategoryID,
		SKU:          input.SKU,
		Price:        input.Price,
		ReorderLevel: reorderLevel,
	}

	if err := ctl.DB.Create(&product).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("a product with SKU '%s' already exists", derefOr(input.SKU, ""))})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctl.DB.Preload("Category").First(&product, product.ProductID)
	c.JSON(http.StatusCreated, product)
}

func (ctl *ProductController) List(c *gin.Context) {
	page, limit := pageParams(c)

	q := ctl.DB.Model(&models.Product{})

	if search := c.Query("search"); search != "" {
		like := likePattern(search)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", like, like)
	}
	if s := c.Query("category_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
			return
		}
		q = q.Where("category_id = ?", id)
	}
	if s := c.Query("min_price"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_price"})
			return
		}
		q = q.Where("price >= ?", v)
	}
	if s := c.Query("max_price"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_price"})
			return
		}
		q = q.Where("price <= ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var products []models.Product
	if err := q.Preload("Category").
		Order("product_id").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(products) == 0 && page == 1 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no products found"})
		return
	}

	c.JSON(http.StatusOK, utils.Paginate(products, total, page, limit))
}

func (ctl *ProductController) GetByID(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var product models.Product
	if err := ctl.DB.Preload("Category").First(&product, "product_id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (ctl *ProductController) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var product models.Product
	if err := ctl.DB.First(&product, "product_id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	var input productUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	if input.CategoryID != nil {
		var category models.Category
		if err := ctl.DB.First(&category, "category_id = ?", *input.CategoryID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("category ID %d not found", *input.CategoryID)})
			return
		}
	}

	if input.SKU != nil && *input.SKU != "" {
		var exist models.Product
		err := ctl.DB.Where("sku = ? AND product_id <> ?", *input.SKU, id).First(&exist).Error
		if err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("another product already uses SKU '%s'", *input.SKU)})
			return
		}
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.CategoryID != nil {
		updates["category_id"] = *input.CategoryID
	}
	if input.SKU != nil {
		updates["sku"] = *input.SKU
	}
	if input.Price != nil {
		updates["price"] = *input.Price
	}
	if input.ReorderLevel != nil {
		updates["reorder_level"] = *input.ReorderLevel
	}

	if len(updates) > 0 {
		if err := ctl.DB.Model(&product).Updates(updates).Error; err != nil {
			if isUniqueViolation(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("another product already uses SKU '%s'", derefOr(input.SKU, ""))})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	ctl.DB.Preload("Category").First(&product, product.ProductID)
	c.JSON(http.StatusOK, product)
}

func (ctl *ProductController) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var product models.Product
	if err := ctl.DB.First(&product, "product_id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	// Dependent sale items, stock-in items and movements go with it via
	// ON DELETE CASCADE.
	if err := ctl.DB.Delete(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("product '%s' deleted successfully", product.Name)})
}

func derefOr(s *string, fallback string) string {
	if s != nil {
		return *s
	}
	return fallback
}
