package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-inventory-sales/models"
	"go-inventory-sales/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SaleController struct {
	DB *gorm.DB
}

func NewSaleController(db *gorm.DB) *SaleController {
	return &SaleController{DB: db}
}

type saleItemInput struct {
	ProductID uint     `json:"product_id" binding:"required"`
	Quantity  int      `json:"quantity" binding:"required,gt=0"`
	UnitPrice *float64 `json:"unit_price" binding:"omitempty,gt=0"`
	Discount  float64  `json:"discount" binding:"omitempty,gte=0"`
}

type saleCreateInput struct {
	SaleDatetime  *time.Time      `json:"sale_datetime"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
	Notes         *string         `json:"notes" binding:"omitempty,max=255"`
	Items         []saleItemInput `json:"items"`
}

type saleUpdateInput struct {
	SaleDatetime  *time.Time `json:"sale_datetime"`
	PaymentMethod *string    `json:"payment_method" binding:"omitempty,oneof=Cash Card QR"`
	Notes         *string    `json:"notes" binding:"omitempty,max=255"`
}

type saleItemUpdateInput struct {
	ProductID *uint    `json:"product_id"`
	Quantity  *int     `json:"quantity" binding:"omitempty,gt=0"`
	UnitPrice *float64 `json:"unit_price" binding:"omitempty,gt=0"`
	Discount  *float64 `json:"discount" binding:"omitempty,gte=0"`
}

// normalizePaymentMethod matches the payment method case-insensitively
// against the accepted set.
func normalizePaymentMethod(s string) (string, bool) {
	switch strings.ToLower(s) {
	case "cash":
		return models.PaymentCash, true
	case "card":
		return models.PaymentCard, true
	case "qr":
		return models.PaymentQR, true
	}
	return "", false
}

// Create inserts a sale and its items as one transaction. total_amount is
// written as 0; the database trigger recomputes it from the items.
func (ctl *SaleController) Create(c *gin.Context) {
	var input saleCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	paymentMethod, ok := normalizePaymentMethod(input.PaymentMethod)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment method, allowed values are: Cash, Card, QR"})
		return
	}

	saleDatetime := time.Now()
	if input.SaleDatetime != nil {
		saleDatetime = *input.SaleDatetime
	}

	var sale models.Sale
	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		sale = models.Sale{
			SaleDatetime:  saleDatetime,
			TotalAmount:   0,
			PaymentMethod: paymentMethod,
			Notes:         input.Notes,
		}
		if err := tx.Create(&sale).Error; err != nil {
			return err
		}

		seen := make(map[uint]bool, len(input.Items))
		for _, item := range input.Items {
			if seen[item.ProductID] {
				return failBadRequest(fmt.Sprintf("product ID %d already exists in this sale", item.ProductID))
			}
			seen[item.ProductID] = true

			var product models.Product
			if err := tx.First(&product, "product_id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return failNotFound(fmt.Sprintf("product ID %d not found", item.ProductID))
				}
				return err
			}

			unitPrice := product.Price
			if item.UnitPrice != nil {
				unitPrice = *item.UnitPrice
			}

			saleItem := models.SaleItem{
				SaleID:    sale.SaleID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: unitPrice,
				Discount:  item.Discount,
			}
			if err := tx.Create(&saleItem).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	// Re-fetch so the trigger-maintained total is visible to the caller.
	ctl.DB.Preload("Items").First(&sale, sale.SaleID)
	c.JSON(http.StatusCreated, sale)
}

func (ctl *SaleController) List(c *gin.Context) {
	page, limit := pageParams(c)

	q := ctl.DB.Model(&models.Sale{})

	if search := c.Query("search"); search != "" {
		q = q.Where("LOWER(notes) LIKE ?", likePattern(search))
	}
	if pm := c.Query("payment_method"); pm != "" {
		q = q.Where("payment_method = ?", pm)
	}
	q, ok := dateRange(c, q, "sale_datetime")
	if !ok {
		return
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var sales []models.Sale
	if err := q.Preload("Items").
		Order("sale_datetime DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(sales) == 0 && page == 1 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no sales found"})
		return
	}

	c.JSON(http.StatusOK, utils.Paginate(sales, total, page, limit))
}

func (ctl *SaleController) GetByID(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var sale models.Sale
	if err := ctl.DB.Preload("Items").First(&sale, "sale_id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
		return
	}

	c.JSON(http.StatusOK, sale)
}

// Update mutates header fields only; items are managed through the item
// sub-resource.
func (ctl *SaleController) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var sale models.Sale
	if err := ctl.DB.First(&sale, "sale_id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
		return
	}

	var input saleUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.SaleDatetime != nil {
		updates["sale_datetime"] = *input.SaleDatetime
	}
	if input.PaymentMethod != nil {
		updates["payment_method"] = *input.PaymentMethod
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}

	if len(updates) > 0 {
		if err := ctl.DB.Model(&sale).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	ctl.DB.Preload("Items").First(&sale, sale.SaleID)
	c.JSON(http.StatusOK, sale)
}

func (ctl *SaleController) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var sale models.Sale
	if err := ctl.DB.First(&sale, "sale_id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
		return
	}

	// Items go with it via ON DELETE CASCADE.
	if err := ctl.DB.Delete(&sale).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("sale ID %d and all related sale items deleted successfully", id)})
}

func (ctl *SaleController) GetItem(c *gin.Context) {
	itemID, ok := idParam(c, "item_id")
	if !ok {
		return
	}

	var item models.SaleItem
	if err := ctl.DB.First(&item, "sale_item_id = ?", itemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "sale item not found"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// AddItem appends an item to an existing sale; the trigger recomputes the
// sale's total.
func (ctl *SaleController) AddItem(c *gin.Context) {
	saleID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var input saleItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	var sale models.Sale
	if err := ctl.DB.First(&sale, "sale_id = ?", saleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
		return
	}

	var product models.Product
	if err := ctl.DB.First(&product, "product_id = ?", input.ProductID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("product ID %d not found", input.ProductID)})
		return
	}

	var exist models.SaleItem
	if err := ctl.DB.Where("sale_id = ? AND product_id = ?", saleID, input.ProductID).First(&exist).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("product ID %d already exists in this sale", input.ProductID)})
		return
	}

	unitPrice := product.Price
	if input.UnitPrice != nil {
		unitPrice = *input.UnitPrice
	}

	item := models.SaleItem{
		SaleID:    saleID,
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		UnitPrice: unitPrice,
		Discount:  input.Discount,
	}
	if err := ctl.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (ctl *SaleController) UpdateItem(c *gin.Context) {
	saleID, ok := idParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := idParam(c, "item_id")
	if !ok {
		return
	}

	var item models.SaleItem
	if err := ctl.DB.Where("sale_item_id = ? AND sale_id = ?", itemID, saleID).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "sale item not found"})
		return
	}

	var input saleItemUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	if input.ProductID != nil && *input.ProductID != item.ProductID {
		var product models.Product
		if err := ctl.DB.First(&product, "product_id = ?", *input.ProductID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("product ID %d not found", *input.ProductID)})
			return
		}

		var exist models.SaleItem
		err := ctl.DB.Where("sale_id = ? AND product_id = ? AND sale_item_id <> ?", saleID, *input.ProductID, itemID).
			First(&exist).Error
		if err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("product ID %d already exists in this sale", *input.ProductID)})
			return
		}
	}

	updates := map[string]interface{}{}
	if input.ProductID != nil {
		updates["product_id"] = *input.ProductID
	}
	if input.Quantity != nil {
		updates["quantity"] = *input.Quantity
	}
	if input.UnitPrice != nil {
		updates["unit_price"] = *input.UnitPrice
	}
	if input.Discount != nil {
		updates["discount"] = *input.Discount
	}

	if len(updates) > 0 {
		if err := ctl.DB.Model(&item).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, item)
}

func (ctl *SaleController) DeleteItem(c *gin.Context) {
	saleID, ok := idParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := idParam(c, "item_id")
	if !ok {
		return
	}

	var item models.SaleItem
	if err := ctl.DB.Where("sale_item_id = ? AND sale_id = ?", itemID, saleID).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "sale item not found"})
		return
	}

	if err := ctl.DB.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("sale item ID %d removed from sale ID %d", itemID, saleID)})
}
