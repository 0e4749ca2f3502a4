package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-inventory-sales/models"
	"go-inventory-sales/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type StockInController struct {
	DB *gorm.DB
}

func NewStockInController(db *gorm.DB) *StockInController {
	return &StockInController{DB: db}
}

type stockInItemInput struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	UnitCost  float64 `json:"unit_cost" binding:"required,gt=0"`
}

type stockInCreateInput struct {
	StockInDate *time.Time         `json:"stock_in_date"`
	RefNo       *string            `json:"ref_no" binding:"omitempty,max=80"`
	Notes       *string            `json:"notes" binding:"omitempty,max=255"`
	Items       []stockInItemInput `json:"items"`
}

type stockInUpdateInput struct {
	RefNo       *string    `json:"ref_no" binding:"omitempty,max=80"`
	StockInDate *time.Time `json:"stock_in_date"`
	Notes       *string    `json:"notes" binding:"omitempty,max=255"`
}

type stockInItemUpdateInput struct {
	ProductID *uint    `json:"product_id"`
	Quantity  *int     `json:"quantity" binding:"omitempty,gt=0"`
	UnitCost  *float64 `json:"unit_cost" binding:"omitempty,gt=0"`
}

// Create inserts a stock-in and its items as one transaction. Every product
// is validated before any row is written; total_cost is written as 0 and
// recomputed by the database trigger.
func (ctl *StockInController) Create(c *gin.Context) {
	var input stockInCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	stockInDate := time.Now()
	if input.StockInDate != nil {
		stockInDate = *input.StockInDate
	}

	var stockIn models.StockIn
	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		seen := make(map[uint]bool, len(input.Items))
		for _, item := range input.Items {
			if seen[item.ProductID] {
				return failBadRequest(fmt.Sprintf("product ID %d already exists in this stock-in", item.ProductID))
			}
			seen[item.ProductID] = true

			var product models.Product
			if err := tx.First(&product, "product_id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return failNotFound(fmt.Sprintf("product ID %d not found", item.ProductID))
				}
				return err
			}
		}

		stockIn = models.StockIn{
			RefNo:       input.RefNo,
			StockInDate: stockInDate,
			TotalCost:   0,
			Notes:       input.Notes,
		}
		if err := tx.Create(&stockIn).Error; err != nil {
			return err
		}

		for _, item := range input.Items {
			stockInItem := models.StockInItem{
				StockInID: stockIn.StockInID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitCost:  item.UnitCost,
			}
			if err := tx.Create(&stockInItem).Error; err != nil {
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
	ctl.DB.Preload("Items").First(&stockIn, stockIn.StockInID)
	c.JSON(http.StatusCreated, stockIn)
}

func (ctl *StockInController) List(c *gin.Context) {
	page, limit := pageParams(c)

	q := ctl.DB.Model(&models.StockIn{})

	if search := c.Query("search"); search != "" {
		like := likePattern(search)
		q = q.Where("LOWER(ref_no) LIKE ? OR LOWER(notes) LIKE ?", like, like)
	}
	q, ok := dateRange(c, q, "stock_in_date")
	if !ok {
		return
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var stockIns []models.StockIn
	if err := q.Preload("Items").
		Order("stock_in_date DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&stockIns).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(stockIns) == 0 && page == 1 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no stock-in records found"})
		return
	}

	c.JSON(http.StatusOK, utils.Paginate(stockIns, total, page, limit))
}

func (ctl *StockInController) GetByID(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var stockIn models.StockIn
	if err := ctl.DB.Preload("Items").First(&stockIn, "stock_in_id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "stock-in record not found"})
		return
	}

	c.JSON(http.StatusOK, stockIn)
}

// Update mutates header fields only; items are managed through the item
// sub-resource.
func (ctl *StockInController) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var stockIn models.StockIn
	if err := ctl.DB.First(&stockIn, "stock_in_id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "stock-in record not found"})
		return
	}

	var input stockInUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.RefNo != nil {
		updates["ref_no"] = *input.RefNo
	}
	if input.StockInDate != nil {
		updates["stock_in_date"] = *input.StockInDate
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}

	if len(updates) > 0 {
		if err := ctl.DB.Model(&stockIn).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	ctl.DB.Preload("Items").First(&stockIn, stockIn.StockInID)
	c.JSON(http.StatusOK, stockIn)
}

func (ctl *StockInController) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var stockIn models.StockIn
	if err := ctl.DB.First(&stockIn, "stock_in_id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "stock-in record not found"})
		return
	}

	// Items go with it via ON DELETE CASCADE.
	if err := ctl.DB.Delete(&stockIn).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("stock-in ID %d and all related stock-in items deleted successfully", id)})
}

func (ctl *StockInController) GetItem(c *gin.Context) {
	itemID, ok := idParam(c, "item_id")
	if !ok {
		return
	}

	var item models.StockInItem
	if err := ctl.DB.First(&item, "stock_in_item_id = ?", itemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "stock-in item not found"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// AddItem appends an item to an existing stock-in; the trigger recomputes
// the record's total cost.
func (ctl *StockInController) AddItem(c *gin.Context) {
	stockInID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var input stockInItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	var stockIn models.StockIn
	if err := ctl.DB.First(&stockIn, "stock_in_id = ?", stockInID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "stock-in record not found"})
		return
	}

	var product models.Product
	if err := ctl.DB.First(&product, "product_id = ?", input.ProductID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("product ID %d not found", input.ProductID)})
		return
	}

	var exist models.StockInItem
	if err := ctl.DB.Where("stock_in_id = ? AND product_id = ?", stockInID, input.ProductID).First(&exist).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("product ID %d already exists in this stock-in", input.ProductID)})
		return
	}

	item := models.StockInItem{
		StockInID: stockInID,
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		UnitCost:  input.UnitCost,
	}
	if err := ctl.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (ctl *StockInController) UpdateItem(c *gin.Context) {
	stockInID, ok := idParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := idParam(c, "item_id")
	if !ok {
		return
	}

	var item models.StockInItem
	if err := ctl.DB.Where("stock_in_item_id = ? AND stock_in_id = ?", itemID, stockInID).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "stock-in item not found"})
		return
	}

	var input stockInItemUpdateInput
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

		var exist models.StockInItem
		err := ctl.DB.Where("stock_in_id = ? AND product_id = ? AND stock_in_item_id <> ?", stockInID, *input.ProductID, itemID).
			First(&exist).Error
		if err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("product ID %d already exists in this stock-in", *input.ProductID)})
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
	if input.UnitCost != nil {
		updates["unit_cost"] = *input.UnitCost
	}

	if len(updates) > 0 {
		if err := ctl.DB.Model(&item).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, item)
}

func (ctl *StockInController) DeleteItem(c *gin.Context) {
	stockInID, ok := idParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := idParam(c, "item_id")
	if !ok {
		return
	}

	var item models.StockInItem
	if err := ctl.DB.Where("stock_in_item_id = ? AND stock_in_id = ?", itemID, stockInID).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "stock-in item not found"})
		return
	}

	if err := ctl.DB.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("stock-in item ID %d removed from stock-in ID %d", itemID, stockInID)})
}
