package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"go-inventory-sales/models"
	"go-inventory-sales/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type InventoryMovementController struct {
	DB *gorm.DB
}

func NewInventoryMovementController(db *gorm.DB) *InventoryMovementController {
	return &InventoryMovementController{DB: db}
}

type movementUpdateInput struct {
	MovementType *string `json:"movement_type"`
}

var allowedMovementTypes = map[string]bool{
	models.MovementOpening: true,
	models.MovementStockIn: true,
	models.MovementSale:    true,
}

const movementTypeHint = "invalid movement_type, allowed values are: OPENING, STOCK_IN, SALE"

func (ctl *InventoryMovementController) List(c *gin.Context) {
	page, limit := pageParams(c)

	q := ctl.DB.Model(&models.InventoryMovement{})

	if s := c.Query("product_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product_id"})
			return
		}
		q = q.Where("product_id = ?", id)
	}
	if mt := c.Query("movement_type"); mt != "" {
		mt = strings.ToUpper(mt)
		if !allowedMovementTypes[mt] {
			c.JSON(http.StatusBadRequest, gin.H{"error": movementTypeHint})
			return
		}
		q = q.Where("movement_type = ?", mt)
	}
	q, ok := dateRange(c, q, "movement_date")
	if !ok {
		return
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var movements []models.InventoryMovement
	if err := q.Order("movement_date DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&movements).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(movements) == 0 && page == 1 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no inventory movements found"})
		return
	}

	c.JSON(http.StatusOK, utils.Paginate(movements, total, page, limit))
}

func (ctl *InventoryMovementController) GetByID(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var movement models.InventoryMovement
	if err := ctl.DB.First(&movement, "movement_id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "inventory movement not found"})
		return
	}

	c.JSON(http.StatusOK, movement)
}

// Update patches movement_type only. Movement rows are otherwise owned by
// the database triggers and immutable through this interface.
func (ctl *InventoryMovementController) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var movement models.InventoryMovement
	if err := ctl.DB.First(&movement, "movement_id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "inventory movement not found"})
		return
	}

	var input movementUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	if input.MovementType != nil && *input.MovementType != "" {
		mt := strings.ToUpper(*input.MovementType)
		if !allowedMovementTypes[mt] {
			c.JSON(http.StatusBadRequest, gin.H{"error": movementTypeHint})
			return
		}
		if err := ctl.DB.Model(&movement).Update("movement_type", mt).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, movement)
}
