package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"go-inventory-sales/models"
	"go-inventory-sales/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CategoryController struct {
	DB *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db}
}

type categoryInput struct {
	Name string `json:"name" binding:"required,max=100"`
}

func (ctl *CategoryController) Create(c *gin.Context) {
	var input categoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	var exist models.Category
	if err := ctl.DB.Where("name = ?", input.Name).First(&exist).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("category '%s' already exists", input.Name)})
		return
	}

	category := models.Category{Name: input.Name}
	if err := ctl.DB.Create(&category).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("category '%s' already exists", input.Name)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (ctl *CategoryController) List(c *gin.Context) {
	page, limit := pageParams(c)

	q := ctl.DB.Model(&models.Category{})
	if search := c.Query("search"); search != "" {
		q = q.Where("LOWER(name) LIKE ?", likePattern(search))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var categories []models.Category
	if err := q.Order("category_id").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Empty pages beyond page 1 are a valid (empty) result.
	if len(categories) == 0 && page == 1 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no categories found"})
		return
	}

	c.JSON(http.StatusOK, utils.Paginate(categories, total, page, limit))
}

func (ctl *CategoryController) GetByID(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var category models.Category
	if err := ctl.DB.First(&category, "category_id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}

	c.JSON(http.StatusOK, category)
}

func (ctl *CategoryController) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var category models.Category
	if err := ctl.DB.First(&category, "category_id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}

	var input categoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	var exist models.Category
	err := ctl.DB.Where("name = ? AND category_id <> ?", input.Name, id).First(&exist).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("category '%s' already exists", input.Name)})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := ctl.DB.Model(&category).Update("name", input.Name).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("category '%s' already exists", input.Name)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, category)
}

func (ctl *CategoryController) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var category models.Category
	if err := ctl.DB.First(&category, "category_id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}

	if err := ctl.DB.Delete(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("category '%s' deleted successfully", category.Name)})
}
