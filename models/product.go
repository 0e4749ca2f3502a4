package models

type Product struct {
	ProductID    uint      `gorm:"column:product_id;primaryKey;autoIncrement" json:"product_id"`
	Name         string    `gorm:"size:150;not null" json:"name"`
	CategoryID   *uint     `gorm:"column:category_id" json:"-"`
	Category     *Category `json:"category"`
	SKU          *string   `gorm:"column:sku;size:64;uniqueIndex" json:"sku"`
	Price        float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	ReorderLevel int       `gorm:"not null;default:10" json:"reorder_level"`

	// Dependent rows are removed by the database when a product is deleted.
	SaleItems  []SaleItem          `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	StockItems []StockInItem       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	Movements  []InventoryMovement `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Product) TableName() string { return "product" }
