package models

import "time"

// StockIn is a goods-received document. TotalCost is maintained by a database
// trigger whenever stock-in items change; this layer always writes it as 0.
type StockIn struct {
	StockInID   uint          `gorm:"column:stock_in_id;primaryKey;autoIncrement" json:"stock_in_id"`
	RefNo       *string       `gorm:"column:ref_no;size:80" json:"ref_no"`
	StockInDate time.Time     `gorm:"column:stock_in_date;not null" json:"stock_in_date"`
	TotalCost   float64       `gorm:"type:decimal(12,2);not null;default:0" json:"total_cost"`
	Notes       *string       `gorm:"size:255" json:"notes"`
	Items       []StockInItem `gorm:"foreignKey:StockInID;constraint:OnDelete:CASCADE" json:"items"`
}

func (StockIn) TableName() string { return "stock_in" }

type StockInItem struct {
	StockInItemID uint    `gorm:"column:stock_in_item_id;primaryKey;autoIncrement" json:"stock_in_item_id"`
	StockInID     uint    `gorm:"column:stock_in_id;not null;index" json:"stock_in_id"`
	ProductID     uint    `gorm:"column:product_id;not null" json:"product_id"`
	Quantity      int     `gorm:"not null" json:"quantity"`
	UnitCost      float64 `gorm:"type:decimal(10,2);not null" json:"unit_cost"`

	Movements []InventoryMovement `gorm:"foreignKey:StockInItemID;constraint:OnDelete:CASCADE" json:"-"`
}

func (StockInItem) TableName() string { return "stock_in_item" }
