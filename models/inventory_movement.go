package models

import "time"

// Movement types recorded in inventory_movement.
const (
	MovementOpening = "OPENING"
	MovementStockIn = "STOCK_IN"
	MovementSale    = "SALE"
)

// InventoryMovement rows are produced by database triggers as a side effect of
// sale and stock-in writes. This layer only reads them, except for patching
// movement_type.
type InventoryMovement struct {
	MovementID    uint      `gorm:"column:movement_id;primaryKey;autoIncrement" json:"movement_id"`
	ProductID     uint      `gorm:"column:product_id;not null" json:"product_id"`
	MovementType  string    `gorm:"column:movement_type;size:10;not null" json:"movement_type"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	UnitCost      *float64  `gorm:"column:unit_cost;type:decimal(10,2)" json:"unit_cost"`
	SalePrice     *float64  `gorm:"column:sale_price;type:decimal(10,2)" json:"sale_price"`
	SaleItemID    *uint     `gorm:"column:sale_item_id" json:"sale_item_id"`
	StockInItemID *uint     `gorm:"column:stock_in_item_id" json:"stock_in_item_id"`
	MovementDate  time.Time `gorm:"column:movement_date;not null" json:"movement_date"`
}

func (InventoryMovement) TableName() string { return "inventory_movement" }
