package models

import "time"

// ProductStock maps the v_product_stock view. Read-only.
type ProductStock struct {
	ProductID    uint    `gorm:"column:product_id;primaryKey" json:"product_id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	ReorderLevel int     `json:"reorder_level"`
	StockOnHand  int     `json:"stock_on_hand"`
	NeedsRestock bool    `json:"needs_restock"`
}

func (ProductStock) TableName() string { return "v_product_stock" }

// ProfitabilityReport maps the v_profitability_report view. Read-only.
type ProfitabilityReport struct {
	SaleItemID        uint      `gorm:"column:sale_item_id;primaryKey" json:"sale_item_id"`
	SaleID            uint      `gorm:"column:sale_id" json:"sale_id"`
	SaleDatetime      time.Time `gorm:"column:sale_datetime" json:"sale_datetime"`
	ProductID         uint      `gorm:"column:product_id" json:"product_id"`
	ProductName       string    `gorm:"column:product_name" json:"product_name"`
	Quantity          int       `json:"quantity"`
	UnitPrice         float64   `json:"unit_price"`
	Discount          float64   `json:"discount"`
	TotalRevenue      float64   `gorm:"column:total_revenue" json:"total_revenue"`
	AverageCostAtSale float64   `gorm:"column:average_cost_at_sale" json:"average_cost_at_sale"`
	TotalCOGS         float64   `gorm:"column:total_cogs" json:"total_cogs"`
	GrossProfit       float64   `gorm:"column:gross_profit" json:"gross_profit"`
}

func (ProfitabilityReport) TableName() string { return "v_profitability_report" }
