package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-inventory-sales/models"
	"go-inventory-sales/routes"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupDB opens an isolated in-memory database with the seven tables and
// stand-in report views. The production views and triggers live in Postgres;
// these views give the report endpoints something equivalent to read.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}

	// A second pooled connection would see its own empty :memory: database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Sale{},
		&models.SaleItem{},
		&models.StockIn{},
		&models.StockInItem{},
		&models.InventoryMovement{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	views := []string{
		`CREATE VIEW v_product_stock AS
		SELECT p.product_id, p.name, p.price, p.reorder_level,
			COALESCE((SELECT SUM(CASE WHEN m.movement_type = 'SALE' THEN -m.quantity ELSE m.quantity END)
				FROM inventory_movement m WHERE m.product_id = p.product_id), 0) AS stock_on_hand,
			CASE WHEN COALESCE((SELECT SUM(CASE WHEN m.movement_type = 'SALE' THEN -m.quantity ELSE m.quantity END)
				FROM inventory_movement m WHERE m.product_id = p.product_id), 0) <= p.reorder_level
				THEN 1 ELSE 0 END AS needs_restock
		FROM product p`,
		`CREATE VIEW v_profitability_report AS
		SELECT si.sale_item_id, si.sale_id, s.sale_datetime, si.product_id,
			p.name AS product_name, si.quantity, si.unit_price, si.discount,
			(si.quantity * si.unit_price - si.discount) AS total_revenue,
			COALESCE(c.avg_cost, 0) AS average_cost_at_sale,
			si.quantity * COALESCE(c.avg_cost, 0) AS total_cogs,
			(si.quantity * si.unit_price - si.discount) - si.quantity * COALESCE(c.avg_cost, 0) AS gross_profit
		FROM sale_item si
		JOIN sale s ON s.sale_id = si.sale_id
		JOIN product p ON p.product_id = si.product_id
		LEFT JOIN (SELECT product_id, AVG(unit_cost) AS avg_cost FROM inventory_movement
			WHERE movement_type = 'STOCK_IN' GROUP BY product_id) c
			ON c.product_id = si.product_id`,
	}
	for _, v := range views {
		if err := db.Exec(v).Error; err != nil {
			t.Fatalf("create view: %v", err)
		}
	}

	return db
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := setupDB(t)
	r := gin.New()
	routes.SetupRoutes(r, db)
	return r, db
}

func doRequest(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func mustStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, want, w.Body.String())
	}
}

// envelope mirrors the list response for assertions; Items stays raw so one
// type serves every endpoint.
type envelope struct {
	Items      []json.RawMessage `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	HasNext    bool              `json:"has_next"`
	HasPrev    bool              `json:"has_prev"`
}

// checkEnvelope verifies the pagination invariants that hold for every list
// response.
func checkEnvelope(t *testing.T, env envelope) {
	t.Helper()
	wantPages := int((env.Total + int64(env.Limit) - 1) / int64(env.Limit))
	if env.TotalPages != wantPages {
		t.Errorf("total_pages = %d, want %d", env.TotalPages, wantPages)
	}
	if env.HasNext != (env.Page < env.TotalPages) {
		t.Errorf("has_next = %v with page=%d total_pages=%d", env.HasNext, env.Page, env.TotalPages)
	}
	if env.HasPrev != (env.Page > 1) {
		t.Errorf("has_prev = %v with page=%d", env.HasPrev, env.Page)
	}
	if len(env.Items) > env.Limit {
		t.Errorf("len(items) = %d exceeds limit %d", len(env.Items), env.Limit)
	}
}

func seedCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()
	c := models.Category{Name: name}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("seed category %q: %v", name, err)
	}
	return c
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64) models.Product {
	t.Helper()
	p := models.Product{Name: name, Price: price, ReorderLevel: 10}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed product %q: %v", name, err)
	}
	return p
}

func seedMovement(t *testing.T, db *gorm.DB, productID uint, movementType string, qty int, date time.Time) models.InventoryMovement {
	t.Helper()
	m := models.InventoryMovement{
		ProductID:    productID,
		MovementType: movementType,
		Quantity:     qty,
		MovementDate: date,
	}
	if err := db.Create(&m).Error; err != nil {
		t.Fatalf("seed movement: %v", err)
	}
	return m
}
