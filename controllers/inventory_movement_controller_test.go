package controllers_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"go-inventory-sales/models"
)

func TestListInventoryMovements(t *testing.T) {
	r, db := setupRouter(t)
	flour := seedProduct(t, db, "Flour", 40)
	sugar := seedProduct(t, db, "Sugar", 30)

	seedMovement(t, db, flour.ProductID, models.MovementOpening, 100, time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC))
	seedMovement(t, db, flour.ProductID, models.MovementSale, 10, time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC))
	seedMovement(t, db, sugar.ProductID, models.MovementStockIn, 40, time.Date(2026, 6, 20, 9, 0, 0, 0, time.UTC))

	cases := []struct {
		name  string
		query string
		total int64
	}{
		{"all", "", 3},
		{"by product", fmt.Sprintf("product_id=%d", flour.ProductID), 2},
		{"by type", "movement_type=SALE", 1},
		{"type is case-insensitive", "movement_type=stock_in", 1},
		{"date range", "start_date=2026-06-10&end_date=2026-06-16", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, r, http.MethodGet, "/inventory-movements?"+tc.query, nil)
			mustStatus(t, w, http.StatusOK)
			var env envelope
			decodeBody(t, w, &env)
			checkEnvelope(t, env)
			if env.Total != tc.total {
				t.Errorf("total = %d, want %d", env.Total, tc.total)
			}
		})
	}

	w := doRequest(t, r, http.MethodGet, "/inventory-movements?movement_type=TRANSFER", nil)
	mustStatus(t, w, http.StatusBadRequest)
	if !strings.Contains(w.Body.String(), "OPENING, STOCK_IN, SALE") {
		t.Errorf("expected the allowed values in the error, got %s", w.Body.String())
	}
}

func TestListInventoryMovementsOrdering(t *testing.T) {
	r, db := setupRouter(t)
	p := seedProduct(t, db, "Widget", 10)

	seedMovement(t, db, p.ProductID, models.MovementOpening, 5, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	seedMovement(t, db, p.ProductID, models.MovementStockIn, 5, time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC))

	w := doRequest(t, r, http.MethodGet, "/inventory-movements", nil)
	mustStatus(t, w, http.StatusOK)

	var body struct {
		Items []models.InventoryMovement `json:"items"`
	}
	decodeBody(t, w, &body)
	if len(body.Items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(body.Items))
	}
	if !body.Items[0].MovementDate.After(body.Items[1].MovementDate) {
		t.Errorf("expected newest movement first, got %v then %v",
			body.Items[0].MovementDate, body.Items[1].MovementDate)
	}
}

func TestGetInventoryMovementByID(t *testing.T) {
	r, db := setupRouter(t)
	p := seedProduct(t, db, "Widget", 10)
	m := seedMovement(t, db, p.ProductID, models.MovementOpening, 7, time.Now())

	w := doRequest(t, r, http.MethodGet, fmt.Sprintf("/inventory-movements/%d", m.MovementID), nil)
	mustStatus(t, w, http.StatusOK)

	var got models.InventoryMovement
	decodeBody(t, w, &got)
	if got.Quantity != 7 {
		t.Errorf("quantity = %d, want 7", got.Quantity)
	}

	w = doRequest(t, r, http.MethodGet, "/inventory-movements/9999", nil)
	mustStatus(t, w, http.StatusNotFound)
}

func TestUpdateInventoryMovementType(t *testing.T) {
	r, db := setupRouter(t)
	p := seedProduct(t, db, "Widget", 10)
	m := seedMovement(t, db, p.ProductID, models.MovementOpening, 3, time.Now())

	// Lowercase input is normalized before storing.
	w := doRequest(t, r, http.MethodPatch, fmt.Sprintf("/inventory-movements/%d", m.MovementID),
		map[string]any{"movement_type": "sale"})
	mustStatus(t, w, http.StatusOK)

	var stored models.InventoryMovement
	if err := db.First(&stored, "movement_id = ?", m.MovementID).Error; err != nil {
		t.Fatalf("reload movement: %v", err)
	}
	if stored.MovementType != models.MovementSale {
		t.Errorf("movement_type = %q, want %q", stored.MovementType, models.MovementSale)
	}

	w = doRequest(t, r, http.MethodPatch, fmt.Sprintf("/inventory-movements/%d", m.MovementID),
		map[string]any{"movement_type": "ADJUSTMENT"})
	mustStatus(t, w, http.StatusBadRequest)
	if !strings.Contains(w.Body.String(), "OPENING, STOCK_IN, SALE") {
		t.Errorf("expected the allowed values in the error, got %s", w.Body.String())
	}
}
