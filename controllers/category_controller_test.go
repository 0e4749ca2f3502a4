package controllers_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"go-inventory-sales/models"
)

func TestCreateCategory(t *testing.T) {
	r, _ := setupRouter(t)

	w := doRequest(t, r, http.MethodPost, "/categories", map[string]any{"name": "Beverages"})
	mustStatus(t, w, http.StatusCreated)

	var created models.Category
	decodeBody(t, w, &created)
	if created.CategoryID == 0 {
		t.Error("expected a generated category_id")
	}
	if created.Name != "Beverages" {
		t.Errorf("name = %q, want %q", created.Name, "Beverages")
	}
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	r, _ := setupRouter(t)

	w := doRequest(t, r, http.MethodPost, "/categories", map[string]any{"name": "Snacks"})
	mustStatus(t, w, http.StatusCreated)

	w = doRequest(t, r, http.MethodPost, "/categories", map[string]any{"name": "Snacks"})
	mustStatus(t, w, http.StatusBadRequest)
	if !strings.Contains(w.Body.String(), "already exists") {
		t.Errorf("expected duplicate error, got %s", w.Body.String())
	}
}

func TestCreateCategoryMissingName(t *testing.T) {
	r, _ := setupRouter(t)

	w := doRequest(t, r, http.MethodPost, "/categories", map[string]any{})
	mustStatus(t, w, http.StatusBadRequest)
}

func TestListCategoriesPagination(t *testing.T) {
	r, db := setupRouter(t)
	for i := 1; i <= 25; i++ {
		seedCategory(t, db, fmt.Sprintf("Category %02d", i))
	}

	w := doRequest(t, r, http.MethodGet, "/categories?page=2&limit=10", nil)
	mustStatus(t, w, http.StatusOK)

	var env envelope
	decodeBody(t, w, &env)
	checkEnvelope(t, env)
	if env.Total != 25 {
		t.Errorf("total = %d, want 25", env.Total)
	}
	if env.TotalPages != 3 {
		t.Errorf("total_pages = %d, want 3", env.TotalPages)
	}
	if !env.HasNext || !env.HasPrev {
		t.Errorf("has_next = %v, has_prev = %v, want both true", env.HasNext, env.HasPrev)
	}
	if len(env.Items) != 10 {
		t.Errorf("len(items) = %d, want 10", len(env.Items))
	}
}

func TestListCategoriesEmpty(t *testing.T) {
	r, db := setupRouter(t)

	// An empty collection on page 1 is a 404.
	w := doRequest(t, r, http.MethodGet, "/categories", nil)
	mustStatus(t, w, http.StatusNotFound)

	// Past the last page the result is an empty list, not an error.
	seedCategory(t, db, "Dairy")
	w = doRequest(t, r, http.MethodGet, "/categories?page=2", nil)
	mustStatus(t, w, http.StatusOK)

	var env envelope
	decodeBody(t, w, &env)
	checkEnvelope(t, env)
	if len(env.Items) != 0 {
		t.Errorf("len(items) = %d, want 0", len(env.Items))
	}
	if env.Total != 1 {
		t.Errorf("total = %d, want 1", env.Total)
	}
}

func TestListCategoriesSearch(t *testing.T) {
	r, db := setupRouter(t)
	seedCategory(t, db, "Beverages")
	seedCategory(t, db, "Snacks")
	seedCategory(t, db, "Frozen Beverages")

	w := doRequest(t, r, http.MethodGet, "/categories?search=BEVER", nil)
	mustStatus(t, w, http.StatusOK)

	var env envelope
	decodeBody(t, w, &env)
	if env.Total != 2 {
		t.Errorf("total = %d, want 2 (search is case-insensitive substring)", env.Total)
	}
}

func TestGetCategoryByID(t *testing.T) {
	r, db := setupRouter(t)
	cat := seedCategory(t, db, "Produce")

	w := doRequest(t, r, http.MethodGet, fmt.Sprintf("/categories/%d", cat.CategoryID), nil)
	mustStatus(t, w, http.StatusOK)

	w = doRequest(t, r, http.MethodGet, "/categories/9999", nil)
	mustStatus(t, w, http.StatusNotFound)

	w = doRequest(t, r, http.MethodGet, "/categories/abc", nil)
	mustStatus(t, w, http.StatusBadRequest)
}

func TestUpdateCategory(t *testing.T) {
	r, db := setupRouter(t)
	cat := seedCategory(t, db, "Bakery")
	seedCategory(t, db, "Deli")

	w := doRequest(t, r, http.MethodPut, fmt.Sprintf("/categories/%d", cat.CategoryID),
		map[string]any{"name": "Bakery & Pastry"})
	mustStatus(t, w, http.StatusOK)

	var updated models.Category
	decodeBody(t, w, &updated)
	if updated.Name != "Bakery & Pastry" {
		t.Errorf("name = %q, want %q", updated.Name, "Bakery & Pastry")
	}

	// Renaming onto another category's name is rejected.
	w = doRequest(t, r, http.MethodPut, fmt.Sprintf("/categories/%d", cat.CategoryID),
		map[string]any{"name": "Deli"})
	mustStatus(t, w, http.StatusBadRequest)

	// Re-submitting the current name is a no-op, not a conflict.
	w = doRequest(t, r, http.MethodPut, fmt.Sprintf("/categories/%d", cat.CategoryID),
		map[string]any{"name": "Bakery & Pastry"})
	mustStatus(t, w, http.StatusOK)

	w = doRequest(t, r, http.MethodPut, "/categories/9999", map[string]any{"name": "Ghost"})
	mustStatus(t, w, http.StatusNotFound)
}

func TestDeleteCategory(t *testing.T) {
	r, db := setupRouter(t)
	cat := seedCategory(t, db, "Seasonal")

	w := doRequest(t, r, http.MethodDelete, fmt.Sprintf("/categories/%d", cat.CategoryID), nil)
	mustStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), "Seasonal") {
		t.Errorf("expected deletion message to name the category, got %s", w.Body.String())
	}

	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/categories/%d", cat.CategoryID), nil)
	mustStatus(t, w, http.StatusNotFound)

	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/categories/%d", cat.CategoryID), nil)
	mustStatus(t, w, http.StatusNotFound)
}
