package productcontroller_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Y3ppi3/northfishclient/config"
	"github.com/Y3ppi3/northfishclient/models"
	"github.com/Y3ppi3/northfishclient/routes"
	"github.com/Y3ppi3/northfishclient/testutil"
)

const testAPIKey = "test-api-key"

func newCatalogRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes.SetupCatalogRoutes(r, db)
	routes.SetupAdminRoutes(r, db, &config.Config{AdminAPIKey: testAPIKey})
	return r
}

func doJSON(r *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func adminHeaders() map[string]string {
	return map[string]string{"X-API-KEY": testAPIKey}
}

func TestListProductsFilters(t *testing.T) {
	db := testutil.DB(t)
	r := newCatalogRouter(t, db)

	fish := testutil.SeedCategory(t, db, "Fish", "fish")
	meat := testutil.SeedCategory(t, db, "Meat", "meat")
	testutil.SeedProduct(t, db, "Salmon Fillet", "12.50", fish.ID)
	testutil.SeedProduct(t, db, "Smoked Salmon", "20.00", fish.ID)
	testutil.SeedProduct(t, db, "Beef Steak", "18.00", meat.ID)

	cases := []struct {
		name  string
		query string
		want  int
	}{
		{"no filter", "", 3},
		{"name substring, case-insensitive", "?name=salmon", 2},
		{"min price", "?min_price=15", 2},
		{"max price", "?max_price=12.50", 1},
		{"price window", "?min_price=15&max_price=19", 1},
		{"category", "?category_id=" + itoa(meat.ID), 1},
		{"no match", "?name=tuna", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(r, http.MethodGet, "/products/"+tc.query, "", nil)
			require.Equal(t, http.StatusOK, w.Code)

			var products []models.Product
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
			assert.Len(t, products, tc.want)
		})
	}
}

func TestListProductsRejectsBadFilters(t *testing.T) {
	db := testutil.DB(t)
	r := newCatalogRouter(t, db)

	w := doJSON(r, http.MethodGet, "/products/?min_price=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/products/?category_id=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProductNotFound(t *testing.T) {
	db := testutil.DB(t)
	r := newCatalogRouter(t, db)

	w := doJSON(r, http.MethodGet, "/products/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateProduct(t *testing.T) {
	db := testutil.DB(t)
	r := newCatalogRouter(t, db)
	fish := testutil.SeedCategory(t, db, "Fish", "fish")

	body := `{"name":"Cod","description":"Fresh cod","price":9.90,"weight":"500 g","category_id":` + itoa(fish.ID) + `}`
	w := doJSON(r, http.MethodPost, "/admin/products", body, adminHeaders())
	require.Equal(t, http.StatusCreated, w.Code)

	var product models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	assert.Equal(t, "Cod", product.Name)
	assert.Equal(t, fish.ID, product.CategoryID)
	assert.Equal(t, "Fish", product.Category.Name)
}

func TestCreateProductRequiresPositivePrice(t *testing.T) {
	db := testutil.DB(t)
	r := newCatalogRouter(t, db)
	fish := testutil.SeedCategory(t, db, "Fish", "fish")

	body := `{"name":"Cod","price":-1.00,"category_id":` + itoa(fish.ID) + `}`
	w := doJSON(r, http.MethodPost, "/admin/products", body, adminHeaders())
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProductUnknownCategory(t *testing.T) {
	db := testutil.DB(t)
	r := newCatalogRouter(t, db)

	body := `{"name":"Cod","price":9.90,"category_id":777}`
	w := doJSON(r, http.MethodPost, "/admin/products", body, adminHeaders())
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProduct(t *testing.T) {
	db := testutil.DB(t)
	r := newCatalogRouter(t, db)
	fish := testutil.SeedCategory(t, db, "Fish", "fish")
	product := testutil.SeedProduct(t, db, "Salmon", "10.00", fish.ID)

	w := doJSON(r, http.MethodPut, "/admin/products/"+itoa(product.ID),
		`{"name":"Wild Salmon","price":11.00}`, adminHeaders())
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Wild Salmon", updated.Name)
	assert.Equal(t, "11", updated.Price.String())

	// absent fields keep their value
	assert.Equal(t, "1 kg", updated.Weight)

	w = doJSON(r, http.MethodPut, "/admin/products/"+itoa(product.ID),
		`{"price":0}`, adminHeaders())
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteProductRemovesCartLines(t *testing.T) {
	db := testutil.DB(t)
	r := newCatalogRouter(t, db)
	fish := testutil.SeedCategory(t, db, "Fish", "fish")
	product := testutil.SeedProduct(t, db, "Salmon", "10.00", fish.ID)
	user := testutil.SeedUser(t, db, "alice", "+10000000001", "secret1")

	require.NoError(t, db.Create(&models.CartItem{
		UserID: user.ID, ProductID: product.ID, Quantity: 2,
	}).Error)

	w := doJSON(r, http.MethodDelete, "/admin/products/"+itoa(product.ID), "", adminHeaders())
	require.Equal(t, http.StatusOK, w.Code)

	var cartCount int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&cartCount).Error)
	assert.Equal(t, int64(0), cartCount)

	w = doJSON(r, http.MethodDelete, "/admin/products/"+itoa(product.ID), "", adminHeaders())
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminRoutesRequireAPIKey(t *testing.T) {
	db := testutil.DB(t)
	r := newCatalogRouter(t, db)

	w := doJSON(r, http.MethodPost, "/admin/products", `{"name":"Cod"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/admin/products", `{"name":"Cod"}`,
		map[string]string{"X-API-KEY": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateCategoryDuplicate(t *testing.T) {
	db := testutil.DB(t)
	r := newCatalogRouter(t, db)
	testutil.SeedCategory(t, db, "Fish", "fish")

	w := doJSON(r, http.MethodPost, "/admin/categories",
		`{"name":"Fish","slug":"fresh-fish"}`, adminHeaders())
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(r, http.MethodPost, "/admin/categories",
		`{"name":"Fresh Fish","slug":"fish"}`, adminHeaders())
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(r, http.MethodPost, "/admin/categories",
		`{"name":"Fresh Fish","slug":"fresh-fish"}`, adminHeaders())
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestDeleteCategoryDetachesProducts(t *testing.T) {
	db := testutil.DB(t)
	r := newCatalogRouter(t, db)
	fish := testutil.SeedCategory(t, db, "Fish", "fish")
	product := testutil.SeedProduct(t, db, "Salmon", "10.00", fish.ID)

	w := doJSON(r, http.MethodDelete, "/admin/categories/"+itoa(fish.ID), "", adminHeaders())
	require.Equal(t, http.StatusOK, w.Code)

	var survivor models.Product
	require.NoError(t, db.First(&survivor, product.ID).Error)
	assert.Equal(t, uint(0), survivor.CategoryID)
}

func TestExportProducts(t *testing.T) {
	db := testutil.DB(t)
	r := newCatalogRouter(t, db)
	fish := testutil.SeedCategory(t, db, "Fish", "fish")
	testutil.SeedProduct(t, db, "Salmon", "10.00", fish.ID)

	w := doJSON(r, http.MethodGet, "/admin/products/export", "", adminHeaders())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "products.xlsx")
	assert.NotZero(t, w.Body.Len())
}

func itoa(id uint) string {
	return strconv.Itoa(int(id))
}
