package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/database"
	"storefront-backend/internal/events"
	"storefront-backend/internal/ingest"
	"storefront-backend/internal/models"
	"storefront-backend/internal/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.ProductStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	manager := database.NewManager("", "test", false, logger)
	products := store.NewProductStore(manager, logger, nil, nil)
	carousels := store.NewCarouselStore(manager, logger, nil)
	publisher := events.NewPublisher("", logger)
	engine := ingest.NewEngine(products, nil, logger)

	productsHandler := NewProductsHandler(products, publisher, logger)
	carouselsHandler := NewCarouselsHandler(carousels, logger)
	importHandler := NewImportHandler(engine, publisher, logger)
	healthHandler := NewHealthHandler(manager)

	router := gin.New()
	router.GET("/health", healthHandler.Health)
	api := router.Group("/api")
	api.GET("/products", productsHandler.GetProducts)
	api.GET("/products/:id", productsHandler.GetProduct)
	api.POST("/products", productsHandler.CreateProduct)
	api.PUT("/products/:id", productsHandler.UpdateProduct)
	api.DELETE("/products/:id", productsHandler.DeleteProduct)
	api.POST("/products/import", importHandler.ImportProducts)
	api.GET("/products/import/template", importHandler.GetImportTemplate)
	api.POST("/carousels", carouselsHandler.CreateCarousel)
	api.POST("/carousels/:id/slides", carouselsHandler.AddSlide)

	return router, products
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthReportsDegradedState(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestProductLifecycleOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/products", gin.H{
		"name": "Naruto Figure", "price": 29.99, "category": "Anime Figure",
		"stock_quantity": 5,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	product := created.Data.(map[string]interface{})
	id := product["id"].(string)
	assert.Equal(t, "anime-figures", product["category_slug"])
	assert.Equal(t, true, product["in_stock"])

	w = doJSON(t, router, http.MethodGet, "/api/products/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/products/"+id, gin.H{"price": 19.99})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/products/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/products/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateProductValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/products", gin.H{"name": "No Price"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
}

func TestImportProductsCSV(t *testing.T) {
	router, products := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "catalog.csv")
	require.NoError(t, err)
	_, err = io.Copy(fw, strings.NewReader(
		"name,price,category\n\"Smith, John Figure\",10,figures\nBroken,,posters\n"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("mode", "upsert"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/products/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool                `json:"success"`
		Data    models.ImportResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Data.Created)
	require.Len(t, body.Data.Errors, 1)
	assert.Equal(t, 3, body.Data.Errors[0].Row)

	p, err := products.GetByName(context.Background(), "Smith, John Figure")
	require.NoError(t, err)
	require.NotNil(t, p, "embedded comma survives the round trip")
}

func TestImportRejectsUnsupportedFormat(t *testing.T) {
	router, _ := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "catalog.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("junk"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/products/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportTemplateDownload(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/products/import/template?format=csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	assert.Contains(t, w.Body.String(), "name *")

	w = doJSON(t, router, http.MethodGet, "/api/products/import/template?format=json", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"version":"2.0"`)
}

func TestAddSlideOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/carousels", gin.H{"name": "hero"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created.Data.(map[string]interface{})["id"].(string)

	w = doJSON(t, router, http.MethodPost, "/api/carousels/"+id+"/slides", gin.H{"image": "banner.jpg"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "/uploads/banner.jpg")

	w = doJSON(t, router, http.MethodPost, "/api/carousels/"+id+"/slides", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
