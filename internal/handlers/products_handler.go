package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront-backend/internal/events"
	"storefront-backend/internal/models"
	"storefront-backend/internal/store"
)

// ProductsHandler serves the catalog CRUD endpoints.
type ProductsHandler struct {
	products *store.ProductStore
	events   *events.Publisher
	logger   *logrus.Entry
}

func NewProductsHandler(products *store.ProductStore, publisher *events.Publisher, logger *logrus.Logger) *ProductsHandler {
	return &ProductsHandler{
		products: products,
		events:   publisher,
		logger:   logger.WithField("handler", "products"),
	}
}

// GetProducts handles GET /api/products, optionally filtered by
// ?category=<slug>.
func (h *ProductsHandler) GetProducts(c *gin.Context) {
	var (
		list []*models.Product
		err  error
	)
	if slug := c.Query("category"); slug != "" {
		list, err = h.products.GetByCategorySlug(c.Request.Context(), slug)
	} else {
		list, err = h.products.GetAll(c.Request.Context())
	}
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondData(c, http.StatusOK, list)
}

// GetProduct handles GET /api/products/:id.
func (h *ProductsHandler) GetProduct(c *gin.Context) {
	p, err := h.products.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if p == nil {
		respondNotFound(c, "Product")
		return
	}
	respondData(c, http.StatusOK, p)
}

// CreateProduct handles POST /api/products.
func (h *ProductsHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	product := &models.Product{
		Name:          req.Name,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Image:         req.Image,
		Images:        req.Images,
		Category:      req.Category,
		Description:   req.Description,
		StockQuantity: req.StockQuantity,
		IsNew:         req.IsNew,
		IsOnSale:      req.IsOnSale,
		Discount:      req.Discount,
		Rating:        req.Rating,
		Reviews:       req.Reviews,
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	} else {
		product.InStock = req.StockQuantity > 0
	}

	created, err := h.products.Create(c.Request.Context(), product)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	h.events.Publish(events.SubjectProductCreated, created)
	h.logger.WithField("product_id", created.ID).Info("Product created")
	respondData(c, http.StatusCreated, created)
}

// UpdateProduct handles PUT /api/products/:id.
func (h *ProductsHandler) UpdateProduct(c *gin.Context) {
	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	updated, err := h.products.Update(c.Request.Context(), c.Param("id"), func(p *models.Product) {
		applyProductPatch(p, &req)
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if updated == nil {
		respondNotFound(c, "Product")
		return
	}

	h.events.Publish(events.SubjectProductUpdated, updated)
	respondData(c, http.StatusOK, updated)
}

// DeleteProduct handles DELETE /api/products/:id.
func (h *ProductsHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	removed, err := h.products.Remove(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if !removed {
		respondNotFound(c, "Product")
		return
	}

	h.events.Publish(events.SubjectProductDeleted, gin.H{"id": id})
	respondMessage(c, http.StatusOK, nil, "Product deleted")
}

// DeleteAllProducts handles DELETE /api/products.
func (h *ProductsHandler) DeleteAllProducts(c *gin.Context) {
	n, err := h.products.RemoveAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	h.logger.WithField("deleted", n).Warn("All products deleted")
	respondMessage(c, http.StatusOK, gin.H{"deleted": n}, "All products deleted")
}

// DeleteInvalidProducts handles DELETE /api/products/invalid, sweeping
// records with empty name, price <= 0 or stock <= 0.
func (h *ProductsHandler) DeleteInvalidProducts(c *gin.Context) {
	n, err := h.products.RemoveInvalid(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, gin.H{"deleted": n}, "Invalid products deleted")
}

func applyProductPatch(p *models.Product, req *models.UpdateProductRequest) {
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.OriginalPrice != nil {
		p.OriginalPrice = *req.OriginalPrice
	}
	if req.Image != nil {
		p.Image = *req.Image
	}
	if req.Images != nil {
		p.Images = *req.Images
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.StockQuantity != nil {
		p.StockQuantity = *req.StockQuantity
		if req.InStock == nil {
			p.InStock = *req.StockQuantity > 0
		}
	}
	if req.InStock != nil {
		p.InStock = *req.InStock
	}
	if req.IsNew != nil {
		p.IsNew = *req.IsNew
	}
	if req.IsOnSale != nil {
		p.IsOnSale = *req.IsOnSale
	}
	if req.Discount != nil {
		p.Discount = *req.Discount
	}
	if req.Rating != nil {
		p.Rating = *req.Rating
	}
	if req.Reviews != nil {
		p.Reviews = *req.Reviews
	}
}
