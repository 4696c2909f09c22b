package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront-backend/internal/models"
	"storefront-backend/internal/store"
)

// CarouselsHandler serves carousel and slide endpoints.
type CarouselsHandler struct {
	carousels *store.CarouselStore
	logger    *logrus.Entry
}

func NewCarouselsHandler(carousels *store.CarouselStore, logger *logrus.Logger) *CarouselsHandler {
	return &CarouselsHandler{
		carousels: carousels,
		logger:    logger.WithField("handler", "carousels"),
	}
}

// GetCarousels handles GET /api/carousels, optionally filtered to
// active ones with ?active=true.
func (h *CarouselsHandler) GetCarousels(c *gin.Context) {
	list, err := h.carousels.GetAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if c.Query("active") == "true" {
		active := make([]*models.Carousel, 0, len(list))
		for _, carousel := range list {
			if carousel.IsActive {
				active = append(active, carousel)
			}
		}
		list = active
	}
	respondData(c, http.StatusOK, list)
}

// GetCarousel handles GET /api/carousels/:id.
func (h *CarouselsHandler) GetCarousel(c *gin.Context) {
	carousel, err := h.carousels.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if carousel == nil {
		respondNotFound(c, "Carousel")
		return
	}
	respondData(c, http.StatusOK, carousel)
}

// CreateCarousel handles POST /api/carousels.
func (h *CarouselsHandler) CreateCarousel(c *gin.Context) {
	var req models.CreateCarouselRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	carousel := &models.Carousel{
		Name:     req.Name,
		Title:    req.Title,
		Slides:   req.Slides,
		Interval: req.Interval,
		Height:   req.Height,
		AutoPlay: true,
		IsActive: true,
	}
	if req.AutoPlay != nil {
		carousel.AutoPlay = *req.AutoPlay
	}
	if req.IsActive != nil {
		carousel.IsActive = *req.IsActive
	}
	if carousel.Interval == 0 {
		carousel.Interval = 5000
	}

	created, err := h.carousels.Create(c.Request.Context(), carousel)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	h.logger.WithField("carousel_id", created.ID).Info("Carousel created")
	respondData(c, http.StatusCreated, created)
}

// UpdateCarousel handles PUT /api/carousels/:id.
func (h *CarouselsHandler) UpdateCarousel(c *gin.Context) {
	var req models.UpdateCarouselRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	updated, err := h.carousels.Update(c.Request.Context(), c.Param("id"), func(carousel *models.Carousel) {
		if req.Title != nil {
			carousel.Title = *req.Title
		}
		if req.Slides != nil {
			carousel.Slides = *req.Slides
		}
		if req.AutoPlay != nil {
			carousel.AutoPlay = *req.AutoPlay
		}
		if req.Interval != nil {
			carousel.Interval = *req.Interval
		}
		if req.Height != nil {
			carousel.Height = *req.Height
		}
		if req.IsActive != nil {
			carousel.IsActive = *req.IsActive
		}
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if updated == nil {
		respondNotFound(c, "Carousel")
		return
	}
	respondData(c, http.StatusOK, updated)
}

// DeleteCarousel handles DELETE /api/carousels/:id.
func (h *CarouselsHandler) DeleteCarousel(c *gin.Context) {
	removed, err := h.carousels.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if !removed {
		respondNotFound(c, "Carousel")
		return
	}
	respondMessage(c, http.StatusOK, nil, "Carousel deleted")
}

// AddSlide handles POST /api/carousels/:id/slides.
func (h *CarouselsHandler) AddSlide(c *gin.Context) {
	var req models.SlideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if req.Image == "" {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "slide image is required")
		return
	}

	carousel, err := h.carousels.AddSlide(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if carousel == nil {
		respondNotFound(c, "Carousel")
		return
	}
	respondData(c, http.StatusCreated, carousel)
}

// UpdateSlide handles PUT /api/carousels/:id/slides/:slideId.
func (h *CarouselsHandler) UpdateSlide(c *gin.Context) {
	var req models.SlideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	carousel, err := h.carousels.UpdateSlide(c.Request.Context(), c.Param("id"), c.Param("slideId"), req)
	if err != nil {
		if errors.Is(err, store.ErrSlideNotFound) {
			respondNotFound(c, "Slide")
			return
		}
		respondStoreError(c, err)
		return
	}
	if carousel == nil {
		respondNotFound(c, "Carousel")
		return
	}
	respondData(c, http.StatusOK, carousel)
}

// DeleteSlide handles DELETE /api/carousels/:id/slides/:slideId.
func (h *CarouselsHandler) DeleteSlide(c *gin.Context) {
	carousel, err := h.carousels.RemoveSlide(c.Request.Context(), c.Param("id"), c.Param("slideId"))
	if err != nil {
		if errors.Is(err, store.ErrSlideNotFound) {
			respondNotFound(c, "Slide")
			return
		}
		respondStoreError(c, err)
		return
	}
	if carousel == nil {
		respondNotFound(c, "Carousel")
		return
	}
	respondData(c, http.StatusOK, carousel)
}

// ReorderSlides handles PUT /api/carousels/:id/slides/reorder.
func (h *CarouselsHandler) ReorderSlides(c *gin.Context) {
	var req models.ReorderSlidesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	carousel, err := h.carousels.ReorderSlides(c.Request.Context(), c.Param("id"), req.SlideIDs)
	if err != nil {
		if errors.Is(err, store.ErrSlideNotFound) {
			respondNotFound(c, "Slide")
			return
		}
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if carousel == nil {
		respondNotFound(c, "Carousel")
		return
	}
	respondData(c, http.StatusOK, carousel)
}
