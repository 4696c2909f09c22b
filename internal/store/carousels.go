package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"storefront-backend/internal/database"
	"storefront-backend/internal/models"
)

// ErrSlideNotFound is returned by slide operations targeting a slide
// id absent from the carousel.
var ErrSlideNotFound = errors.New("slide not found")

// CarouselStore manages storefront carousels. Slide mutations always
// rewrite the whole slides array and renumber orders to a dense 1..N
// sequence.
type CarouselStore struct {
	dual *DualStore[models.Carousel, *models.Carousel]
}

func NewCarouselStore(manager *database.Manager, logger *logrus.Logger, seed []*models.Carousel) *CarouselStore {
	return &CarouselStore{
		dual: NewDualStore[models.Carousel]("carousels", manager, logger, cloneCarousel, seed),
	}
}

func cloneCarousel(c *models.Carousel) *models.Carousel {
	out := *c
	out.Slides = append([]models.Slide(nil), c.Slides...)
	return &out
}

func (s *CarouselStore) GetAll(ctx context.Context) ([]*models.Carousel, error) {
	return s.dual.GetAll(ctx)
}

func (s *CarouselStore) GetByID(ctx context.Context, id string) (*models.Carousel, error) {
	return s.dual.GetByID(ctx, id)
}

// GetByName returns the carousel with the given unique name, or nil.
func (s *CarouselStore) GetByName(ctx context.Context, name string) (*models.Carousel, error) {
	return s.dual.FindFirst(ctx,
		bson.M{"name": name},
		func(c *models.Carousel) bool { return c.Name == name })
}

// Create inserts a carousel. Duplicate names are rejected.
func (s *CarouselStore) Create(ctx context.Context, c *models.Carousel) (*models.Carousel, error) {
	existing, err := s.GetByName(ctx, c.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: carousel name %q", ErrDuplicate, c.Name)
	}

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	normalizeSlides(c)
	return s.dual.Add(ctx, c)
}

// Update applies mutate and renormalizes slides. Returns nil when the
// carousel does not exist.
func (s *CarouselStore) Update(ctx context.Context, id string, mutate func(*models.Carousel)) (*models.Carousel, error) {
	return s.dual.Update(ctx, id, func(c *models.Carousel) {
		mutate(c)
		c.UpdatedAt = time.Now().UTC()
		normalizeSlides(c)
	})
}

func (s *CarouselStore) Remove(ctx context.Context, id string) (bool, error) {
	return s.dual.Remove(ctx, id)
}

// AddSlide appends or inserts a slide. A requested order clamps into
// [1, len+1]; absent order appends.
func (s *CarouselStore) AddSlide(ctx context.Context, carouselID string, req models.SlideRequest) (*models.Carousel, error) {
	return s.Update(ctx, carouselID, func(c *models.Carousel) {
		slide := models.Slide{
			ID:       uuid.NewString(),
			Image:    NormalizeImagePath(req.Image),
			Title:    req.Title,
			Subtitle: req.Subtitle,
		}
		pos := len(c.Slides)
		if req.Order != nil {
			pos = clamp(*req.Order-1, 0, len(c.Slides))
		}
		c.Slides = append(c.Slides, models.Slide{})
		copy(c.Slides[pos+1:], c.Slides[pos:])
		c.Slides[pos] = slide
	})
}

// requireSlide loads the carousel and verifies the slide exists, so a
// missing target never reaches the writeback and stays a pure no-op.
func (s *CarouselStore) requireSlide(ctx context.Context, carouselID, slideID string) (*models.Carousel, error) {
	carousel, err := s.dual.GetByID(ctx, carouselID)
	if err != nil || carousel == nil {
		return carousel, err
	}
	if slideIndex(carousel.Slides, slideID) < 0 {
		return nil, ErrSlideNotFound
	}
	return carousel, nil
}

// UpdateSlide patches one slide in place. A changed order moves the
// slide to that position.
func (s *CarouselStore) UpdateSlide(ctx context.Context, carouselID, slideID string, req models.SlideRequest) (*models.Carousel, error) {
	if c, err := s.requireSlide(ctx, carouselID, slideID); err != nil || c == nil {
		return c, err
	}
	return s.Update(ctx, carouselID, func(c *models.Carousel) {
		idx := slideIndex(c.Slides, slideID)
		if idx < 0 {
			return
		}
		slide := &c.Slides[idx]
		if req.Image != "" {
			slide.Image = NormalizeImagePath(req.Image)
		}
		if req.Title != "" {
			slide.Title = req.Title
		}
		if req.Subtitle != "" {
			slide.Subtitle = req.Subtitle
		}
		if req.Order != nil {
			moveSlide(c.Slides, idx, clamp(*req.Order-1, 0, len(c.Slides)-1))
		}
	})
}

// RemoveSlide deletes one slide and renumbers the remainder.
func (s *CarouselStore) RemoveSlide(ctx context.Context, carouselID, slideID string) (*models.Carousel, error) {
	if c, err := s.requireSlide(ctx, carouselID, slideID); err != nil || c == nil {
		return c, err
	}
	return s.Update(ctx, carouselID, func(c *models.Carousel) {
		idx := slideIndex(c.Slides, slideID)
		if idx < 0 {
			return
		}
		c.Slides = append(c.Slides[:idx], c.Slides[idx+1:]...)
	})
}

// ReorderSlides rearranges slides to the given id sequence. Every
// existing slide id must appear exactly once. Invalid sequences are
// rejected before any writeback.
func (s *CarouselStore) ReorderSlides(ctx context.Context, carouselID string, slideIDs []string) (*models.Carousel, error) {
	current, err := s.dual.GetByID(ctx, carouselID)
	if err != nil || current == nil {
		return current, err
	}
	if len(slideIDs) != len(current.Slides) {
		return nil, fmt.Errorf("expected %d slide ids, got %d", len(current.Slides), len(slideIDs))
	}
	for _, id := range slideIDs {
		if slideIndex(current.Slides, id) < 0 {
			return nil, fmt.Errorf("%w: %s", ErrSlideNotFound, id)
		}
	}

	return s.Update(ctx, carouselID, func(c *models.Carousel) {
		reordered := make([]models.Slide, 0, len(c.Slides))
		for _, id := range slideIDs {
			if idx := slideIndex(c.Slides, id); idx >= 0 {
				reordered = append(reordered, c.Slides[idx])
			}
		}
		c.Slides = reordered
	})
}

// normalizeSlides guarantees ids, normalized image paths and dense
// 1..N ordering.
func normalizeSlides(c *models.Carousel) {
	if c.Slides == nil {
		c.Slides = []models.Slide{}
	}
	for i := range c.Slides {
		if c.Slides[i].ID == "" {
			c.Slides[i].ID = uuid.NewString()
		}
		c.Slides[i].Image = NormalizeImagePath(c.Slides[i].Image)
		c.Slides[i].Order = i + 1
	}
}

// NormalizeImagePath roots bare filenames and relative paths under
// /uploads/. Absolute URLs and already rooted paths pass through.
func NormalizeImagePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return path
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/uploads/" + path
}

func slideIndex(slides []models.Slide, id string) int {
	for i := range slides {
		if slides[i].ID == id {
			return i
		}
	}
	return -1
}

func moveSlide(slides []models.Slide, from, to int) {
	if from == to {
		return
	}
	slide := slides[from]
	if from < to {
		copy(slides[from:], slides[from+1:to+1])
	} else {
		copy(slides[to+1:], slides[to:from])
	}
	slides[to] = slide
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SeedCarousels returns the default hero carousel used in degraded
// mode.
func SeedCarousels() []*models.Carousel {
	now := time.Now().UTC()
	return []*models.Carousel{
		{
			ID:    uuid.NewString(),
			Name:  "hero",
			Title: "Featured",
			Slides: []models.Slide{
				{ID: uuid.NewString(), Image: "/uploads/hero-1.jpg", Title: "New Arrivals", Order: 1},
				{ID: uuid.NewString(), Image: "/uploads/hero-2.jpg", Title: "Season Sale", Order: 2},
			},
			AutoPlay:  true,
			Interval:  5000,
			Height:    480,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}
