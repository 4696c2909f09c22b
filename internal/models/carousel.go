package models

import "time"

// Slide is a single carousel slide, owned exclusively by its parent
// carousel. Order is kept as a dense 1..N sequence after any mutation.
type Slide struct {
	ID       string `json:"id" bson:"id"`
	Image    string `json:"image" bson:"image"`
	Title    string `json:"title,omitempty" bson:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty" bson:"subtitle,omitempty"`
	Order    int    `json:"order" bson:"order"`
}

// Carousel represents a storefront carousel. The admin UI reads the
// camelCase field names; name is unique within the store.
type Carousel struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Title     string    `json:"title" bson:"title"`
	Slides    []Slide   `json:"slides" bson:"slides"`
	AutoPlay  bool      `json:"autoPlay" bson:"auto_play"`
	Interval  int       `json:"interval" bson:"interval"`
	Height    int       `json:"height" bson:"height"`
	IsActive  bool      `json:"isActive" bson:"is_active"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

func (c *Carousel) RecordID() string      { return c.ID }
func (c *Carousel) SetRecordID(id string) { c.ID = id }

// CreateCarouselRequest represents a request to create a carousel
type CreateCarouselRequest struct {
	Name     string  `json:"name" binding:"required"`
	Title    string  `json:"title"`
	Slides   []Slide `json:"slides"`
	AutoPlay *bool   `json:"autoPlay"`
	Interval int     `json:"interval"`
	Height   int     `json:"height"`
	IsActive *bool   `json:"isActive"`
}

// UpdateCarouselRequest represents a request to update a carousel
type UpdateCarouselRequest struct {
	Title    *string  `json:"title,omitempty"`
	Slides   *[]Slide `json:"slides,omitempty"`
	AutoPlay *bool    `json:"autoPlay,omitempty"`
	Interval *int     `json:"interval,omitempty"`
	Height   *int     `json:"height,omitempty"`
	IsActive *bool    `json:"isActive,omitempty"`
}

// SlideRequest carries slide fields for add/update operations
type SlideRequest struct {
	Image    string `json:"image"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Order    *int   `json:"order,omitempty"`
}

// ReorderSlidesRequest carries the desired slide id sequence
type ReorderSlidesRequest struct {
	SlideIDs []string `json:"slideIds" binding:"required"`
}
