package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"storefront-backend/internal/database"
	"storefront-backend/internal/models"
)

// OrderStore manages customer orders.
type OrderStore struct {
	dual *DualStore[models.Order, *models.Order]
}

func NewOrderStore(manager *database.Manager, logger *logrus.Logger) *OrderStore {
	return &OrderStore{
		dual: NewDualStore[models.Order]("orders", manager, logger, cloneOrder, nil),
	}
}

func cloneOrder(o *models.Order) *models.Order {
	c := *o
	c.Items = append([]models.OrderItem(nil), o.Items...)
	return &c
}

func (s *OrderStore) GetAll(ctx context.Context) ([]*models.Order, error) {
	return s.dual.GetAll(ctx)
}

func (s *OrderStore) GetByID(ctx context.Context, id string) (*models.Order, error) {
	return s.dual.GetByID(ctx, id)
}

// GetByUser returns all orders placed by the user.
func (s *OrderStore) GetByUser(ctx context.Context, userID string) ([]*models.Order, error) {
	all, err := s.dual.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Order, 0, len(all))
	for _, o := range all {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

// Create inserts an order with a fresh id, pending status and computed
// total when the caller left it zero.
func (s *OrderStore) Create(ctx context.Context, o *models.Order) (*models.Order, error) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = models.OrderStatusPending
	}
	if o.TotalAmount == 0 {
		for _, item := range o.Items {
			o.TotalAmount += item.Price * float64(item.Quantity)
		}
	}
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now
	return s.dual.Add(ctx, o)
}

// UpdateStatus transitions the order to the given status. Returns nil
// when the order does not exist.
func (s *OrderStore) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	return s.dual.Update(ctx, id, func(o *models.Order) {
		o.Status = status
		o.UpdatedAt = time.Now().UTC()
	})
}

func (s *OrderStore) Remove(ctx context.Context, id string) (bool, error) {
	return s.dual.Remove(ctx, id)
}

func (s *OrderStore) Count(ctx context.Context) (int64, error) {
	return s.dual.Count(ctx)
}
