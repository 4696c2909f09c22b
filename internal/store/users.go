package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"storefront-backend/internal/database"
	"storefront-backend/internal/models"
)

// UserStore manages storefront accounts. Emails are unique and stored
// lowercased.
type UserStore struct {
	dual *DualStore[models.User, *models.User]
}

func NewUserStore(manager *database.Manager, logger *logrus.Logger) *UserStore {
	return &UserStore{
		dual: NewDualStore[models.User]("users", manager, logger, cloneUser, nil),
	}
}

func cloneUser(u *models.User) *models.User {
	c := *u
	if u.Address != nil {
		addr := *u.Address
		c.Address = &addr
	}
	return &c
}

func (s *UserStore) GetAll(ctx context.Context) ([]*models.User, error) {
	return s.dual.GetAll(ctx)
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.dual.GetByID(ctx, id)
}

// GetByEmail returns the user with the given email, or nil.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return s.dual.FindFirst(ctx,
		bson.M{"email": email},
		func(u *models.User) bool { return u.Email == email })
}

// Create registers a user. The PasswordHash field is expected to hold
// the plaintext password on input and is replaced with a bcrypt hash.
func (s *UserStore) Create(ctx context.Context, u *models.User) (*models.User, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	existing, err := s.GetByEmail(ctx, u.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email %s", ErrDuplicate, u.Email)
	}

	if u.PasswordHash != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.PasswordHash), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	return s.dual.Add(ctx, u)
}

// Authenticate verifies the email and password, returning the user on
// success and nil otherwise.
func (s *UserStore) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}
	return u, nil
}

// Update applies mutate to the user. Returns nil when the user does
// not exist.
func (s *UserStore) Update(ctx context.Context, id string, mutate func(*models.User)) (*models.User, error) {
	return s.dual.Update(ctx, id, func(u *models.User) {
		mutate(u)
		u.Email = strings.ToLower(strings.TrimSpace(u.Email))
		u.UpdatedAt = time.Now().UTC()
	})
}

func (s *UserStore) Remove(ctx context.Context, id string) (bool, error) {
	return s.dual.Remove(ctx, id)
}
