package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront-backend/internal/models"
	"storefront-backend/internal/store"
)

// UsersHandler serves account endpoints.
type UsersHandler struct {
	users  *store.UserStore
	logger *logrus.Entry
}

func NewUsersHandler(users *store.UserStore, logger *logrus.Logger) *UsersHandler {
	return &UsersHandler{
		users:  users,
		logger: logger.WithField("handler", "users"),
	}
}

// Register handles POST /api/users/register.
func (h *UsersHandler) Register(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if user.Name == "" || user.Email == "" || user.PasswordHash == "" {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "name, email and password are required")
		return
	}

	created, err := h.users.Create(c.Request.Context(), &user)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	h.logger.WithField("user_id", created.ID).Info("User registered")
	respondData(c, http.StatusCreated, created)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/users/login.
func (h *UsersHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if user == nil {
		respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
		return
	}
	respondData(c, http.StatusOK, user)
}

// GetUsers handles GET /api/users.
func (h *UsersHandler) GetUsers(c *gin.Context) {
	list, err := h.users.GetAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondData(c, http.StatusOK, list)
}

// GetUser handles GET /api/users/:id.
func (h *UsersHandler) GetUser(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if user == nil {
		respondNotFound(c, "User")
		return
	}
	respondData(c, http.StatusOK, user)
}

type updateUserRequest struct {
	Name    *string         `json:"name,omitempty"`
	Phone   *string         `json:"phone,omitempty"`
	Address *models.Address `json:"address,omitempty"`
	IsAdmin *bool           `json:"is_admin,omitempty"`
}

// UpdateUser handles PUT /api/users/:id.
func (h *UsersHandler) UpdateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	updated, err := h.users.Update(c.Request.Context(), c.Param("id"), func(u *models.User) {
		if req.Name != nil {
			u.Name = *req.Name
		}
		if req.Phone != nil {
			u.Phone = *req.Phone
		}
		if req.Address != nil {
			u.Address = req.Address
		}
		if req.IsAdmin != nil {
			u.IsAdmin = *req.IsAdmin
		}
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if updated == nil {
		respondNotFound(c, "User")
		return
	}
	respondData(c, http.StatusOK, updated)
}

// DeleteUser handles DELETE /api/users/:id.
func (h *UsersHandler) DeleteUser(c *gin.Context) {
	removed, err := h.users.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if !removed {
		respondNotFound(c, "User")
		return
	}
	respondMessage(c, http.StatusOK, nil, "User deleted")
}
