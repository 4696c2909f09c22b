package models

import (
	"encoding/json"
	"time"
)

// User represents a storefront account. Like Order, the JSON shape
// carries both snake_case and camelCase names for compatibility.
type User struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	Phone        string    `bson:"phone,omitempty"`
	Address      *Address  `bson:"address,omitempty"`
	IsAdmin      bool      `bson:"is_admin"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func (u *User) RecordID() string      { return u.ID }
func (u *User) SetRecordID(id string) { u.ID = id }

// MarshalJSON never emits the password hash and duplicates multi-word
// fields under both naming generations.
func (u User) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		"id":         u.ID,
		"name":       u.Name,
		"email":      u.Email,
		"phone":      u.Phone,
		"is_admin":   u.IsAdmin,
		"isAdmin":    u.IsAdmin,
		"created_at": u.CreatedAt,
		"createdAt":  u.CreatedAt,
		"updated_at": u.UpdatedAt,
		"updatedAt":  u.UpdatedAt,
	}
	if u.Address != nil {
		out["address"] = u.Address
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts either field-name generation.
func (u *User) UnmarshalJSON(data []byte) error {
	type alias struct {
		ID           string    `json:"id"`
		Name         string    `json:"name"`
		Email        string    `json:"email"`
		Password     string    `json:"password"`
		Phone        string    `json:"phone"`
		Address      *Address  `json:"address"`
		IsAdmin      *bool     `json:"is_admin"`
		IsAdminCamel *bool     `json:"isAdmin"`
		CreatedAt    time.Time `json:"created_at"`
		UpdatedAt    time.Time `json:"updated_at"`
	}
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	u.ID = a.ID
	u.Name = a.Name
	u.Email = a.Email
	u.PasswordHash = a.Password
	u.Phone = a.Phone
	u.Address = a.Address
	if a.IsAdmin != nil {
		u.IsAdmin = *a.IsAdmin
	} else if a.IsAdminCamel != nil {
		u.IsAdmin = *a.IsAdminCamel
	}
	u.CreatedAt = a.CreatedAt
	u.UpdatedAt = a.UpdatedAt
	return nil
}
