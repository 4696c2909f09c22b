package models

import (
	"encoding/json"
	"time"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderItem is a single line in an order
type OrderItem struct {
	ProductID string  `json:"product_id" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Image     string  `json:"image,omitempty" bson:"image,omitempty"`
}

// Address is a shipping address attached to an order or user
type Address struct {
	Line1      string `json:"line1" bson:"line1"`
	Line2      string `json:"line2,omitempty" bson:"line2,omitempty"`
	City       string `json:"city" bson:"city"`
	State      string `json:"state" bson:"state"`
	PostalCode string `json:"postal_code" bson:"postal_code"`
	Country    string `json:"country" bson:"country"`
}

// Order represents a customer order. Existing consumers read both
// snake_case and camelCase field names, so MarshalJSON emits both.
type Order struct {
	ID            string      `bson:"_id"`
	UserID        string      `bson:"user_id"`
	Items         []OrderItem `bson:"items"`
	TotalAmount   float64     `bson:"total_amount"`
	Status        OrderStatus `bson:"status"`
	PaymentMethod string      `bson:"payment_method"`
	PaymentID     string      `bson:"payment_id,omitempty"`
	Shipping      Address     `bson:"shipping_address"`
	CreatedAt     time.Time   `bson:"created_at"`
	UpdatedAt     time.Time   `bson:"updated_at"`
}

func (o *Order) RecordID() string      { return o.ID }
func (o *Order) SetRecordID(id string) { o.ID = id }

// MarshalJSON duplicates every multi-word field under its snake_case
// and camelCase name. Consumers built against either generation of the
// API keep working; the duplication is the wire contract.
func (o Order) MarshalJSON() ([]byte, error) {
	items := o.Items
	if items == nil {
		items = []OrderItem{}
	}
	return json.Marshal(map[string]interface{}{
		"id":               o.ID,
		"user_id":          o.UserID,
		"userId":           o.UserID,
		"items":            items,
		"total_amount":     o.TotalAmount,
		"totalAmount":      o.TotalAmount,
		"status":           o.Status,
		"payment_method":   o.PaymentMethod,
		"paymentMethod":    o.PaymentMethod,
		"payment_id":       o.PaymentID,
		"paymentId":        o.PaymentID,
		"shipping_address": o.Shipping,
		"shippingAddress":  o.Shipping,
		"created_at":       o.CreatedAt,
		"createdAt":        o.CreatedAt,
		"updated_at":       o.UpdatedAt,
		"updatedAt":        o.UpdatedAt,
	})
}

// UnmarshalJSON accepts either field-name generation, preferring
// snake_case when both are present.
func (o *Order) UnmarshalJSON(data []byte) error {
	type alias struct {
		ID             string      `json:"id"`
		UserID         string      `json:"user_id"`
		UserIDCamel    string      `json:"userId"`
		Items          []OrderItem `json:"items"`
		TotalAmount    *float64    `json:"total_amount"`
		TotalCamel     *float64    `json:"totalAmount"`
		Status         OrderStatus `json:"status"`
		PaymentMethod  string      `json:"payment_method"`
		PayMethodCamel string      `json:"paymentMethod"`
		PaymentID      string      `json:"payment_id"`
		PaymentIDCamel string      `json:"paymentId"`
		Shipping       *Address    `json:"shipping_address"`
		ShippingCamel  *Address    `json:"shippingAddress"`
		CreatedAt      time.Time   `json:"created_at"`
		UpdatedAt      time.Time   `json:"updated_at"`
	}
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	o.ID = a.ID
	o.UserID = firstNonEmpty(a.UserID, a.UserIDCamel)
	o.Items = a.Items
	if a.TotalAmount != nil {
		o.TotalAmount = *a.TotalAmount
	} else if a.TotalCamel != nil {
		o.TotalAmount = *a.TotalCamel
	}
	o.Status = a.Status
	o.PaymentMethod = firstNonEmpty(a.PaymentMethod, a.PayMethodCamel)
	o.PaymentID = firstNonEmpty(a.PaymentID, a.PaymentIDCamel)
	if a.Shipping != nil {
		o.Shipping = *a.Shipping
	} else if a.ShippingCamel != nil {
		o.Shipping = *a.ShippingCamel
	}
	o.CreatedAt = a.CreatedAt
	o.UpdatedAt = a.UpdatedAt
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
