package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether status is a known order status. Any
// authorized caller may set any status; adjacency is not checked.
func ValidOrderStatus(status OrderStatus) bool {
	switch status {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusReady,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order channels describe where an order originated; they are used only for
// display grouping.
const (
	ChannelDineIn      = "dine_in"
	ChannelWeb         = "web"
	ChannelGuestPortal = "guest_portal"
)

// OrderContact is the contact snapshot captured with a guest order.
type OrderContact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// Empty reports whether the snapshot carries no contact information.
func (c OrderContact) Empty() bool {
	return c.Name == "" && c.Email == "" && c.Phone == "" && c.Notes == ""
}

// Order represents a customer or guest order. The item list is immutable
// after creation.
type Order struct {
	ID           uuid.UUID   `db:"id" json:"id"`
	CustomerID   *uuid.UUID  `db:"customer_id" json:"customerId"`
	ContactName  *string     `db:"contact_name" json:"-"`
	ContactEmail *string     `db:"contact_email" json:"-"`
	ContactPhone *string     `db:"contact_phone" json:"-"`
	ContactNotes *string     `db:"contact_notes" json:"-"`
	TableNumber  *string     `db:"table_number" json:"tableNumber,omitempty"`
	TotalCents   int64       `db:"total_cents" json:"totalCents"`
	Status       OrderStatus `db:"status" json:"status"`
	Channel      string      `db:"channel" json:"channel"`
	CreatedAt    time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updatedAt"`

	// Not stored directly in the orders table
	Contact  *OrderContact `db:"-" json:"contact,omitempty"`
	Items    []OrderItem   `db:"-" json:"items"`
	Customer *OrderCustomer `db:"-" json:"customer,omitempty"`

	// Joined customer columns for list views
	CustomerFirstName *string `db:"customer_first_name" json:"-"`
	CustomerLastName  *string `db:"customer_last_name" json:"-"`
	CustomerEmail     *string `db:"customer_email" json:"-"`
}

// OrderCustomer is the customer summary joined onto manager order lists.
type OrderCustomer struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
}

// HydrateViews assembles the nested contact and customer payloads from the
// scanned columns.
func (o *Order) HydrateViews() {
	if o.ContactName != nil || o.ContactEmail != nil || o.ContactPhone != nil || o.ContactNotes != nil {
		contact := OrderContact{}
		if o.ContactName != nil {
			contact.Name = *o.ContactName
		}
		if o.ContactEmail != nil {
			contact.Email = *o.ContactEmail
		}
		if o.ContactPhone != nil {
			contact.Phone = *o.ContactPhone
		}
		if o.ContactNotes != nil {
			contact.Notes = *o.ContactNotes
		}
		o.Contact = &contact
	}
	if o.CustomerID != nil && o.CustomerEmail != nil {
		o.Customer = &OrderCustomer{ID: *o.CustomerID, Email: *o.CustomerEmail}
		if o.CustomerFirstName != nil {
			o.Customer.FirstName = *o.CustomerFirstName
		}
		if o.CustomerLastName != nil {
			o.Customer.LastName = *o.CustomerLastName
		}
	}
}

// OrderItem represents a line in an order, with the menu item name and unit
// price snapshotted at order time.
type OrderItem struct {
	ID                  uuid.UUID  `db:"id" json:"-"`
	OrderID             uuid.UUID  `db:"order_id" json:"-"`
	MenuItemID          *uuid.UUID `db:"menu_item_id" json:"menuItem,omitempty"`
	Name                string     `db:"name" json:"name"`
	Quantity            int        `db:"quantity" json:"quantity"`
	UnitPriceCents      int64      `db:"unit_price_cents" json:"unitPriceCents"`
	SpecialInstructions *string    `db:"special_instructions" json:"specialInstructions,omitempty"`
	CreatedAt           time.Time  `db:"created_at" json:"-"`
}

// OrderRequest is used for order creation
type OrderRequest struct {
	Items       []OrderItemRequest `json:"items"`
	CustomerID  string             `json:"customerId"`
	Contact     *OrderContact      `json:"contact"`
	TableNumber string             `json:"tableNumber"`
	Channel     string             `json:"channel"`
}

// OrderItemRequest is used for order item creation
type OrderItemRequest struct {
	MenuItem            string   `json:"menuItem"`
	Name                string   `json:"name"`
	Quantity            *float64 `json:"quantity"`
	UnitPriceCents      *float64 `json:"unitPriceCents"`
	SpecialInstructions string   `json:"specialInstructions"`
}

// OrderLoyalty is attached to an order response when points were awarded.
type OrderLoyalty struct {
	PointsAwarded int64 `json:"pointsAwarded"`
	PointsBalance int64 `json:"pointsBalance"`
}

// OrderResponse is the order creation payload, with the optional loyalty
// block describing the points side effect.
type OrderResponse struct {
	Order
	Loyalty *OrderLoyalty `json:"loyalty,omitempty"`
}
