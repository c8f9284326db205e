package models

import (
	"time"

	"github.com/google/uuid"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusSeated    ReservationStatus = "seated"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// ValidReservationStatus reports whether status is a known reservation status.
func ValidReservationStatus(status ReservationStatus) bool {
	switch status {
	case ReservationStatusPending, ReservationStatusConfirmed,
		ReservationStatusSeated, ReservationStatusCancelled:
		return true
	}
	return false
}

// Reservation represents a table reservation.
type Reservation struct {
	ID              uuid.UUID         `db:"id" json:"id"`
	CustomerID      *uuid.UUID        `db:"customer_id" json:"customerId"`
	PartySize       int               `db:"party_size" json:"partySize"`
	ReservationTime time.Time         `db:"reservation_time" json:"reservationTime"`
	Status          ReservationStatus `db:"status" json:"status"`
	Notes           *string           `db:"notes" json:"notes,omitempty"`
	CreatedAt       time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time         `db:"updated_at" json:"updatedAt"`

	// Joined customer columns for manager list views
	CustomerFirstName *string `db:"customer_first_name" json:"-"`
	CustomerLastName  *string `db:"customer_last_name" json:"-"`
	CustomerEmail     *string `db:"customer_email" json:"-"`

	Customer *OrderCustomer `db:"-" json:"customer,omitempty"`
}

// HydrateViews assembles the nested customer payload from the scanned
// columns.
func (r *Reservation) HydrateViews() {
	if r.CustomerID != nil && r.CustomerEmail != nil {
		r.Customer = &OrderCustomer{ID: *r.CustomerID, Email: *r.CustomerEmail}
		if r.CustomerFirstName != nil {
			r.Customer.FirstName = *r.CustomerFirstName
		}
		if r.CustomerLastName != nil {
			r.Customer.LastName = *r.CustomerLastName
		}
	}
}

// ReservationUpdateRequest is used for reservation edits. Only recognized
// fields are copied from the body.
type ReservationUpdateRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}
