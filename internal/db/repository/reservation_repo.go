package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/delicato-app/restaurant-service/internal/models"
)

// ReservationRepository handles reservation data access
type ReservationRepository struct {
	db *sqlx.DB
}

// NewReservationRepository creates a new reservation repository
func NewReservationRepository(db *sqlx.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

const reservationColumns = "id, customer_id, party_size, reservation_time, status, notes, created_at, updated_at"

// List retrieves reservations inside an optional time window, soonest
// first, with the customer summary joined.
func (r *ReservationRepository) List(ctx context.Context, from, to *time.Time) ([]models.Reservation, error) {
	query := `
		SELECT r.id, r.customer_id, r.party_size, r.reservation_time, r.status, r.notes, r.created_at, r.updated_at,
		       c.first_name AS customer_first_name, c.last_name AS customer_last_name, c.email AS customer_email
		FROM reservations r
		LEFT JOIN customers c ON r.customer_id = c.id
	`

	var clauses []string
	var args []interface{}
	if from != nil {
		args = append(args, *from)
		clauses = append(clauses, fmt.Sprintf("r.reservation_time >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		clauses = append(clauses, fmt.Sprintf("r.reservation_time <= $%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY r.reservation_time ASC LIMIT 200"

	var reservations []models.Reservation
	err := r.db.SelectContext(ctx, &reservations, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	for i := range reservations {
		reservations[i].HydrateViews()
	}

	return reservations, nil
}

// ListUpcomingByCustomer retrieves a customer's next reservations.
func (r *ReservationRepository) ListUpcomingByCustomer(ctx context.Context, customerID uuid.UUID, after time.Time, limit int) ([]models.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE customer_id = $1 AND reservation_time >= $2
		ORDER BY reservation_time ASC
		LIMIT $3
	`

	var reservations []models.Reservation
	err := r.db.SelectContext(ctx, &reservations, query, customerID, after, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming reservations: %w", err)
	}

	return reservations, nil
}

// Update applies status and notes changes and returns the updated
// reservation.
func (r *ReservationRepository) Update(ctx context.Context, id uuid.UUID, status *models.ReservationStatus, notes *string, clearNotes bool) (*models.Reservation, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if status != nil {
		sets = append(sets, "status = "+arg(*status))
	}
	if notes != nil {
		sets = append(sets, "notes = "+arg(*notes))
	} else if clearNotes {
		sets = append(sets, "notes = NULL")
	}

	query := fmt.Sprintf(`
		UPDATE reservations
		SET %s
		WHERE id = %s
		RETURNING `+reservationColumns,
		strings.Join(sets, ", "), arg(id))

	var updated models.Reservation
	err := r.db.GetContext(ctx, &updated, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update reservation: %w", translate(err))
	}

	return &updated, nil
}
