package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delicato-app/restaurant-service/internal/models"
)

func TestDashboardAggregate(t *testing.T) {
	repos, mock := newTestRepos(t)
	portal := NewPortalService(repos)

	// The dashboard lookups fan out concurrently, so arrival order is not
	// deterministic.
	mock.MatchExpectationsInOrder(false)

	customerID := uuid.New()
	dealID := uuid.New()

	customerRows := sqlmock.NewRows([]string{
		"id", "first_name", "last_name", "email", "phone",
		"loyalty_tier", "points_balance", "tier_expires_at", "created_at", "updated_at",
	}).AddRow(customerID, "Ada", "Moore", "ada@example.com", nil, "Silver", 8500, nil, now(), now())
	mock.ExpectQuery("SELECT (.+) FROM customers WHERE").
		WithArgs(customerID).
		WillReturnRows(customerRows)

	mock.ExpectQuery("SELECT (.+) FROM wallets").
		WithArgs(customerID).
		WillReturnError(sql.ErrNoRows)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	mock.ExpectQuery("FROM reservations").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "customer_id", "party_size", "reservation_time", "status", "notes", "created_at", "updated_at",
		}))

	mock.ExpectQuery("SELECT id, customer_id, (.+) FROM orders").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "customer_id", "contact_name", "contact_email", "contact_phone", "contact_notes",
			"table_number", "total_cents", "status", "channel", "created_at", "updated_at",
		}))

	mock.ExpectQuery("FROM loyalty_transactions").
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "points_change", "description", "created_at"}))

	dealRows := sqlmock.NewRows([]string{
		"id", "title", "description", "points_required", "starts_at", "ends_at", "is_active", "created_at", "updated_at",
	}).AddRow(dealID, "Free Tiramisu", nil, int64(500), now().Add(-time.Hour), now().Add(time.Hour), true, now(), now())
	mock.ExpectQuery("FROM loyalty_deals").
		WillReturnRows(dealRows)

	mock.ExpectQuery("FROM customer_deals").
		WithArgs(customerID).
		WillReturnRows(sqlmock.NewRows([]string{"deal_id"}).AddRow(dealID))

	mock.ExpectQuery("FROM payment_methods").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "customer_id", "brand", "last4", "expires_month", "expires_year",
			"provider_token", "is_default", "created_at", "updated_at",
		}))

	menuRows := sqlmock.NewRows([]string{
		"id", "name", "description", "category", "price_cents", "image_url",
		"is_active", "sort_order", "created_at", "updated_at",
	}).
		AddRow(uuid.New(), "Margherita", nil, "Pizza", int64(1299), nil, true, 1, now(), now()).
		AddRow(uuid.New(), "Tiramisu", nil, "Dessert", int64(1049), nil, true, 2, now(), now())
	mock.ExpectQuery("FROM menu_items").
		WithArgs(menuPreviewSize).
		WillReturnRows(menuRows)

	dashboard, err := portal.Dashboard(context.Background(), customerID)
	require.NoError(t, err)

	assert.Equal(t, "Ada", dashboard.Customer.FirstName)
	assert.Equal(t, 2, dashboard.Customer.OrdersThisMonth)
	assert.Nil(t, dashboard.Customer.NextReservationAt)

	// No wallet row renders as a zero balance, not an error.
	assert.Equal(t, models.WalletView{}, dashboard.Wallet)

	assert.Equal(t, "Silver", dashboard.Loyalty.CurrentTier)
	assert.Equal(t, 50, dashboard.Loyalty.ProgressPercent)
	assert.Equal(t, int64(3500), dashboard.Loyalty.PointsToNext)
	assert.Equal(t, int64(8500), dashboard.Loyalty.PointsBalance)

	require.Len(t, dashboard.Deals, 1)
	assert.True(t, dashboard.Deals[0].IsRedeemed)

	require.Len(t, dashboard.Menu, 2)
	assert.Equal(t, "Margherita", dashboard.Menu[0].Name)
	assert.Equal(t, int64(1299), dashboard.Menu[0].PriceCents)

	assert.Empty(t, dashboard.Activity.Orders)
	assert.Empty(t, dashboard.Activity.Reservations)
	assert.Empty(t, dashboard.Payments)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardMissingCustomer(t *testing.T) {
	repos, mock := newTestRepos(t)
	portal := NewPortalService(repos)

	mock.MatchExpectationsInOrder(false)

	customerID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM customers WHERE").
		WithArgs(customerID).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT (.+) FROM wallets").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("FROM reservations").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "customer_id", "party_size", "reservation_time", "status", "notes", "created_at", "updated_at",
		}))
	mock.ExpectQuery("SELECT id, customer_id, (.+) FROM orders").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "customer_id", "contact_name", "contact_email", "contact_phone", "contact_notes",
			"table_number", "total_cents", "status", "channel", "created_at", "updated_at",
		}))
	mock.ExpectQuery("FROM loyalty_transactions").
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "points_change", "description", "created_at"}))
	mock.ExpectQuery("FROM loyalty_deals").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "description", "points_required", "starts_at", "ends_at", "is_active", "created_at", "updated_at",
		}))
	mock.ExpectQuery("FROM customer_deals").
		WillReturnRows(sqlmock.NewRows([]string{"deal_id"}))
	mock.ExpectQuery("FROM payment_methods").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "customer_id", "brand", "last4", "expires_month", "expires_year",
			"provider_token", "is_default", "created_at", "updated_at",
		}))
	mock.ExpectQuery("FROM menu_items").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "description", "category", "price_cents", "image_url",
			"is_active", "sort_order", "created_at", "updated_at",
		}))

	_, err := portal.Dashboard(context.Background(), customerID)

	assert.Error(t, err)
}
