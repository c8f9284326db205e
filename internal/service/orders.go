package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/delicato-app/restaurant-service/internal/db/repository"
	"github.com/delicato-app/restaurant-service/internal/models"
)

// Order validation errors surfaced to handlers.
var (
	ErrNoItems           = errors.New("at least one item is required")
	ErrItemNameRequired  = errors.New("each item requires a name")
	ErrItemPriceRequired = errors.New("each item requires a numeric unitPriceCents")
	ErrZeroTotal         = errors.New("order total must be greater than zero")
	ErrInvalidCustomerID = errors.New("invalid customer id")
)

// OrderService handles order creation, listing, and status changes.
type OrderService struct {
	orders  *repository.OrderRepository
	loyalty *LoyaltyService
}

// NewOrderService creates a new order service
func NewOrderService(repos *repository.Repositories, loyalty *LoyaltyService) *OrderService {
	return &OrderService{
		orders:  repos.Order,
		loyalty: loyalty,
	}
}

// NormalizeOrderItems validates and normalizes an order's item list and
// returns the items with the computed total. Quantities default to 1 and are
// floored; unit prices are floored to whole cents.
func NormalizeOrderItems(requests []models.OrderItemRequest) ([]models.OrderItem, int64, error) {
	if len(requests) == 0 {
		return nil, 0, ErrNoItems
	}

	items := make([]models.OrderItem, 0, len(requests))
	var totalCents int64

	for _, req := range requests {
		if strings.TrimSpace(req.Name) == "" {
			return nil, 0, ErrItemNameRequired
		}
		if req.UnitPriceCents == nil || math.IsNaN(*req.UnitPriceCents) || math.IsInf(*req.UnitPriceCents, 0) || *req.UnitPriceCents < 0 {
			return nil, 0, ErrItemPriceRequired
		}

		quantity := 1
		if req.Quantity != nil && !math.IsNaN(*req.Quantity) && *req.Quantity > 0 {
			quantity = int(math.Floor(*req.Quantity))
		}

		item := models.OrderItem{
			Name:           req.Name,
			Quantity:       quantity,
			UnitPriceCents: int64(math.Floor(*req.UnitPriceCents)),
		}

		if req.MenuItem != "" {
			if id, err := uuid.Parse(req.MenuItem); err == nil {
				item.MenuItemID = &id
			}
		}
		if req.SpecialInstructions != "" {
			instructions := req.SpecialInstructions
			item.SpecialInstructions = &instructions
		}

		totalCents += int64(item.Quantity) * item.UnitPriceCents
		items = append(items, item)
	}

	if totalCents <= 0 {
		return nil, 0, ErrZeroTotal
	}

	return items, totalCents, nil
}

// Create validates the request, stores the order, and applies the loyalty
// side effect when the order is attributed to a customer. Points are awarded
// at creation, independent of the order's eventual status.
func (s *OrderService) Create(ctx context.Context, req models.OrderRequest, session *SessionClaims) (*models.OrderResponse, error) {
	items, totalCents, err := NormalizeOrderItems(req.Items)
	if err != nil {
		return nil, err
	}

	var sessionCustomerID string
	if session != nil && session.Role == models.RoleCustomer {
		sessionCustomerID = session.CustomerID
	}

	channel := req.Channel
	if channel == "" {
		if sessionCustomerID != "" {
			channel = models.ChannelGuestPortal
		} else {
			channel = models.ChannelWeb
		}
	}

	order := models.Order{
		TotalCents: totalCents,
		Status:     models.OrderStatusPending,
		Channel:    channel,
	}

	if req.TableNumber != "" {
		table := req.TableNumber
		order.TableNumber = &table
	}

	customerID := req.CustomerID
	if customerID == "" {
		customerID = sessionCustomerID
	}
	if customerID != "" {
		id, err := uuid.Parse(customerID)
		if err != nil {
			return nil, ErrInvalidCustomerID
		}
		order.CustomerID = &id
	}

	if req.Contact != nil && !req.Contact.Empty() {
		if req.Contact.Name != "" {
			order.ContactName = &req.Contact.Name
		}
		if req.Contact.Email != "" {
			order.ContactEmail = &req.Contact.Email
		}
		if req.Contact.Phone != "" {
			order.ContactPhone = &req.Contact.Phone
		}
		if req.Contact.Notes != "" {
			order.ContactNotes = &req.Contact.Notes
		}
	}

	created, err := s.orders.Create(ctx, order, items)
	if err != nil {
		return nil, err
	}

	response := &models.OrderResponse{Order: *created}
	if created.CustomerID != nil {
		response.Loyalty = s.loyalty.AwardOrderPoints(ctx, *created.CustomerID, created.ID, created.TotalCents)
	}

	return response, nil
}

// List retrieves orders, optionally filtered by status
func (s *OrderService) List(ctx context.Context, status *models.OrderStatus) ([]models.Order, error) {
	return s.orders.List(ctx, status)
}

// UpdateStatus overwrites an order's status. The status must be a known
// label; transitions are not checked for adjacency.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	return s.orders.UpdateStatus(ctx, id, status)
}
