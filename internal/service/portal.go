package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/delicato-app/restaurant-service/internal/db/repository"
	"github.com/delicato-app/restaurant-service/internal/models"
)

// PortalService aggregates the customer-facing dashboard and the manager
// customer views. Independent reads fan out concurrently; no write depends
// on their interleaving.
type PortalService struct {
	repos *repository.Repositories
}

// NewPortalService creates a new portal service
func NewPortalService(repos *repository.Repositories) *PortalService {
	return &PortalService{repos: repos}
}

// CustomerSummary is the profile header shown on dashboards.
type CustomerSummary struct {
	ID                uuid.UUID  `json:"id"`
	FirstName         string     `json:"firstName"`
	LastName          string     `json:"lastName"`
	Email             string     `json:"email"`
	LoyaltyTier       string     `json:"loyaltyTier"`
	PointsBalance     int64      `json:"pointsBalance"`
	TierExpiresAt     *time.Time `json:"tierExpiresAt"`
	OrdersThisMonth   int        `json:"ordersThisMonth"`
	NextReservationAt *time.Time `json:"nextReservationAt"`
}

// LoyaltySummary is the tier progress block with the live balance.
type LoyaltySummary struct {
	TierProgress
	PointsBalance int64      `json:"pointsBalance"`
	TierExpiresAt *time.Time `json:"tierExpiresAt"`
}

// PaymentMethodView is the stored-card payload exposed to customers.
type PaymentMethodView struct {
	ID           uuid.UUID `json:"id"`
	Brand        *string   `json:"brand"`
	Last4        *string   `json:"last4"`
	ExpiresMonth *int      `json:"expiresMonth"`
	ExpiresYear  *int      `json:"expiresYear"`
	IsDefault    bool      `json:"isDefault"`
}

// ReservationView is the trimmed reservation payload for activity feeds.
type ReservationView struct {
	ID              uuid.UUID                `json:"id"`
	ReservationTime time.Time                `json:"reservationTime"`
	PartySize       int                      `json:"partySize"`
	Status          models.ReservationStatus `json:"status"`
	Notes           *string                  `json:"notes,omitempty"`
}

// OrderView is the trimmed order payload for activity feeds.
type OrderView struct {
	ID         uuid.UUID          `json:"id"`
	CreatedAt  time.Time          `json:"createdAt"`
	Status     models.OrderStatus `json:"status"`
	Channel    string             `json:"channel"`
	TotalCents int64              `json:"totalCents"`
	Items      []OrderItemView    `json:"items"`
}

// OrderItemView is one line of an order in an activity feed.
type OrderItemView struct {
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

// LoyaltyActivityView is one ledger entry in an activity feed.
type LoyaltyActivityView struct {
	ID           uuid.UUID `json:"id"`
	PointsChange int64     `json:"pointsChange"`
	Description  *string   `json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// MenuItemView is the storefront preview payload.
type MenuItemView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty"`
	PriceCents  int64     `json:"priceCents"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
}

// Activity groups a customer's recent reservations, orders, and points.
type Activity struct {
	Reservations []ReservationView     `json:"reservations"`
	Orders       []OrderView           `json:"orders"`
	Loyalty      []LoyaltyActivityView `json:"loyalty"`
}

// Dashboard is the single aggregate response backing the customer portal.
type Dashboard struct {
	Customer CustomerSummary     `json:"customer"`
	Wallet   models.WalletView   `json:"wallet"`
	Loyalty  LoyaltySummary      `json:"loyalty"`
	Deals    []models.DealView   `json:"deals"`
	Payments []PaymentMethodView `json:"payments"`
	Activity Activity            `json:"activity"`
	Menu     []MenuItemView      `json:"menu"`
}

const menuPreviewSize = 12

// Dashboard assembles the customer portal aggregate in one call.
func (s *PortalService) Dashboard(ctx context.Context, customerID uuid.UUID) (*Dashboard, error) {
	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var (
		customer        *models.Customer
		wallet          *models.Wallet
		ordersThisMonth int
		reservations    []models.Reservation
		recentOrders    []models.Order
		transactions    []models.LoyaltyTransaction
		activeDeals     []models.LoyaltyDeal
		redeemedIDs     []uuid.UUID
		paymentMethods  []models.PaymentMethod
		menuItems       []models.MenuItem
	)

	err := s.fanOut(ctx,
		func(ctx context.Context) (err error) {
			customer, err = s.repos.Customer.GetByID(ctx, customerID)
			return err
		},
		func(ctx context.Context) (err error) {
			wallet, err = s.repos.Wallet.GetByCustomer(ctx, customerID)
			return err
		},
		func(ctx context.Context) (err error) {
			ordersThisMonth, err = s.repos.Order.CountSince(ctx, customerID, startOfMonth)
			return err
		},
		func(ctx context.Context) (err error) {
			reservations, err = s.repos.Reservation.ListUpcomingByCustomer(ctx, customerID, now, 3)
			return err
		},
		func(ctx context.Context) (err error) {
			recentOrders, err = s.repos.Order.ListByCustomer(ctx, customerID, 5)
			return err
		},
		func(ctx context.Context) (err error) {
			transactions, err = s.repos.Loyalty.ListTransactions(ctx, customerID, 10)
			return err
		},
		func(ctx context.Context) (err error) {
			activeDeals, err = s.repos.Loyalty.ListActiveDeals(ctx, now)
			return err
		},
		func(ctx context.Context) (err error) {
			redeemedIDs, err = s.repos.Loyalty.ListRedeemedDealIDs(ctx, customerID)
			return err
		},
		func(ctx context.Context) (err error) {
			paymentMethods, err = s.repos.PaymentMethod.ListByCustomer(ctx, customerID)
			return err
		},
		func(ctx context.Context) (err error) {
			menuItems, err = s.repos.Menu.ListActive(ctx, menuPreviewSize)
			return err
		},
	)
	if err != nil {
		return nil, err
	}

	summary := CustomerSummary{
		ID:              customer.ID,
		FirstName:       customer.FirstName,
		LastName:        customer.LastName,
		Email:           customer.Email,
		LoyaltyTier:     customer.LoyaltyTier,
		PointsBalance:   customer.PointsBalance,
		TierExpiresAt:   customer.TierExpiresAt,
		OrdersThisMonth: ordersThisMonth,
	}
	if len(reservations) > 0 {
		summary.NextReservationAt = &reservations[0].ReservationTime
	}

	walletView := models.WalletView{}
	if wallet != nil {
		walletView = models.WalletView{
			BalanceCents:             wallet.BalanceCents,
			AutoReloadThresholdCents: wallet.AutoReloadThresholdCents,
			AutoReloadAmountCents:    wallet.AutoReloadAmountCents,
		}
	}

	dashboard := &Dashboard{
		Customer: summary,
		Wallet:   walletView,
		Loyalty: LoyaltySummary{
			TierProgress:  ResolveTierProgress(customer.LoyaltyTier, customer.PointsBalance),
			PointsBalance: customer.PointsBalance,
			TierExpiresAt: customer.TierExpiresAt,
		},
		Deals:    flagRedemptions(activeDeals, redeemedIDs),
		Payments: paymentViews(paymentMethods),
		Activity: Activity{
			Reservations: reservationViews(reservations),
			Orders:       orderViews(recentOrders),
			Loyalty:      loyaltyViews(transactions),
		},
		Menu: menuViews(menuItems),
	}

	return dashboard, nil
}

// Summary builds the manager-facing customer header.
func (s *PortalService) Summary(ctx context.Context, customerID uuid.UUID) (*CustomerSummary, int64, error) {
	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var (
		customer        *models.Customer
		wallet          *models.Wallet
		ordersThisMonth int
		upcoming        []models.Reservation
	)

	err := s.fanOut(ctx,
		func(ctx context.Context) (err error) {
			customer, err = s.repos.Customer.GetByID(ctx, customerID)
			return err
		},
		func(ctx context.Context) (err error) {
			wallet, err = s.repos.Wallet.GetByCustomer(ctx, customerID)
			return err
		},
		func(ctx context.Context) (err error) {
			ordersThisMonth, err = s.repos.Order.CountSince(ctx, customerID, startOfMonth)
			return err
		},
		func(ctx context.Context) (err error) {
			upcoming, err = s.repos.Reservation.ListUpcomingByCustomer(ctx, customerID, now, 1)
			return err
		},
	)
	if err != nil {
		return nil, 0, err
	}

	summary := &CustomerSummary{
		ID:              customer.ID,
		FirstName:       customer.FirstName,
		LastName:        customer.LastName,
		Email:           customer.Email,
		LoyaltyTier:     customer.LoyaltyTier,
		PointsBalance:   customer.PointsBalance,
		TierExpiresAt:   customer.TierExpiresAt,
		OrdersThisMonth: ordersThisMonth,
	}
	if len(upcoming) > 0 {
		summary.NextReservationAt = &upcoming[0].ReservationTime
	}

	var walletBalance int64
	if wallet != nil {
		walletBalance = wallet.BalanceCents
	}

	return summary, walletBalance, nil
}

// Deals lists the active deals flagged with a customer's redemption state.
func (s *PortalService) Deals(ctx context.Context, customerID uuid.UUID) ([]models.DealView, error) {
	now := time.Now()

	var (
		deals       []models.LoyaltyDeal
		redeemedIDs []uuid.UUID
	)

	err := s.fanOut(ctx,
		func(ctx context.Context) (err error) {
			deals, err = s.repos.Loyalty.ListActiveDeals(ctx, now)
			return err
		},
		func(ctx context.Context) (err error) {
			redeemedIDs, err = s.repos.Loyalty.ListRedeemedDealIDs(ctx, customerID)
			return err
		},
	)
	if err != nil {
		return nil, err
	}

	return flagRedemptions(deals, redeemedIDs), nil
}

// CustomerActivity lists a customer's recent reservations, orders, and
// points for the manager view.
func (s *PortalService) CustomerActivity(ctx context.Context, customerID uuid.UUID) (*Activity, error) {
	now := time.Now()

	var (
		reservations []models.Reservation
		orders       []models.Order
		transactions []models.LoyaltyTransaction
	)

	err := s.fanOut(ctx,
		func(ctx context.Context) (err error) {
			reservations, err = s.repos.Reservation.ListUpcomingByCustomer(ctx, customerID, now, 5)
			return err
		},
		func(ctx context.Context) (err error) {
			orders, err = s.repos.Order.ListByCustomer(ctx, customerID, 5)
			return err
		},
		func(ctx context.Context) (err error) {
			transactions, err = s.repos.Loyalty.ListTransactions(ctx, customerID, 10)
			return err
		},
	)
	if err != nil {
		return nil, err
	}

	return &Activity{
		Reservations: reservationViews(reservations),
		Orders:       orderViews(orders),
		Loyalty:      loyaltyViews(transactions),
	}, nil
}

// fanOut runs the lookups concurrently and returns the first error.
func (s *PortalService) fanOut(ctx context.Context, lookups ...func(context.Context) error) error {
	var wg sync.WaitGroup
	errs := make([]error, len(lookups))

	for i, lookup := range lookups {
		wg.Add(1)
		go func(i int, lookup func(context.Context) error) {
			defer wg.Done()
			errs[i] = lookup(ctx)
		}(i, lookup)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func flagRedemptions(deals []models.LoyaltyDeal, redeemedIDs []uuid.UUID) []models.DealView {
	redeemed := make(map[uuid.UUID]bool, len(redeemedIDs))
	for _, id := range redeemedIDs {
		redeemed[id] = true
	}

	views := make([]models.DealView, 0, len(deals))
	for _, deal := range deals {
		views = append(views, models.DealView{
			ID:             deal.ID,
			Title:          deal.Title,
			Description:    deal.Description,
			PointsRequired: deal.PointsRequired,
			StartsAt:       deal.StartsAt,
			EndsAt:         deal.EndsAt,
			IsRedeemed:     redeemed[deal.ID],
		})
	}
	return views
}

func paymentViews(methods []models.PaymentMethod) []PaymentMethodView {
	views := make([]PaymentMethodView, 0, len(methods))
	for _, method := range methods {
		views = append(views, PaymentMethodView{
			ID:           method.ID,
			Brand:        method.Brand,
			Last4:        method.Last4,
			ExpiresMonth: method.ExpiresMonth,
			ExpiresYear:  method.ExpiresYear,
			IsDefault:    method.IsDefault,
		})
	}
	return views
}

func reservationViews(reservations []models.Reservation) []ReservationView {
	views := make([]ReservationView, 0, len(reservations))
	for _, reservation := range reservations {
		views = append(views, ReservationView{
			ID:              reservation.ID,
			ReservationTime: reservation.ReservationTime,
			PartySize:       reservation.PartySize,
			Status:          reservation.Status,
			Notes:           reservation.Notes,
		})
	}
	return views
}

func orderViews(orders []models.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		view := OrderView{
			ID:         order.ID,
			CreatedAt:  order.CreatedAt,
			Status:     order.Status,
			Channel:    order.Channel,
			TotalCents: order.TotalCents,
			Items:      make([]OrderItemView, 0, len(order.Items)),
		}
		for _, item := range order.Items {
			view.Items = append(view.Items, OrderItemView{
				Name:           item.Name,
				Quantity:       item.Quantity,
				UnitPriceCents: item.UnitPriceCents,
			})
		}
		views = append(views, view)
	}
	return views
}

func menuViews(items []models.MenuItem) []MenuItemView {
	views := make([]MenuItemView, 0, len(items))
	for _, item := range items {
		views = append(views, MenuItemView{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Category:    item.Category,
			PriceCents:  item.PriceCents,
			ImageURL:    item.ImageURL,
		})
	}
	return views
}

func loyaltyViews(transactions []models.LoyaltyTransaction) []LoyaltyActivityView {
	views := make([]LoyaltyActivityView, 0, len(transactions))
	for _, transaction := range transactions {
		views = append(views, LoyaltyActivityView{
			ID:           transaction.ID,
			PointsChange: transaction.PointsChange,
			Description:  transaction.Description,
			CreatedAt:    transaction.CreatedAt,
		})
	}
	return views
}
