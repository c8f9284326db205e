package repository

import (
	"github.com/jmoiron/sqlx"
)

// Repositories provides access to all repository instances
type Repositories struct {
	User          *UserRepository
	Customer      *CustomerRepository
	Menu          *MenuRepository
	Order         *OrderRepository
	Reservation   *ReservationRepository
	Loyalty       *LoyaltyRepository
	Wallet        *WalletRepository
	PaymentMethod *PaymentMethodRepository
	Setting       *SettingRepository
}

// NewRepositories creates a new repositories container
func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:          NewUserRepository(db),
		Customer:      NewCustomerRepository(db),
		Menu:          NewMenuRepository(db),
		Order:         NewOrderRepository(db),
		Reservation:   NewReservationRepository(db),
		Loyalty:       NewLoyaltyRepository(db),
		Wallet:        NewWalletRepository(db),
		PaymentMethod: NewPaymentMethodRepository(db),
		Setting:       NewSettingRepository(db),
	}
}
