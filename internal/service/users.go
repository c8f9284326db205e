package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/delicato-app/restaurant-service/internal/db/repository"
	"github.com/delicato-app/restaurant-service/internal/models"
)

// Team management errors surfaced to handlers.
var (
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrUnsupportedRole = errors.New("unsupported role")
	ErrNoUpdates       = errors.New("no valid fields to update")
	ErrSelfDelete      = errors.New("you cannot remove your own account")
	ErrLastManager     = errors.New("at least one manager must remain")
)

// UserService handles team account management with the manager guardrails.
type UserService struct {
	users *repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(repos *repository.Repositories) *UserService {
	return &UserService{users: repos.User}
}

// List retrieves all accounts.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// Update applies name and role edits. Role labels are normalized
// (synonyms mapped, lowercased); demoting the last remaining manager is
// rejected.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req models.UserUpdateRequest) (*models.User, error) {
	var name *string
	var role *models.UserRole

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			return nil, ErrEmptyName
		}
		name = &trimmed
	}

	if req.Role != nil {
		normalized := models.NormalizeUserRole(*req.Role)
		if !models.ValidUserRole(normalized) {
			return nil, ErrUnsupportedRole
		}
		role = &normalized
	}

	if name == nil && role == nil {
		return nil, ErrNoUpdates
	}

	current, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if role != nil && current.Role == models.RoleManager && *role != models.RoleManager {
		remaining, err := s.users.CountManagersExcluding(ctx, id)
		if err != nil {
			return nil, err
		}
		if remaining == 0 {
			return nil, ErrLastManager
		}
	}

	return s.users.Update(ctx, id, name, role)
}

// Delete removes an account. A manager cannot delete their own account, and
// the deletion may not remove the last remaining manager.
func (s *UserService) Delete(ctx context.Context, callerID string, id uuid.UUID) error {
	if callerID == id.String() {
		return ErrSelfDelete
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if user.Role == models.RoleManager {
		remaining, err := s.users.CountManagersExcluding(ctx, id)
		if err != nil {
			return err
		}
		if remaining == 0 {
			return ErrLastManager
		}
	}

	return s.users.Delete(ctx, id)
}
