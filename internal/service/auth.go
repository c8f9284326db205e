package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/delicato-app/restaurant-service/internal/config"
	"github.com/delicato-app/restaurant-service/internal/db/repository"
	"github.com/delicato-app/restaurant-service/internal/models"
)

const (
	// SessionCookie is the name of the cookie carrying the signed session
	// token.
	SessionCookie = "delicato_session"

	TokenIssuer   = "delicato-app"
	TokenAudience = "delicato-app"
)

// Authentication errors surfaced to handlers.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRoleNotAllowed     = errors.New("role not allowed")
	ErrCustomerNotLinked  = errors.New("customer account not configured")
	ErrEmailTaken         = errors.New("email already in use")
	ErrPasswordTooShort   = errors.New("password too short")
)

// SessionClaims represents the signed session token payload.
type SessionClaims struct {
	UserID      string          `json:"id"`
	Email       string          `json:"email"`
	Role        models.UserRole `json:"role"`
	DisplayName string          `json:"name"`
	CustomerID  string          `json:"customerId,omitempty"`
	jwt.RegisteredClaims
}

// AuthService handles sign-in, sign-up, and session tokens
type AuthService struct {
	users     *repository.UserRepository
	customers *repository.CustomerRepository
	cfg       config.Auth
}

// NewAuthService creates a new authentication service
func NewAuthService(repos *repository.Repositories, cfg config.Auth) *AuthService {
	return &AuthService{
		users:     repos.User,
		customers: repos.Customer,
		cfg:       cfg,
	}
}

// SignInResult carries the issued session and its lifetime in seconds.
type SignInResult struct {
	Token     string
	Claims    *SessionClaims
	ExpiresIn int
}

// SignIn authenticates by email and password. Unknown email and wrong
// password fail identically so callers cannot probe for accounts.
func (s *AuthService) SignIn(ctx context.Context, email, password string, remember bool) (*SignInResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}

	if !models.ValidUserRole(user.Role) {
		return nil, ErrRoleNotAllowed
	}

	if user.Role == models.RoleCustomer && user.CustomerID == nil {
		return nil, ErrCustomerNotLinked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueSession(user, remember)
}

// SignUpResult carries the new session plus the created customer record.
type SignUpResult struct {
	Token     string
	Claims    *SessionClaims
	Customer  *models.Customer
	ExpiresIn int
}

// SignUp creates a Customer and a linked customer-role User as one logical
// operation. If the user insert fails after the customer was created, the
// orphaned customer record is removed best-effort.
func (s *AuthService) SignUp(ctx context.Context, req models.SignUpRequest) (*SignUpResult, error) {
	if len(strings.TrimSpace(req.Password)) < 8 {
		return nil, ErrPasswordTooShort
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if _, err := s.customers.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(req.Password)), 12)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)

	customer := models.Customer{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		customer.Phone = &phone
	}

	createdCustomer, err := s.customers.Create(ctx, customer)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(firstName + " " + lastName),
		Role:         models.RoleCustomer,
		CustomerID:   &createdCustomer.ID,
	}

	createdUser, err := s.users.Create(ctx, user)
	if err != nil {
		if cleanupErr := s.customers.Delete(ctx, createdCustomer.ID); cleanupErr != nil {
			logrus.WithError(cleanupErr).Warn("Failed to remove orphaned customer after sign-up failure")
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	session, err := s.issueSession(createdUser, req.Remember)
	if err != nil {
		return nil, err
	}

	return &SignUpResult{
		Token:     session.Token,
		Claims:    session.Claims,
		Customer:  createdCustomer,
		ExpiresIn: session.ExpiresIn,
	}, nil
}

func (s *AuthService) issueSession(user *models.User, remember bool) (*SignInResult, error) {
	expiresIn := s.cfg.SessionTTL
	if remember {
		expiresIn = s.cfg.PersistTTL
	}

	name := user.Name
	if name == "" {
		name = user.Email
	}

	now := time.Now()
	claims := &SessionClaims{
		UserID:      user.ID.String(),
		Email:       user.Email,
		Role:        user.Role,
		DisplayName: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Audience:  jwt.ClaimStrings{TokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expiresIn) * time.Second)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	if user.CustomerID != nil {
		claims.CustomerID = user.CustomerID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &SignInResult{Token: signed, Claims: claims, ExpiresIn: expiresIn}, nil
}

// ParseToken validates a session token's signature, issuer, audience, and
// expiry, returning its claims.
func (s *AuthService) ParseToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.Issuer != TokenIssuer {
		return nil, errors.New("invalid token issuer")
	}
	if !claims.VerifyAudience(TokenAudience, true) {
		return nil, errors.New("invalid token audience")
	}

	return claims, nil
}
