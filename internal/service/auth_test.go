package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/delicato-app/restaurant-service/internal/config"
	"github.com/delicato-app/restaurant-service/internal/models"
)

var testAuthConfig = config.Auth{
	Secret:     "unit-test-secret",
	SessionTTL: 86400,
	PersistTTL: 2592000,
}

func userRow(id uuid.UUID, email, passwordHash string, role models.UserRole, customerID *uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "password_hash", "name", "role", "customer_id", "created_at", "updated_at",
	}).AddRow(id, email, passwordHash, "Test User", role, customerID, now(), now())
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestSignInUnknownEmail(t *testing.T) {
	repos, mock := newTestRepos(t)
	auth := NewAuthService(repos, testAuthConfig)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := auth.SignIn(context.Background(), "Ghost@Example.com ", "whatever-password", false)

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignInWrongPassword(t *testing.T) {
	repos, mock := newTestRepos(t)
	auth := NewAuthService(repos, testAuthConfig)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("manager@example.com").
		WillReturnRows(userRow(uuid.New(), "manager@example.com", hashPassword(t, "correct-password"), models.RoleManager, nil))

	_, err := auth.SignIn(context.Background(), "manager@example.com", "wrong-password", false)

	// Unknown email and wrong password must be indistinguishable.
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignInUnlinkedCustomer(t *testing.T) {
	repos, mock := newTestRepos(t)
	auth := NewAuthService(repos, testAuthConfig)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("orphan@example.com").
		WillReturnRows(userRow(uuid.New(), "orphan@example.com", hashPassword(t, "valid-password"), models.RoleCustomer, nil))

	_, err := auth.SignIn(context.Background(), "orphan@example.com", "valid-password", false)

	assert.ErrorIs(t, err, ErrCustomerNotLinked)
}

func TestSignInIssuesParsableToken(t *testing.T) {
	repos, mock := newTestRepos(t)
	auth := NewAuthService(repos, testAuthConfig)

	userID := uuid.New()
	customerID := uuid.New()
	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("ada@example.com").
		WillReturnRows(userRow(userID, "ada@example.com", hashPassword(t, "valid-password"), models.RoleCustomer, &customerID))

	result, err := auth.SignIn(context.Background(), "ada@example.com", "valid-password", false)
	require.NoError(t, err)
	assert.Equal(t, testAuthConfig.SessionTTL, result.ExpiresIn)

	claims, err := auth.ParseToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, models.RoleCustomer, claims.Role)
	assert.Equal(t, customerID.String(), claims.CustomerID)

	expectedExpiry := time.Now().Add(time.Duration(testAuthConfig.SessionTTL) * time.Second)
	assert.WithinDuration(t, expectedExpiry, claims.ExpiresAt.Time, 5*time.Second)
}

func TestSignInRememberExtendsExpiry(t *testing.T) {
	repos, mock := newTestRepos(t)
	auth := NewAuthService(repos, testAuthConfig)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("manager@example.com").
		WillReturnRows(userRow(uuid.New(), "manager@example.com", hashPassword(t, "valid-password"), models.RoleManager, nil))

	result, err := auth.SignIn(context.Background(), "manager@example.com", "valid-password", true)
	require.NoError(t, err)
	assert.Equal(t, testAuthConfig.PersistTTL, result.ExpiresIn)

	claims, err := auth.ParseToken(result.Token)
	require.NoError(t, err)

	expectedExpiry := time.Now().Add(time.Duration(testAuthConfig.PersistTTL) * time.Second)
	assert.WithinDuration(t, expectedExpiry, claims.ExpiresAt.Time, 5*time.Second)
}

func TestParseTokenRejectsBadSignature(t *testing.T) {
	repos, _ := newTestRepos(t)
	auth := NewAuthService(repos, testAuthConfig)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &SessionClaims{
		UserID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Audience:  jwt.ClaimStrings{TokenAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	_, err = auth.ParseToken(signed)
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongIssuer(t *testing.T) {
	repos, _ := newTestRepos(t)
	auth := NewAuthService(repos, testAuthConfig)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &SessionClaims{
		UserID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Audience:  jwt.ClaimStrings{TokenAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testAuthConfig.Secret))
	require.NoError(t, err)

	_, err = auth.ParseToken(signed)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	repos, _ := newTestRepos(t)
	auth := NewAuthService(repos, testAuthConfig)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &SessionClaims{
		UserID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Audience:  jwt.ClaimStrings{TokenAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err := token.SignedString([]byte(testAuthConfig.Secret))
	require.NoError(t, err)

	_, err = auth.ParseToken(signed)
	assert.Error(t, err)
}

func TestSignUpShortPassword(t *testing.T) {
	repos, _ := newTestRepos(t)
	auth := NewAuthService(repos, testAuthConfig)

	_, err := auth.SignUp(context.Background(), models.SignUpRequest{
		FirstName: "Ada",
		LastName:  "Moore",
		Email:     "ada@example.com",
		Password:  "short  ",
	})

	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	repos, mock := newTestRepos(t)
	auth := NewAuthService(repos, testAuthConfig)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("ada@example.com").
		WillReturnRows(userRow(uuid.New(), "ada@example.com", "hash", models.RoleCustomer, nil))

	_, err := auth.SignUp(context.Background(), models.SignUpRequest{
		FirstName: "Ada",
		LastName:  "Moore",
		Email:     "Ada@Example.com",
		Password:  "long-enough-password",
	})

	// No customer record may be created when the email is already taken.
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignUpRemovesOrphanOnUserInsertFailure(t *testing.T) {
	repos, mock := newTestRepos(t)
	auth := NewAuthService(repos, testAuthConfig)

	customerID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("ada@example.com").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT (.+) FROM customers").
		WithArgs("ada@example.com").
		WillReturnError(sql.ErrNoRows)

	customerRows := sqlmock.NewRows([]string{
		"id", "first_name", "last_name", "email", "phone",
		"loyalty_tier", "points_balance", "tier_expires_at", "created_at", "updated_at",
	}).AddRow(customerID, "Ada", "Moore", "ada@example.com", nil, "Bronze", 0, nil, now(), now())
	mock.ExpectQuery("INSERT INTO customers").WillReturnRows(customerRows)

	mock.ExpectQuery("INSERT INTO users").WillReturnError(sql.ErrConnDone)

	mock.ExpectExec("DELETE FROM customers").
		WithArgs(customerID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := auth.SignUp(context.Background(), models.SignUpRequest{
		FirstName: "Ada",
		LastName:  "Moore",
		Email:     "ada@example.com",
		Password:  "long-enough-password",
	})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
