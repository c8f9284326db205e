package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delicato-app/restaurant-service/internal/models"
)

func strPtr(s string) *string {
	return &s
}

func TestUpdateUserRejectsEmptyName(t *testing.T) {
	repos, _ := newTestRepos(t)
	users := NewUserService(repos)

	_, err := users.Update(context.Background(), uuid.New(), models.UserUpdateRequest{Name: strPtr("   ")})

	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestUpdateUserRejectsUnknownRole(t *testing.T) {
	repos, _ := newTestRepos(t)
	users := NewUserService(repos)

	_, err := users.Update(context.Background(), uuid.New(), models.UserUpdateRequest{Role: strPtr("wizard")})

	assert.ErrorIs(t, err, ErrUnsupportedRole)
}

func TestUpdateUserRejectsEmptyRequest(t *testing.T) {
	repos, _ := newTestRepos(t)
	users := NewUserService(repos)

	_, err := users.Update(context.Background(), uuid.New(), models.UserUpdateRequest{})

	assert.ErrorIs(t, err, ErrNoUpdates)
}

func TestUpdateUserMapsEmployeeToStaff(t *testing.T) {
	repos, mock := newTestRepos(t)
	users := NewUserService(repos)

	id := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(id).
		WillReturnRows(userRow(id, "cook@example.com", "hash", models.RoleStaff, nil))

	updatedRows := sqlmock.NewRows([]string{
		"id", "email", "password_hash", "name", "role", "customer_id", "created_at", "updated_at",
	}).AddRow(id, "cook@example.com", "hash", "Test User", models.RoleStaff, nil, now(), now())
	mock.ExpectQuery("UPDATE users").WillReturnRows(updatedRows)

	updated, err := users.Update(context.Background(), id, models.UserUpdateRequest{Role: strPtr("Employee")})

	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, updated.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDemoteLastManagerRejected(t *testing.T) {
	repos, mock := newTestRepos(t)
	users := NewUserService(repos)

	id := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(id).
		WillReturnRows(userRow(id, "boss@example.com", "hash", models.RoleManager, nil))
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, err := users.Update(context.Background(), id, models.UserUpdateRequest{Role: strPtr("staff")})

	assert.ErrorIs(t, err, ErrLastManager)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDemoteManagerWithPeersAllowed(t *testing.T) {
	repos, mock := newTestRepos(t)
	users := NewUserService(repos)

	id := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(id).
		WillReturnRows(userRow(id, "boss@example.com", "hash", models.RoleManager, nil))
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	updatedRows := sqlmock.NewRows([]string{
		"id", "email", "password_hash", "name", "role", "customer_id", "created_at", "updated_at",
	}).AddRow(id, "boss@example.com", "hash", "Test User", models.RoleStaff, nil, now(), now())
	mock.ExpectQuery("UPDATE users").WillReturnRows(updatedRows)

	updated, err := users.Update(context.Background(), id, models.UserUpdateRequest{Role: strPtr("staff")})

	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, updated.Role)
}

func TestDeleteOwnAccountRejected(t *testing.T) {
	repos, _ := newTestRepos(t)
	users := NewUserService(repos)

	id := uuid.New()

	err := users.Delete(context.Background(), id.String(), id)

	assert.ErrorIs(t, err, ErrSelfDelete)
}

func TestDeleteLastManagerRejected(t *testing.T) {
	repos, mock := newTestRepos(t)
	users := NewUserService(repos)

	id := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(id).
		WillReturnRows(userRow(id, "boss@example.com", "hash", models.RoleManager, nil))
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	err := users.Delete(context.Background(), uuid.NewString(), id)

	assert.ErrorIs(t, err, ErrLastManager)
}

func TestDeleteStaffAccount(t *testing.T) {
	repos, mock := newTestRepos(t)
	users := NewUserService(repos)

	id := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(id).
		WillReturnRows(userRow(id, "cook@example.com", "hash", models.RoleStaff, nil))
	mock.ExpectExec("DELETE FROM users").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := users.Delete(context.Background(), uuid.NewString(), id)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
