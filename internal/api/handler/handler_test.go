package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/delicato-app/restaurant-service/internal/config"
	"github.com/delicato-app/restaurant-service/internal/db/repository"
	"github.com/delicato-app/restaurant-service/internal/middleware"
	"github.com/delicato-app/restaurant-service/internal/models"
	"github.com/delicato-app/restaurant-service/internal/service"
)

var testAuthConfig = config.Auth{
	Secret:     "unit-test-secret",
	SessionTTL: 86400,
	PersistTTL: 2592000,
}

func newTestRepos(t *testing.T) (*repository.Repositories, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return repository.NewRepositories(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func nowStamp() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// asManager attaches a manager session to the request.
func asManager(r *http.Request) *http.Request {
	return r.WithContext(middleware.WithSession(r.Context(), &service.SessionClaims{
		UserID: "5f3c7f4b-20f5-4a5e-93f8-6f4c0d70e9aa",
		Role:   models.RoleManager,
	}))
}
