package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/delicato-app/restaurant-service/internal/service"
)

func TestLoyaltySettingsGetDefault(t *testing.T) {
	repos, mock := newTestRepos(t)
	h := NewSettingsHandler(service.NewLoyaltyService(repos, 1))

	mock.ExpectQuery("SELECT (.+) FROM settings").
		WithArgs("loyalty.pointsPerDollar").
		WillReturnError(sql.ErrNoRows)

	req := asManager(httptest.NewRequest(http.MethodGet, "/settings/loyalty", nil))
	recorder := httptest.NewRecorder()

	h.HandleSettings(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"pointsPerDollar":1}`, recorder.Body.String())
}

func TestLoyaltySettingsPutValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing value", body: `{}`},
		{name: "negative", body: `{"pointsPerDollar":-1}`},
		{name: "too large", body: `{"pointsPerDollar":1001}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos, _ := newTestRepos(t)
			h := NewSettingsHandler(service.NewLoyaltyService(repos, 1))

			req := asManager(httptest.NewRequest(http.MethodPut, "/settings/loyalty", strings.NewReader(tt.body)))
			recorder := httptest.NewRecorder()

			h.HandleSettings(recorder, req)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.JSONEq(t, `{"error":"Points per dollar must be between 0 and 1000."}`, recorder.Body.String())
		})
	}
}

func TestLoyaltySettingsPut(t *testing.T) {
	repos, mock := newTestRepos(t)
	h := NewSettingsHandler(service.NewLoyaltyService(repos, 1))

	rows := sqlmock.NewRows([]string{"id", "key", "value", "updated_by", "created_at", "updated_at"}).
		AddRow(uuid.New(), "loyalty.pointsPerDollar", "2.5", nil, nowStamp(), nowStamp())
	mock.ExpectQuery("INSERT INTO settings").WillReturnRows(rows)

	req := asManager(httptest.NewRequest(http.MethodPut, "/settings/loyalty",
		strings.NewReader(`{"pointsPerDollar":2.5}`)))
	recorder := httptest.NewRecorder()

	h.HandleSettings(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"pointsPerDollar":2.5`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
