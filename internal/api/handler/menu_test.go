package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMenuListIncludeAllRequiresManager(t *testing.T) {
	repos, _ := newTestRepos(t)
	h := NewMenuHandler(repos.Menu)

	req := httptest.NewRequest(http.MethodGet, "/menu?include=all", nil)
	recorder := httptest.NewRecorder()

	h.HandleMenu(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.JSONEq(t, `{"error":"Authentication required"}`, recorder.Body.String())
}

func TestMenuListPublic(t *testing.T) {
	repos, mock := newTestRepos(t)
	h := NewMenuHandler(repos.Menu)

	rows := sqlmock.NewRows([]string{
		"id", "name", "description", "category", "price_cents", "image_url",
		"is_active", "sort_order", "created_at", "updated_at",
	}).AddRow(uuid.New(), "Margherita", nil, "Pizza", int64(1299), nil, true, 1, nowStamp(), nowStamp())
	mock.ExpectQuery("SELECT (.+) FROM menu_items").WillReturnRows(rows)

	req := httptest.NewRequest(http.MethodGet, "/menu", nil)
	recorder := httptest.NewRecorder()

	h.HandleMenu(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"Margherita"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuCreateRequiresNameAndPrice(t *testing.T) {
	repos, _ := newTestRepos(t)
	h := NewMenuHandler(repos.Menu)

	req := asManager(httptest.NewRequest(http.MethodPost, "/menu", strings.NewReader(`{"name":"Margherita"}`)))
	recorder := httptest.NewRecorder()

	h.HandleMenu(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.JSONEq(t, `{"error":"Name and numeric priceCents are required"}`, recorder.Body.String())
}

func TestMenuCreateTruthyVariants(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantActive bool
	}{
		{name: "absent defaults true", body: `{"name":"Margherita","priceCents":1299}`, wantActive: true},
		{name: "string yes", body: `{"name":"Margherita","priceCents":1299,"isActive":"yes"}`, wantActive: true},
		{name: "string off", body: `{"name":"Margherita","priceCents":1299,"isActive":"off"}`, wantActive: false},
		{name: "boolean false", body: `{"name":"Margherita","priceCents":1299,"isActive":false}`, wantActive: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos, mock := newTestRepos(t)
			h := NewMenuHandler(repos.Menu)

			rows := sqlmock.NewRows([]string{
				"id", "name", "description", "category", "price_cents", "image_url",
				"is_active", "sort_order", "created_at", "updated_at",
			}).AddRow(uuid.New(), "Margherita", nil, nil, int64(1299), nil, tt.wantActive, nil, nowStamp(), nowStamp())
			mock.ExpectQuery("INSERT INTO menu_items").
				WithArgs("Margherita", nil, nil, int64(1299), nil, tt.wantActive, nil).
				WillReturnRows(rows)

			req := asManager(httptest.NewRequest(http.MethodPost, "/menu", strings.NewReader(tt.body)))
			recorder := httptest.NewRecorder()

			h.HandleMenu(recorder, req)

			assert.Equal(t, http.StatusCreated, recorder.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMenuUpdateEmptySet(t *testing.T) {
	repos, _ := newTestRepos(t)
	h := NewMenuHandler(repos.Menu)

	req := asManager(httptest.NewRequest(http.MethodPatch, "/menu/"+uuid.NewString(),
		strings.NewReader(`{"unknownField":"ignored"}`)))
	recorder := httptest.NewRecorder()

	h.HandleMenu(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.JSONEq(t, `{"error":"No valid updates provided"}`, recorder.Body.String())
}

func TestMenuUpdateInvalidID(t *testing.T) {
	repos, _ := newTestRepos(t)
	h := NewMenuHandler(repos.Menu)

	req := asManager(httptest.NewRequest(http.MethodPatch, "/menu/not-a-uuid",
		strings.NewReader(`{"name":"Renamed"}`)))
	recorder := httptest.NewRecorder()

	h.HandleMenu(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.JSONEq(t, `{"error":"Invalid menu item id"}`, recorder.Body.String())
}

func TestMenuDeleteMissing(t *testing.T) {
	repos, mock := newTestRepos(t)
	h := NewMenuHandler(repos.Menu)

	id := uuid.New()
	mock.ExpectExec("DELETE FROM menu_items").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	req := asManager(httptest.NewRequest(http.MethodDelete, "/menu/"+id.String(), nil))
	recorder := httptest.NewRecorder()

	h.HandleMenu(recorder, req)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.JSONEq(t, `{"error":"Menu item not found"}`, recorder.Body.String())
}
