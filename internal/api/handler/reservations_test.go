package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestReservationUpdateEmptySet(t *testing.T) {
	repos, _ := newTestRepos(t)
	h := NewReservationHandler(repos.Reservation)

	req := asManager(httptest.NewRequest(http.MethodPatch, "/reservations/"+uuid.NewString(),
		strings.NewReader(`{}`)))
	recorder := httptest.NewRecorder()

	h.HandleReservations(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.JSONEq(t, `{"error":"No updates provided"}`, recorder.Body.String())
}

func TestReservationUpdateInvalidStatus(t *testing.T) {
	repos, _ := newTestRepos(t)
	h := NewReservationHandler(repos.Reservation)

	req := asManager(httptest.NewRequest(http.MethodPatch, "/reservations/"+uuid.NewString(),
		strings.NewReader(`{"status":"overbooked"}`)))
	recorder := httptest.NewRecorder()

	h.HandleReservations(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.JSONEq(t, `{"error":"Invalid reservation status"}`, recorder.Body.String())
}

func TestReservationUpdateInvalidID(t *testing.T) {
	repos, _ := newTestRepos(t)
	h := NewReservationHandler(repos.Reservation)

	req := asManager(httptest.NewRequest(http.MethodPatch, "/reservations/not-a-uuid",
		strings.NewReader(`{"status":"confirmed"}`)))
	recorder := httptest.NewRecorder()

	h.HandleReservations(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.JSONEq(t, `{"error":"Invalid reservation id"}`, recorder.Body.String())
}
