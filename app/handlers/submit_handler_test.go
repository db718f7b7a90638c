package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Rakhulsr/general-equipments/app/db/testdb"
	"github.com/Rakhulsr/general-equipments/app/helpers"
	"github.com/Rakhulsr/general-equipments/app/models"
	"github.com/Rakhulsr/general-equipments/app/repositories"
	"github.com/Rakhulsr/general-equipments/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type brokenLeads struct {
	repositories.LeadRepositoryImpl
}

func (brokenLeads) Create(context.Context, *models.Lead) error {
	return errors.New("connection refused")
}

type submitBody struct {
	Success bool              `json:"success"`
	Data    map[string]any    `json:"data"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
}

func newSubmitHandler(t *testing.T) (*SubmitHandler, repositories.LeadRepositoryImpl) {
	t.Helper()
	db := testdb.New(t)
	leads := repositories.NewLeadRepository(db)
	intake := services.NewIntakeService(leads, repositories.NewBookingRepository(db), nil, helpers.NewValidator(), zap.NewNop())
	return NewSubmitHandler(render.New(), intake, zap.NewNop()), leads
}

func postJSON(h http.HandlerFunc, body string) (*httptest.ResponseRecorder, submitBody) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/submit-lead", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h(rec, req)

	var out submitBody
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec, out
}

func TestSubmitLead(t *testing.T) {
	h, leads := newSubmitHandler(t)

	rec, body := postJSON(h.SubmitLead, `{"name":"Ana","email":"ana@example.com","phone":"","source_page":"/"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
	assert.Equal(t, "Ana", body.Data["name"])
	assert.Equal(t, "new", body.Data["status"])
	assert.Equal(t, "general", body.Data["inquiry_type"])
	assert.Nil(t, body.Data["phone"])

	count, err := leads.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestSubmitLead_BadRequests(t *testing.T) {
	h, leads := newSubmitHandler(t)

	rec, body := postJSON(h.SubmitLead, `{"name":"","email":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, body.Success)
	assert.Contains(t, body.Errors, "name")
	assert.Contains(t, body.Errors, "email")
	assert.NotEmpty(t, body.Error)

	rec, body = postJSON(h.SubmitLead, `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, body.Success)

	rec, body = postJSON(h.SubmitLead, `{"name":"Ana","email":"ana@example.com","phone":"`+strings.Repeat("5", 51)+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body.Errors, "phone")

	count, err := leads.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSubmitLead_StorageFailure(t *testing.T) {
	intake := services.NewIntakeService(brokenLeads{}, nil, nil, helpers.NewValidator(), zap.NewNop())
	h := NewSubmitHandler(render.New(), intake, zap.NewNop())

	rec, body := postJSON(h.SubmitLead, `{"name":"Ana","email":"ana@example.com"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, body.Success)
	assert.Contains(t, body.Error, "connection refused")
}

func TestSubmitBooking(t *testing.T) {
	h, _ := newSubmitHandler(t)

	rec, body := postJSON(h.SubmitBooking, `{"name":"Bo","email":"bo@example.com","preferred_time":"2:00 PM - 3:00 PM"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
	assert.Equal(t, "pending", body.Data["status"])
	assert.Equal(t, "2:00 PM - 3:00 PM", body.Data["preferred_time"])
}
