package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Rakhulsr/general-equipments/app/services"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

const maxSubmissionBytes = 64 << 10

type SubmitHandler struct {
	render *render.Render
	intake *services.IntakeService
	log    *zap.Logger
}

func NewSubmitHandler(r *render.Render, intake *services.IntakeService, log *zap.Logger) *SubmitHandler {
	return &SubmitHandler{render: r, intake: intake, log: log}
}

type submitResponse struct {
	Success bool              `json:"success"`
	Data    interface{}       `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func (h *SubmitHandler) SubmitLead(w http.ResponseWriter, r *http.Request) {
	var in services.LeadSubmission
	if !h.decode(w, r, &in) {
		return
	}
	lead, err := h.intake.SubmitLead(r.Context(), in)
	h.respond(w, lead, err)
}

func (h *SubmitHandler) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	var in services.BookingSubmission
	if !h.decode(w, r, &in) {
		return
	}
	booking, err := h.intake.SubmitBooking(r.Context(), in)
	h.respond(w, booking, err)
}

func (h *SubmitHandler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSubmissionBytes)).Decode(v); err != nil {
		h.log.Debug("rejecting malformed submission", zap.Error(err))
		_ = h.render.JSON(w, http.StatusBadRequest, submitResponse{
			Success: false,
			Error:   "Request body must be a JSON object",
		})
		return false
	}
	return true
}

func (h *SubmitHandler) respond(w http.ResponseWriter, row interface{}, err error) {
	if err == nil {
		_ = h.render.JSON(w, http.StatusOK, submitResponse{Success: true, Data: row})
		return
	}

	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		_ = h.render.JSON(w, http.StatusBadRequest, submitResponse{
			Success: false,
			Error:   validationErr.Error(),
			Errors:  validationErr.Fields,
		})
		return
	}

	h.log.Error("submission failed", zap.Error(err))
	_ = h.render.JSON(w, http.StatusInternalServerError, submitResponse{
		Success: false,
		Error:   err.Error(),
	})
}
