package handlers

import (
	"net/http"

	"github.com/Rakhulsr/general-equipments/app/helpers"
	"github.com/Rakhulsr/general-equipments/app/services"
	"github.com/Rakhulsr/general-equipments/app/utils/breadcrumb"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type FormsHandler struct {
	render    *render.Render
	intake    *services.IntakeService
	validator *validator.Validate
	log       *zap.Logger
}

func NewFormsHandler(r *render.Render, intake *services.IntakeService, v *validator.Validate, log *zap.Logger) *FormsHandler {
	return &FormsHandler{render: r, intake: intake, validator: v, log: log}
}

type ContactForm struct {
	Name        string `form:"name" validate:"required,notblank"`
	Email       string `form:"email" validate:"required,leademail"`
	Phone       string `form:"phone"`
	Company     string `form:"company"`
	InquiryType string `form:"inquiry_type"`
	Message     string `form:"message" validate:"required,notblank"`
}

type BookingForm struct {
	Name          string `form:"name" validate:"required,notblank"`
	Email         string `form:"email" validate:"required,leademail"`
	Phone         string `form:"phone"`
	Company       string `form:"company"`
	PreferredDate string `form:"preferred_date"`
	PreferredTime string `form:"preferred_time"`
	Topic         string `form:"topic"`
	Message       string `form:"message"`
}

type formState struct {
	Errors    map[string]string
	FormError string
	Submitted bool
}

func (h *FormsHandler) ContactPage(w http.ResponseWriter, r *http.Request) {
	h.renderContact(w, r, ContactForm{}, formState{Errors: map[string]string{}})
}

func (h *FormsHandler) ContactPost(w http.ResponseWriter, r *http.Request) {
	state := formState{Errors: map[string]string{}}
	if err := r.ParseForm(); err != nil {
		state.FormError = "We could not read your message. Please try again."
		h.renderContact(w, r, ContactForm{}, state)
		return
	}

	form := ContactForm{
		Name:        r.PostFormValue("name"),
		Email:       r.PostFormValue("email"),
		Phone:       r.PostFormValue("phone"),
		Company:     r.PostFormValue("company"),
		InquiryType: r.PostFormValue("inquiry_type"),
		Message:     r.PostFormValue("message"),
	}

	fields, err := helpers.ValidateStruct(h.validator, &form)
	if err != nil {
		renderServerError(h.render, h.log, w, r, "failed to validate contact form", err)
		return
	}
	if len(fields) > 0 {
		state.Errors = fields
		h.renderContact(w, r, form, state)
		return
	}

	sourcePage := "/contact"
	_, err = h.intake.SubmitLead(r.Context(), services.LeadSubmission{
		Name:        form.Name,
		Email:       form.Email,
		Phone:       helpers.OptionalString(form.Phone),
		Company:     helpers.OptionalString(form.Company),
		InquiryType: helpers.OptionalString(form.InquiryType),
		SourcePage:  &sourcePage,
		Message:     helpers.OptionalString(form.Message),
	})
	if err != nil {
		applySubmitError(err, state.Errors, &state.FormError)
		h.renderContact(w, r, form, state)
		return
	}

	state.Submitted = true
	h.renderContact(w, r, ContactForm{}, state)
}

func (h *FormsHandler) renderContact(w http.ResponseWriter, r *http.Request, form ContactForm, state formState) {
	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":        "Contact Us",
		"Form":         form,
		"Errors":       state.Errors,
		"FormError":    state.FormError,
		"Submitted":    state.Submitted,
		"InquiryTypes": helpers.ContactInquiryTypes,
		"Breadcrumbs": []breadcrumb.Breadcrumb{
			{Name: "Home", URL: "/"},
			{Name: "Contact", URL: "/contact"},
		},
	})
	_ = h.render.HTML(w, http.StatusOK, "contact", data)
}

func (h *FormsHandler) BookCallPage(w http.ResponseWriter, r *http.Request) {
	h.renderBooking(w, r, BookingForm{}, formState{Errors: map[string]string{}})
}

func (h *FormsHandler) BookCallPost(w http.ResponseWriter, r *http.Request) {
	state := formState{Errors: map[string]string{}}
	if err := r.ParseForm(); err != nil {
		state.FormError = "We could not read your request. Please try again."
		h.renderBooking(w, r, BookingForm{}, state)
		return
	}

	form := BookingForm{
		Name:          r.PostFormValue("name"),
		Email:         r.PostFormValue("email"),
		Phone:         r.PostFormValue("phone"),
		Company:       r.PostFormValue("company"),
		PreferredDate: r.PostFormValue("preferred_date"),
		PreferredTime: r.PostFormValue("preferred_time"),
		Topic:         r.PostFormValue("topic"),
		Message:       r.PostFormValue("message"),
	}

	fields, err := helpers.ValidateStruct(h.validator, &form)
	if err != nil {
		renderServerError(h.render, h.log, w, r, "failed to validate booking form", err)
		return
	}
	if form.PreferredTime != "" && !helpers.Contains(helpers.BookingTimeSlots, form.PreferredTime) {
		if fields == nil {
			fields = map[string]string{}
		}
		fields["preferred_time"] = "Please choose one of the listed time slots."
	}
	if len(fields) > 0 {
		state.Errors = fields
		h.renderBooking(w, r, form, state)
		return
	}

	_, err = h.intake.SubmitBooking(r.Context(), services.BookingSubmission{
		Name:          form.Name,
		Email:         form.Email,
		Phone:         helpers.OptionalString(form.Phone),
		Company:       helpers.OptionalString(form.Company),
		PreferredDate: helpers.OptionalString(form.PreferredDate),
		PreferredTime: helpers.OptionalString(form.PreferredTime),
		Topic:         helpers.OptionalString(form.Topic),
		Message:       helpers.OptionalString(form.Message),
	})
	if err != nil {
		applySubmitError(err, state.Errors, &state.FormError)
		h.renderBooking(w, r, form, state)
		return
	}

	state.Submitted = true
	h.renderBooking(w, r, BookingForm{}, state)
}

func (h *FormsHandler) renderBooking(w http.ResponseWriter, r *http.Request, form BookingForm, state formState) {
	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":     "Book a Call",
		"Form":      form,
		"Errors":    state.Errors,
		"FormError": state.FormError,
		"Submitted": state.Submitted,
		"Topics":    helpers.BookingTopics,
		"TimeSlots": helpers.BookingTimeSlots,
		"Breadcrumbs": []breadcrumb.Breadcrumb{
			{Name: "Home", URL: "/"},
			{Name: "Book a Call", URL: "/book-a-call"},
		},
	})
	_ = h.render.HTML(w, http.StatusOK, "book_call", data)
}
