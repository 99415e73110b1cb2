package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
	"conferencecentral/internal/forms"
	"conferencecentral/internal/keys"
	"conferencecentral/internal/query"
)

// ConferenceSuccessResponse is the success envelope for endpoints returning
// a single conference form.
type ConferenceSuccessResponse struct {
	Data  *forms.ConferenceForm `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// ConferenceListSuccessResponse is the success envelope for endpoints
// returning a list of conference forms.
type ConferenceListSuccessResponse struct {
	Data  []*forms.ConferenceForm `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// BooleanSuccessResponse is the success envelope for endpoints whose result
// is a single boolean outcome.
type BooleanSuccessResponse struct {
	Data  bool              `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type ConferenceController struct {
	Logger      *slog.Logger
	Conferences domain.ConferenceService
	Attendees   domain.AttendeeService
}

func NewConferenceController(logger *slog.Logger, conferences domain.ConferenceService, attendees domain.AttendeeService) *ConferenceController {
	return &ConferenceController{
		Logger:      logger,
		Conferences: conferences,
		Attendees:   attendees,
	}
}

// confirmationInfo serializes the echoed form for the confirmation email body.
func confirmationInfo(form any) string {
	b, err := json.MarshalIndent(form, "", "  ")
	if err != nil {
		return ""
	}
	return string(b)
}

// CreateConference godoc
// @Summary Create a conference
// @Description Create a conference organized by the caller. Absent city, topics and seats are filled with defaults and echoed back; month is derived from the start date. A confirmation email task is enqueued.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conference body forms.ConferenceForm true "Conference data"
// @Success 201 {object} controllers.ConferenceSuccessResponse "data contains the conference with defaults and key filled in"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences [post]
func (c *ConferenceController) CreateConference(w http.ResponseWriter, r *http.Request) {
	var form forms.ConferenceForm
	if !helpers.DecodeAndValidate(w, r, &form) {
		return
	}
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	conf, err := forms.NewConference(&form, id.UserID, time.Now())
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	if err := c.Conferences.Create(r.Context(), id, conf, confirmationInfo(form)); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	form.WebsafeKey = keys.Encode(keys.KindConference, conf.ID)
	helpers.WriteJSONSuccess(w, http.StatusCreated, &form)
}

// GetConference godoc
// @Summary Get a conference
// @Description Returns the conference identified by its opaque key, with the organizer's display name resolved.
// @Tags conferences
// @Produce json
// @Param key path string true "Conference key"
// @Success 200 {object} controllers.ConferenceSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{key} [get]
func (c *ConferenceController) GetConference(w http.ResponseWriter, r *http.Request) {
	conferenceID, err := keys.Decode(keys.KindConference, r.PathValue("key"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	result, err := c.Conferences.Get(r.Context(), conferenceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "conference not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, forms.ConferenceToForm(result.Conference, result.DisplayName))
}

// UpdateConference godoc
// @Summary Update a conference
// @Description Partial update of a conference owned by the caller. Empty fields are left unchanged; changing the start date re-derives the month.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param key path string true "Conference key"
// @Param conference body forms.ConferenceForm true "Fields to update"
// @Success 200 {object} controllers.ConferenceSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{key} [put]
func (c *ConferenceController) UpdateConference(w http.ResponseWriter, r *http.Request) {
	conferenceID, err := keys.Decode(keys.KindConference, r.PathValue("key"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	var form forms.ConferenceForm
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&form); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	result, err := c.Conferences.Update(r.Context(), id, conferenceID, func(conf *domain.Conference) error {
		return forms.ApplyConferenceUpdate(conf, &form)
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "conference not found")
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "only the organizer can update this conference")
		case errors.Is(err, domain.ErrMalformedDate):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, forms.ConferenceToForm(result.Conference, result.DisplayName))
}

// QueryConferencesRequest is the request body for POST /conferences/query.
type QueryConferencesRequest struct {
	Filters []query.Filter `json:"filters"`
}

// QueryConferences godoc
// @Summary Query conferences
// @Description Runs user-supplied filters against all conferences. At most one field may carry inequality filters; results are ordered by that field, then by name.
// @Tags conferences
// @Accept json
// @Produce json
// @Param query body QueryConferencesRequest true "Filter triples"
// @Success 200 {object} controllers.ConferenceListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/query [post]
func (c *ConferenceController) QueryConferences(w http.ResponseWriter, r *http.Request) {
	var req QueryConferencesRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	results, err := c.Conferences.QueryConferences(r.Context(), req.Filters)
	if err != nil {
		if errors.Is(err, query.ErrInvalidFilter) || errors.Is(err, query.ErrInequalityConflict) || errors.Is(err, query.ErrInvalidFilterValue) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, conferencesToForms(results))
}

// ListCreated godoc
// @Summary List conferences organized by the caller
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ConferenceListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/created [get]
func (c *ConferenceController) ListCreated(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	results, err := c.Conferences.ListCreated(r.Context(), id)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, conferencesToForms(results))
}

// ListAttending godoc
// @Summary List conferences the caller is registered for
// @Description Returns the caller's registrations in registration order.
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ConferenceListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/attending [get]
func (c *ConferenceController) ListAttending(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	results, err := c.Attendees.ListAttending(r.Context(), id)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, conferencesToForms(results))
}

// Register godoc
// @Summary Register for a conference
// @Description Takes one seat in the conference for the caller. Fails with a conflict when already registered or sold out.
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Param key path string true "Conference key"
// @Success 200 {object} controllers.BooleanSuccessResponse "data is true"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{key}/registration [post]
func (c *ConferenceController) Register(w http.ResponseWriter, r *http.Request) {
	conferenceID, err := keys.Decode(keys.KindConference, r.PathValue("key"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Attendees.Register(r.Context(), id, conferenceID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "conference not found")
		case errors.Is(err, domain.ErrAlreadyRegistered), errors.Is(err, domain.ErrNoSeatsAvailable):
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, true)
}

// Unregister godoc
// @Summary Unregister from a conference
// @Description Releases the caller's seat. Returns false when the caller was not registered; this is not an error.
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Param key path string true "Conference key"
// @Success 200 {object} controllers.BooleanSuccessResponse "data reports whether a registration was removed"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{key}/registration [delete]
func (c *ConferenceController) Unregister(w http.ResponseWriter, r *http.Request) {
	conferenceID, err := keys.Decode(keys.KindConference, r.PathValue("key"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	removed, err := c.Attendees.Unregister(r.Context(), id, conferenceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "conference not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, removed)
}

func conferencesToForms(results []*domain.ConferenceWithOrganizer) []*forms.ConferenceForm {
	out := make([]*forms.ConferenceForm, 0, len(results))
	for _, res := range results {
		out = append(out, forms.ConferenceToForm(res.Conference, res.DisplayName))
	}
	return out
}
