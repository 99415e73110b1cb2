package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
	"conferencecentral/internal/forms"
	"conferencecentral/internal/keys"
)

// SessionSuccessResponse is the success envelope for endpoints returning a
// single session form.
type SessionSuccessResponse struct {
	Data  *forms.SessionOutForm `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// SessionListSuccessResponse is the success envelope for endpoints returning
// a list of session forms.
type SessionListSuccessResponse struct {
	Data  []*forms.SessionOutForm `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

type SessionController struct {
	Logger   *slog.Logger
	Sessions domain.SessionService
}

func NewSessionController(logger *slog.Logger, sessions domain.SessionService) *SessionController {
	return &SessionController{
		Logger:   logger,
		Sessions: sessions,
	}
}

// CreateSession godoc
// @Summary Create a session
// @Description Create a session under a conference owned by the caller. Absent duration and type are filled with defaults. Enqueues the featured-speaker task when a speaker is referenced, and a confirmation email task.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session body forms.SessionForm true "Session data"
// @Success 201 {object} controllers.SessionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions [post]
func (c *SessionController) CreateSession(w http.ResponseWriter, r *http.Request) {
	var form forms.SessionForm
	if !helpers.DecodeAndValidate(w, r, &form) {
		return
	}
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	conferenceID, err := keys.Decode(keys.KindConference, form.WebsafeConferenceKey)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	var speakerID string
	if form.WebsafeSpeakerKey != "" {
		speakerID, err = keys.Decode(keys.KindSpeaker, form.WebsafeSpeakerKey)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
	}
	sess, err := forms.NewSession(&form, conferenceID, speakerID, time.Now())
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	result, err := c.Sessions.Create(r.Context(), id, sess, confirmationInfo(form))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "conference or speaker not found")
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "only the organizer can add sessions to this conference")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, forms.SessionToForm(result.Session, result.Speaker))
}

// ListConferenceSessions godoc
// @Summary List sessions of a conference
// @Description Returns the conference's sessions ordered by name. An optional type query parameter narrows to that session type.
// @Tags sessions
// @Produce json
// @Param key path string true "Conference key"
// @Param type query string false "Session type"
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{key}/sessions [get]
func (c *SessionController) ListConferenceSessions(w http.ResponseWriter, r *http.Request) {
	conferenceID, err := keys.Decode(keys.KindConference, r.PathValue("key"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	results, err := c.Sessions.ListByConference(r.Context(), conferenceID, r.URL.Query().Get("type"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "conference not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, forms.SessionsToForms(results))
}

// ListSessionsByTime godoc
// @Summary List sessions of a conference starting at or after a time of day
// @Tags sessions
// @Produce json
// @Param key path string true "Conference key"
// @Param after query string true "Time of day (HH:MM)"
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{key}/sessions/by-time [get]
func (c *SessionController) ListSessionsByTime(w http.ResponseWriter, r *http.Request) {
	conferenceID, err := keys.Decode(keys.KindConference, r.PathValue("key"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	after, err := forms.ParseTimeOfDay(r.URL.Query().Get("after"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	results, err := c.Sessions.ListByStartTime(r.Context(), conferenceID, after)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, forms.SessionsToForms(results))
}

// SessionsBySpeakerRequest is the request body for POST /sessions/by-speaker.
type SessionsBySpeakerRequest struct {
	WebsafeSpeakerKey string `json:"websafe_speaker_key"`
}

// Validate implements Validator.
func (s SessionsBySpeakerRequest) Validate() []string {
	var errs []string
	if s.WebsafeSpeakerKey == "" {
		errs = append(errs, "websafe_speaker_key is required")
	}
	return errs
}

// ListSessionsBySpeaker godoc
// @Summary List sessions of a speaker across all conferences
// @Tags sessions
// @Accept json
// @Produce json
// @Param speaker body SessionsBySpeakerRequest true "Speaker reference"
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/by-speaker [post]
func (c *SessionController) ListSessionsBySpeaker(w http.ResponseWriter, r *http.Request) {
	var req SessionsBySpeakerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	speakerID, err := keys.Decode(keys.KindSpeaker, req.WebsafeSpeakerKey)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	results, err := c.Sessions.ListBySpeaker(r.Context(), speakerID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, forms.SessionsToForms(results))
}

// SessionsOfTypesRequest is the request body for POST /sessions/of-types.
type SessionsOfTypesRequest struct {
	Types []string `json:"types"`
}

// Validate implements Validator.
func (s SessionsOfTypesRequest) Validate() []string {
	var errs []string
	if len(s.Types) == 0 {
		errs = append(errs, "types is required")
	}
	return errs
}

// ListSessionsOfTypes godoc
// @Summary List sessions of the given types across all conferences
// @Tags sessions
// @Accept json
// @Produce json
// @Param types body SessionsOfTypesRequest true "Session types"
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/of-types [post]
func (c *SessionController) ListSessionsOfTypes(w http.ResponseWriter, r *http.Request) {
	var req SessionsOfTypesRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	results, err := c.Sessions.ListByTypes(r.Context(), req.Types)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, forms.SessionsToForms(results))
}

// SessionsByTimeExcludingTypesRequest is the request body for
// POST /sessions/by-time-excluding-types.
type SessionsByTimeExcludingTypesRequest struct {
	After         string   `json:"after"`
	ExcludedTypes []string `json:"excluded_types"`
}

// Validate implements Validator.
func (s SessionsByTimeExcludingTypesRequest) Validate() []string {
	var errs []string
	if s.After == "" {
		errs = append(errs, "after is required")
	}
	return errs
}

// ListSessionsByTimeExcludingTypes godoc
// @Summary List sessions starting at or after a time of day, excluding types
// @Description Resolves the excluded types against the session-type vocabulary and matches sessions whose type falls in the complement. Matching is case-insensitive.
// @Tags sessions
// @Accept json
// @Produce json
// @Param query body SessionsByTimeExcludingTypesRequest true "Time of day and excluded types"
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/by-time-excluding-types [post]
func (c *SessionController) ListSessionsByTimeExcludingTypes(w http.ResponseWriter, r *http.Request) {
	var req SessionsByTimeExcludingTypesRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	after, err := forms.ParseTimeOfDay(req.After)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	results, err := c.Sessions.ListByStartTimeExcludingTypes(r.Context(), after, req.ExcludedTypes)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, forms.SessionsToForms(results))
}

// AddToWishlist godoc
// @Summary Add a session to the caller's wishlist
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Param key path string true "Session key"
// @Success 200 {object} controllers.BooleanSuccessResponse "data is true"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/{key}/wishlist [post]
func (c *SessionController) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	sessionID, err := keys.Decode(keys.KindSession, r.PathValue("key"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Sessions.AddToWishlist(r.Context(), id, sessionID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "session not found")
		case errors.Is(err, domain.ErrAlreadyInWishlist):
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, true)
}

// RemoveFromWishlist godoc
// @Summary Remove a session from the caller's wishlist
// @Description Returns false when the session was not in the wishlist; this is not an error. An unknown session is.
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Param key path string true "Session key"
// @Success 200 {object} controllers.BooleanSuccessResponse "data reports whether an entry was removed"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/{key}/wishlist [delete]
func (c *SessionController) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	sessionID, err := keys.Decode(keys.KindSession, r.PathValue("key"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	removed, err := c.Sessions.RemoveFromWishlist(r.Context(), id, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "session not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, removed)
}

// GetWishlist godoc
// @Summary List the caller's wishlisted sessions
// @Description Returns wishlisted sessions in the order they were added.
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/wishlist [get]
func (c *SessionController) GetWishlist(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	results, err := c.Sessions.ListWishlist(r.Context(), id)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, forms.SessionsToForms(results))
}
