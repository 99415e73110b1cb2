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

// SpeakerSuccessResponse is the success envelope for endpoints returning a
// single speaker form.
type SpeakerSuccessResponse struct {
	Data  *forms.SpeakerForm `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// SpeakerListSuccessResponse is the success envelope for endpoints returning
// a list of speaker forms.
type SpeakerListSuccessResponse struct {
	Data  []*forms.SpeakerForm `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

type SpeakerController struct {
	Logger   *slog.Logger
	Speakers domain.SpeakerService
}

func NewSpeakerController(logger *slog.Logger, speakers domain.SpeakerService) *SpeakerController {
	return &SpeakerController{
		Logger:   logger,
		Speakers: speakers,
	}
}

// CreateSpeaker godoc
// @Summary Create a speaker
// @Description Create a speaker profile. A non-empty email must be unique across speakers.
// @Tags speakers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param speaker body forms.SpeakerForm true "Speaker data"
// @Success 201 {object} controllers.SpeakerSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers [post]
func (c *SpeakerController) CreateSpeaker(w http.ResponseWriter, r *http.Request) {
	var form forms.SpeakerForm
	if !helpers.DecodeAndValidate(w, r, &form) {
		return
	}
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	speaker := forms.NewSpeaker(&form, time.Now())
	if err := c.Speakers.Create(r.Context(), id, speaker); err != nil {
		if errors.Is(err, domain.ErrDuplicateSpeakerEmail) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, forms.SpeakerToForm(speaker))
}

// GetSpeaker godoc
// @Summary Get a speaker
// @Tags speakers
// @Produce json
// @Param key path string true "Speaker key"
// @Success 200 {object} controllers.SpeakerSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/{key} [get]
func (c *SpeakerController) GetSpeaker(w http.ResponseWriter, r *http.Request) {
	speakerID, err := keys.Decode(keys.KindSpeaker, r.PathValue("key"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	speaker, err := c.Speakers.Get(r.Context(), speakerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "speaker not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, forms.SpeakerToForm(speaker))
}

// QuerySpeakersRequest is the request body for POST /speakers/query. Email
// takes precedence over name; with neither set, all speakers are returned.
type QuerySpeakersRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// QuerySpeakers godoc
// @Summary Search speakers
// @Description Matches by email when given, else by name, else returns all speakers ordered by name.
// @Tags speakers
// @Accept json
// @Produce json
// @Param query body QuerySpeakersRequest true "Search criteria"
// @Success 200 {object} controllers.SpeakerListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/query [post]
func (c *SpeakerController) QuerySpeakers(w http.ResponseWriter, r *http.Request) {
	var req QuerySpeakersRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	speakers, err := c.Speakers.Search(r.Context(), req.Name, req.Email)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, forms.SpeakersToForms(speakers))
}
