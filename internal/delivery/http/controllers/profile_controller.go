package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
	"conferencecentral/internal/forms"
)

// ProfileSuccessResponse is the success envelope for the profile endpoints.
type ProfileSuccessResponse struct {
	Data  *forms.ProfileForm `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

type ProfileController struct {
	Logger   *slog.Logger
	Profiles domain.ProfileService
}

func NewProfileController(logger *slog.Logger, profiles domain.ProfileService) *ProfileController {
	return &ProfileController{
		Logger:   logger,
		Profiles: profiles,
	}
}

// GetProfile godoc
// @Summary Get the caller's profile
// @Description Returns the caller's profile, creating one on first access with the display name derived from the token.
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ProfileSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profile [get]
func (c *ProfileController) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	profile, err := c.Profiles.Get(r.Context(), id)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	c.writeProfile(w, r, profile)
}

// SaveProfile godoc
// @Summary Update the caller's profile
// @Description Updates display name and/or tee-shirt size. Empty fields are left unchanged.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body forms.ProfileMiniForm true "Fields to update"
// @Success 200 {object} controllers.ProfileSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profile [post]
func (c *ProfileController) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var form forms.ProfileMiniForm
	if !helpers.DecodeAndValidate(w, r, &form) {
		return
	}
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	profile, err := c.Profiles.Save(r.Context(), id, form.DisplayName, form.TeeShirtSize)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	c.writeProfile(w, r, profile)
}

func (c *ProfileController) writeProfile(w http.ResponseWriter, r *http.Request, profile *domain.Profile) {
	form, err := forms.ProfileToForm(profile)
	if err != nil {
		if errors.Is(err, domain.ErrDataIntegrity) {
			c.Logger.ErrorContext(r.Context(), "profile failed integrity check", "profile_id", profile.ID, "err", err)
		}
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, form)
}
