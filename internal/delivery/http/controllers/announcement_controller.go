package controllers

import (
	"log/slog"
	"net/http"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/domain"
)

// AnnouncementSuccessResponse is the success envelope for the cached
// announcement endpoints. Data is "" when nothing is cached.
type AnnouncementSuccessResponse struct {
	Data  string            `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type AnnouncementController struct {
	Logger        *slog.Logger
	Announcements domain.AnnouncementService
}

func NewAnnouncementController(logger *slog.Logger, announcements domain.AnnouncementService) *AnnouncementController {
	return &AnnouncementController{
		Logger:        logger,
		Announcements: announcements,
	}
}

// GetAnnouncement godoc
// @Summary Get the current announcement
// @Description Returns the cached nearly-sold-out announcement, or an empty string when none is set.
// @Tags announcements
// @Produce json
// @Success 200 {object} controllers.AnnouncementSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /announcement [get]
func (c *AnnouncementController) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	announcement, err := c.Announcements.GetAnnouncement(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, announcement)
}

// GetFeaturedSpeaker godoc
// @Summary Get the featured speaker
// @Description Returns the cached featured-speaker string, or an empty string when none is set.
// @Tags announcements
// @Produce json
// @Success 200 {object} controllers.AnnouncementSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/featured [get]
func (c *AnnouncementController) GetFeaturedSpeaker(w http.ResponseWriter, r *http.Request) {
	speaker, err := c.Announcements.GetFeaturedSpeaker(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, speaker)
}
