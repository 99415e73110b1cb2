package services

import (
	"context"
	"fmt"

	"conferencecentral/internal/domain"
)

// NewTaskHandlers maps deferred task names onto their handlers. The handlers
// read the string params the submitting service wrote.
func NewTaskHandlers(email domain.EmailService, announcements domain.AnnouncementService) map[string]domain.TaskHandler {
	return map[string]domain.TaskHandler{
		domain.TaskSendConfirmationEmail: func(ctx context.Context, params map[string]string) error {
			to := params["email"]
			if to == "" {
				return fmt.Errorf("confirmation task missing email param")
			}
			return email.SendConfirmation(ctx, &domain.ConfirmationEmailData{
				Email: to,
				Info:  params["conferenceInfo"],
			})
		},
		domain.TaskSetFeaturedSpeaker: func(ctx context.Context, params map[string]string) error {
			conferenceID := params["conferenceID"]
			speakerID := params["speakerID"]
			if conferenceID == "" || speakerID == "" {
				return fmt.Errorf("featured speaker task missing params")
			}
			_, err := announcements.SetFeaturedSpeaker(ctx, conferenceID, speakerID)
			return err
		},
	}
}
