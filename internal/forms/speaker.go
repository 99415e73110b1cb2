package forms

import (
	"time"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/keys"
)

// SpeakerForm is the speaker wire record, inbound and outbound.
// swagger:model SpeakerForm
type SpeakerForm struct {
	Name        string   `json:"name"`
	Bio         string   `json:"bio"`
	Credentials []string `json:"credentials"`
	Title       string   `json:"title"`
	Email       string   `json:"email"`
	WebsafeKey  string   `json:"websafe_key"`
}

// Validate implements the delivery-layer Validator.
func (f SpeakerForm) Validate() []string {
	var errs []string
	if f.Name == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// NewSpeaker builds a Speaker entity from the inbound form.
func NewSpeaker(f *SpeakerForm, now time.Time) *domain.Speaker {
	if f.Credentials == nil {
		f.Credentials = []string{}
	}
	return domain.NewSpeaker(f.Name, f.Bio, f.Title, f.Email, f.Credentials, now)
}

// SpeakerToForm maps a speaker entity onto its wire record.
func SpeakerToForm(sp *domain.Speaker) *SpeakerForm {
	return &SpeakerForm{
		Name:        sp.Name,
		Bio:         sp.Bio,
		Credentials: sp.Credentials,
		Title:       sp.Title,
		Email:       sp.Email,
		WebsafeKey:  keys.Encode(keys.KindSpeaker, sp.ID),
	}
}

// SpeakersToForms maps speakers in order.
func SpeakersToForms(speakers []*domain.Speaker) []*SpeakerForm {
	out := make([]*SpeakerForm, 0, len(speakers))
	for _, sp := range speakers {
		out = append(out, SpeakerToForm(sp))
	}
	return out
}
