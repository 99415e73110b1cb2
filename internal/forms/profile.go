package forms

import (
	"fmt"

	"conferencecentral/internal/domain"
)

// ProfileForm is the outbound profile wire record.
// swagger:model ProfileForm
type ProfileForm struct {
	DisplayName  string `json:"display_name"`
	MainEmail    string `json:"main_email"`
	TeeShirtSize string `json:"tee_shirt_size"`
}

// ProfileMiniForm is the inbound profile update record.
// swagger:model ProfileMiniForm
type ProfileMiniForm struct {
	DisplayName  string `json:"display_name"`
	TeeShirtSize string `json:"tee_shirt_size"`
}

// Validate implements the delivery-layer Validator.
func (f ProfileMiniForm) Validate() []string {
	var errs []string
	if f.TeeShirtSize != "" && !domain.ValidTeeShirtSize(f.TeeShirtSize) {
		errs = append(errs, "tee_shirt_size is not a valid size")
	}
	return errs
}

// ProfileToForm maps a profile entity onto its wire record. The persisted
// tee-shirt size string is re-validated against the enum; an unrecognized
// value fails closed.
func ProfileToForm(p *domain.Profile) (*ProfileForm, error) {
	if !domain.ValidTeeShirtSize(p.TeeShirtSize) {
		return nil, fmt.Errorf("%w: tee-shirt size %q", domain.ErrDataIntegrity, p.TeeShirtSize)
	}
	return &ProfileForm{
		DisplayName:  p.DisplayName,
		MainEmail:    p.MainEmail,
		TeeShirtSize: p.TeeShirtSize,
	}, nil
}
