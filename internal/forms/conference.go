// Package forms holds the wire-format records and the mapping routines
// between them and the persisted entities: default injection on create,
// partial copies on update, and date/enum coercion both ways.
package forms

import (
	"fmt"
	"time"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/keys"
)

// Wire date and time-of-day formats.
const (
	DateFormat = "2006-01-02"
	TimeFormat = "15:04"
)

// Conference creation defaults, injected for absent fields and echoed back
// to the caller.
var conferenceDefaults = struct {
	city   string
	topics []string
}{
	city:   "Default City",
	topics: []string{"Default", "Topic"},
}

// ConferenceForm is the conference wire record, inbound and outbound.
// swagger:model ConferenceForm
type ConferenceForm struct {
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	OrganizerUserID      string   `json:"organizer_user_id"`
	Topics               []string `json:"topics"`
	City                 string   `json:"city"`
	StartDate            string   `json:"start_date"`
	Month                int      `json:"month"`
	MaxAttendees         int      `json:"max_attendees"`
	SeatsAvailable       int      `json:"seats_available"`
	EndDate              string   `json:"end_date"`
	WebsafeKey           string   `json:"websafe_key"`
	OrganizerDisplayName string   `json:"organizer_display_name"`
}

// Validate implements the delivery-layer Validator.
func (f ConferenceForm) Validate() []string {
	var errs []string
	if f.Name == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// parseDate parses a wire date, tolerating a trailing time component.
func parseDate(s string) (time.Time, error) {
	if len(s) > len(DateFormat) {
		s = s[:len(DateFormat)]
	}
	d, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrMalformedDate, s)
	}
	return d, nil
}

// NewConference builds a Conference entity from the inbound form, mutating
// the form so that injected defaults and derived fields are echoed back to
// the caller. seatsAvailable starts equal to maxAttendees whenever
// maxAttendees is positive; the derived month comes from the start date.
func NewConference(f *ConferenceForm, organizerID string, now time.Time) (*domain.Conference, error) {
	if f.City == "" {
		f.City = conferenceDefaults.city
	}
	if len(f.Topics) == 0 {
		f.Topics = append([]string(nil), conferenceDefaults.topics...)
	}
	if f.MaxAttendees > 0 {
		f.SeatsAvailable = f.MaxAttendees
	}

	conf := &domain.Conference{
		Name:           f.Name,
		Description:    f.Description,
		OrganizerID:    organizerID,
		Topics:         f.Topics,
		City:           f.City,
		MaxAttendees:   f.MaxAttendees,
		SeatsAvailable: f.SeatsAvailable,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if f.StartDate != "" {
		d, err := parseDate(f.StartDate)
		if err != nil {
			return nil, err
		}
		conf.StartDate = &d
		conf.Month = int(d.Month())
	}
	if f.EndDate != "" {
		d, err := parseDate(f.EndDate)
		if err != nil {
			return nil, err
		}
		conf.EndDate = &d
	}

	f.OrganizerUserID = organizerID
	f.Month = conf.Month
	return conf, nil
}

// ApplyConferenceUpdate copies the form's non-empty fields onto the stored
// conference (partial update semantics). Changing the start date re-derives
// the month.
func ApplyConferenceUpdate(conf *domain.Conference, f *ConferenceForm) error {
	if f.Name != "" {
		conf.Name = f.Name
	}
	if f.Description != "" {
		conf.Description = f.Description
	}
	if len(f.Topics) > 0 {
		conf.Topics = f.Topics
	}
	if f.City != "" {
		conf.City = f.City
	}
	if f.StartDate != "" {
		d, err := parseDate(f.StartDate)
		if err != nil {
			return err
		}
		conf.StartDate = &d
		conf.Month = int(d.Month())
	}
	if f.EndDate != "" {
		d, err := parseDate(f.EndDate)
		if err != nil {
			return err
		}
		conf.EndDate = &d
	}
	if f.MaxAttendees != 0 {
		conf.MaxAttendees = f.MaxAttendees
	}
	if f.SeatsAvailable != 0 {
		conf.SeatsAvailable = f.SeatsAvailable
	}
	return nil
}

// ConferenceToForm maps a conference entity onto its wire record. The opaque
// key is always populated; dates render in the fixed wire format.
func ConferenceToForm(conf *domain.Conference, organizerDisplayName string) *ConferenceForm {
	f := &ConferenceForm{
		Name:                 conf.Name,
		Description:          conf.Description,
		OrganizerUserID:      conf.OrganizerID,
		Topics:               conf.Topics,
		City:                 conf.City,
		Month:                conf.Month,
		MaxAttendees:         conf.MaxAttendees,
		SeatsAvailable:       conf.SeatsAvailable,
		WebsafeKey:           keys.Encode(keys.KindConference, conf.ID),
		OrganizerDisplayName: organizerDisplayName,
	}
	if conf.StartDate != nil {
		f.StartDate = conf.StartDate.Format(DateFormat)
	}
	if conf.EndDate != nil {
		f.EndDate = conf.EndDate.Format(DateFormat)
	}
	return f
}
