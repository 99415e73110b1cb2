package forms

import (
	"fmt"
	"time"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/keys"
)

// Session creation defaults.
var sessionDefaults = struct {
	duration      string
	typeOfSession string
}{
	duration:      "1",
	typeOfSession: "Types",
}

// SessionForm is the inbound session wire record.
// swagger:model SessionForm
type SessionForm struct {
	Name                 string   `json:"name"`
	WebsafeConferenceKey string   `json:"websafe_conference_key"`
	Highlights           []string `json:"highlights"`
	WebsafeSpeakerKey    string   `json:"websafe_speaker_key"`
	Duration             string   `json:"duration"`
	TypeOfSession        string   `json:"type_of_session"`
	Date                 string   `json:"date"`
	StartTime            string   `json:"start_time"`
}

// Validate implements the delivery-layer Validator.
func (f SessionForm) Validate() []string {
	var errs []string
	if f.Name == "" {
		errs = append(errs, "name is required")
	}
	if f.WebsafeConferenceKey == "" {
		errs = append(errs, "websafe_conference_key is required")
	}
	return errs
}

// SessionOutForm is the outbound session wire record: the session fields
// plus the referenced speaker's display fields, joined at read time. The
// session entity itself never stores the descriptive speaker fields.
// swagger:model SessionOutForm
type SessionOutForm struct {
	Name                 string   `json:"name"`
	WebsafeConferenceKey string   `json:"websafe_conference_key"`
	Highlights           []string `json:"highlights"`
	WebsafeSpeakerKey    string   `json:"websafe_speaker_key"`
	Duration             string   `json:"duration"`
	TypeOfSession        string   `json:"type_of_session"`
	Date                 string   `json:"date"`
	StartTime            string   `json:"start_time"`
	WebsafeKey           string   `json:"websafe_key"`
	SpeakerName          string   `json:"speaker_name"`
	SpeakerBio           string   `json:"speaker_bio"`
	SpeakerCredentials   []string `json:"speaker_credentials"`
	SpeakerTitle         string   `json:"speaker_title"`
	SpeakerEmail         string   `json:"speaker_email"`
}

// ParseTimeOfDay parses an HH:MM wire time.
func ParseTimeOfDay(s string) (time.Time, error) {
	t, err := time.Parse(TimeFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrMalformedTime, s)
	}
	return t, nil
}

// NewSession builds a Session entity from the inbound form, mutating the
// form so that injected defaults are echoed back. conferenceID and
// speakerID are the decoded opaque references ("" for no speaker).
func NewSession(f *SessionForm, conferenceID, speakerID string, now time.Time) (*domain.Session, error) {
	if f.Highlights == nil {
		f.Highlights = []string{}
	}
	if f.Duration == "" {
		f.Duration = sessionDefaults.duration
	}
	if f.TypeOfSession == "" {
		f.TypeOfSession = sessionDefaults.typeOfSession
	}

	sess := &domain.Session{
		ConferenceID:  conferenceID,
		Name:          f.Name,
		Highlights:    f.Highlights,
		SpeakerID:     speakerID,
		Duration:      f.Duration,
		TypeOfSession: f.TypeOfSession,
		CreatedAt:     now,
	}

	if f.Date != "" {
		d, err := parseDate(f.Date)
		if err != nil {
			return nil, err
		}
		sess.Date = &d
	}
	if f.StartTime != "" {
		t, err := ParseTimeOfDay(f.StartTime)
		if err != nil {
			return nil, err
		}
		sess.StartTime = &t
	}
	return sess, nil
}

// SessionToForm maps a session entity (with its optionally resolved speaker)
// onto the outbound wire record. A missing speaker leaves the display fields
// empty; it is not an error.
func SessionToForm(sess *domain.Session, speaker *domain.Speaker) *SessionOutForm {
	f := &SessionOutForm{
		Name:                 sess.Name,
		WebsafeConferenceKey: keys.Encode(keys.KindConference, sess.ConferenceID),
		Highlights:           sess.Highlights,
		Duration:             sess.Duration,
		TypeOfSession:        sess.TypeOfSession,
		WebsafeKey:           keys.Encode(keys.KindSession, sess.ID),
	}
	if sess.SpeakerID != "" {
		f.WebsafeSpeakerKey = keys.Encode(keys.KindSpeaker, sess.SpeakerID)
	}
	if sess.Date != nil {
		f.Date = sess.Date.Format(DateFormat)
	}
	if sess.StartTime != nil {
		f.StartTime = sess.StartTime.Format(TimeFormat)
	}
	if speaker != nil {
		f.SpeakerName = speaker.Name
		f.SpeakerBio = speaker.Bio
		f.SpeakerCredentials = speaker.Credentials
		f.SpeakerTitle = speaker.Title
		f.SpeakerEmail = speaker.Email
	}
	return f
}

// SessionsToForms maps resolved session/speaker pairs in order.
func SessionsToForms(items []*domain.SessionWithSpeaker) []*SessionOutForm {
	out := make([]*SessionOutForm, 0, len(items))
	for _, it := range items {
		out = append(out, SessionToForm(it.Session, it.Speaker))
	}
	return out
}
