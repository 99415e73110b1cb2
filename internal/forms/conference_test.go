package forms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/keys"
)

func TestNewConference_DefaultsAndDerivedFields(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	f := &ConferenceForm{
		Name:         "GoCon",
		StartDate:    "2025-06-10",
		EndDate:      "2025-06-12",
		MaxAttendees: 10,
	}

	conf, err := NewConference(f, "user-1", now)
	require.NoError(t, err)

	require.Equal(t, "Default City", conf.City)
	require.Equal(t, []string{"Default", "Topic"}, conf.Topics)
	require.Equal(t, 10, conf.MaxAttendees)
	require.Equal(t, 10, conf.SeatsAvailable, "seats start equal to maxAttendees")
	require.Equal(t, 6, conf.Month)
	require.Equal(t, "user-1", conf.OrganizerID)
	require.NotNil(t, conf.StartDate)
	require.NotNil(t, conf.EndDate)

	// Defaults and derived fields are echoed onto the request form.
	require.Equal(t, "Default City", f.City)
	require.Equal(t, []string{"Default", "Topic"}, f.Topics)
	require.Equal(t, 10, f.SeatsAvailable)
	require.Equal(t, 6, f.Month)
	require.Equal(t, "user-1", f.OrganizerUserID)
}

func TestNewConference_NoStartDate(t *testing.T) {
	f := &ConferenceForm{Name: "GoCon"}
	conf, err := NewConference(f, "user-1", time.Now())
	require.NoError(t, err)
	require.Nil(t, conf.StartDate)
	require.Equal(t, 0, conf.Month)
	require.Equal(t, 0, conf.SeatsAvailable)
}

func TestNewConference_DateWithTimeComponent(t *testing.T) {
	f := &ConferenceForm{Name: "GoCon", StartDate: "2025-06-10T09:00:00Z"}
	conf, err := NewConference(f, "user-1", time.Now())
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), *conf.StartDate)
}

func TestNewConference_MalformedDate(t *testing.T) {
	f := &ConferenceForm{Name: "GoCon", StartDate: "June 10th"}
	_, err := NewConference(f, "user-1", time.Now())
	require.ErrorIs(t, err, domain.ErrMalformedDate)
}

func TestConferenceRoundTrip(t *testing.T) {
	start := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)
	conf := &domain.Conference{
		ID:             "6a1f8c62-8f5a-4a0a-9c3d-0f3b8a2d91e4",
		Name:           "GoCon",
		Description:    "annual",
		OrganizerID:    "user-1",
		Topics:         []string{"Go", "Cloud"},
		City:           "London",
		StartDate:      &start,
		EndDate:        &end,
		Month:          6,
		MaxAttendees:   100,
		SeatsAvailable: 73,
	}

	f := ConferenceToForm(conf, "Steven")
	require.Equal(t, "2025-06-10", f.StartDate)
	require.Equal(t, "2025-06-12", f.EndDate)
	require.Equal(t, "Steven", f.OrganizerDisplayName)
	require.Equal(t, keys.Encode(keys.KindConference, conf.ID), f.WebsafeKey)

	back, err := NewConference(f, conf.OrganizerID, time.Now())
	require.NoError(t, err)
	require.Equal(t, conf.Name, back.Name)
	require.Equal(t, conf.Description, back.Description)
	require.Equal(t, conf.Topics, back.Topics)
	require.Equal(t, conf.City, back.City)
	require.Equal(t, start, *back.StartDate)
	require.Equal(t, end, *back.EndDate)
	require.Equal(t, conf.Month, back.Month)
	require.Equal(t, conf.MaxAttendees, back.MaxAttendees)
}

func TestApplyConferenceUpdate_PartialFields(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	conf := &domain.Conference{
		Name:           "GoCon",
		City:           "London",
		Topics:         []string{"Go"},
		StartDate:      &start,
		Month:          3,
		MaxAttendees:   50,
		SeatsAvailable: 50,
	}

	err := ApplyConferenceUpdate(conf, &ConferenceForm{City: "Berlin", StartDate: "2025-09-01"})
	require.NoError(t, err)

	require.Equal(t, "Berlin", conf.City)
	require.Equal(t, 9, conf.Month, "month re-derived from the new start date")
	require.Equal(t, "GoCon", conf.Name, "empty fields leave the entity unchanged")
	require.Equal(t, []string{"Go"}, conf.Topics)
	require.Equal(t, 50, conf.MaxAttendees)
}

func TestApplyConferenceUpdate_MalformedDate(t *testing.T) {
	conf := &domain.Conference{Name: "GoCon"}
	err := ApplyConferenceUpdate(conf, &ConferenceForm{EndDate: "12/06/2025"})
	require.ErrorIs(t, err, domain.ErrMalformedDate)
}
