package services

import (
	"context"
	"time"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
)

type mockProfileRepository struct {
	profiles map[string]*domain.Profile
	err      error
}

func (m *mockProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	if m.err != nil {
		return m.err
	}
	if m.profiles == nil {
		m.profiles = map[string]*domain.Profile{}
	}
	m.profiles[profile.ID] = profile
	return nil
}

func (m *mockProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	profile, ok := m.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return profile, nil
}

func (m *mockProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.profiles[profile.ID]; !ok {
		return domain.ErrNotFound
	}
	m.profiles[profile.ID] = profile
	return nil
}

type mockConferenceRepository struct {
	conferences   map[string]*domain.Conference
	nearlySoldOut []*domain.Conference
	queried       *query.Compiled
	err           error
}

func (m *mockConferenceRepository) Create(ctx context.Context, conf *domain.Conference) error {
	if m.err != nil {
		return m.err
	}
	conf.ID = "conf-new"
	if m.conferences == nil {
		m.conferences = map[string]*domain.Conference{}
	}
	m.conferences[conf.ID] = conf
	return nil
}

func (m *mockConferenceRepository) GetByID(ctx context.Context, id string) (*domain.Conference, error) {
	if m.err != nil {
		return nil, m.err
	}
	conf, ok := m.conferences[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return conf, nil
}

func (m *mockConferenceRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Conference, error) {
	var out []*domain.Conference
	for _, id := range ids {
		if conf, ok := m.conferences[id]; ok {
			out = append(out, conf)
		}
	}
	return out, nil
}

func (m *mockConferenceRepository) ListByOrganizer(ctx context.Context, organizerID string) ([]*domain.Conference, error) {
	var out []*domain.Conference
	for _, conf := range m.conferences {
		if conf.OrganizerID == organizerID {
			out = append(out, conf)
		}
	}
	return out, nil
}

func (m *mockConferenceRepository) Update(ctx context.Context, conf *domain.Conference) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.conferences[conf.ID]; !ok {
		return domain.ErrNotFound
	}
	m.conferences[conf.ID] = conf
	return nil
}

func (m *mockConferenceRepository) Query(ctx context.Context, q *query.Compiled) ([]*domain.Conference, error) {
	m.queried = q
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Conference
	for _, conf := range m.conferences {
		out = append(out, conf)
	}
	return out, nil
}

func (m *mockConferenceRepository) ListNearlySoldOut(ctx context.Context, threshold int) ([]*domain.Conference, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.nearlySoldOut, nil
}

type mockRegistrationRepository struct {
	registered map[string]bool
	seats      map[string]int
	byProfile  map[string][]string
	err        error
}

func (m *mockRegistrationRepository) Register(ctx context.Context, profileID, conferenceID string) error {
	if m.err != nil {
		return m.err
	}
	key := profileID + ":" + conferenceID
	if m.registered[key] {
		return domain.ErrAlreadyRegistered
	}
	if m.seats[conferenceID] <= 0 {
		return domain.ErrNoSeatsAvailable
	}
	if m.registered == nil {
		m.registered = map[string]bool{}
	}
	m.registered[key] = true
	m.seats[conferenceID]--
	return nil
}

func (m *mockRegistrationRepository) Unregister(ctx context.Context, profileID, conferenceID string) (bool, error) {
	key := profileID + ":" + conferenceID
	if !m.registered[key] {
		return false, nil
	}
	delete(m.registered, key)
	m.seats[conferenceID]++
	return true, nil
}

func (m *mockRegistrationRepository) ListConferenceIDs(ctx context.Context, profileID string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byProfile[profileID], nil
}

type mockSessionRepository struct {
	sessions          map[string]*domain.Session
	bySpeakerInConf   []*domain.Session
	byStartTimeTypes  []*domain.Session
	gotStartTimeTypes []string
	err               error
}

func (m *mockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if m.err != nil {
		return m.err
	}
	session.ID = "sess-new"
	if m.sessions == nil {
		m.sessions = map[string]*domain.Session{}
	}
	m.sessions[session.ID] = session
	return nil
}

func (m *mockSessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	sess, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return sess, nil
}

func (m *mockSessionRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Session, error) {
	var out []*domain.Session
	for _, id := range ids {
		if sess, ok := m.sessions[id]; ok {
			out = append(out, sess)
		}
	}
	return out, nil
}

func (m *mockSessionRepository) ListByConference(ctx context.Context, conferenceID, typeOfSession string) ([]*domain.Session, error) {
	var out []*domain.Session
	for _, sess := range m.sessions {
		if sess.ConferenceID != conferenceID {
			continue
		}
		if typeOfSession != "" && sess.TypeOfSession != typeOfSession {
			continue
		}
		out = append(out, sess)
	}
	return out, nil
}

func (m *mockSessionRepository) ListBySpeaker(ctx context.Context, speakerID string) ([]*domain.Session, error) {
	var out []*domain.Session
	for _, sess := range m.sessions {
		if sess.SpeakerID == speakerID {
			out = append(out, sess)
		}
	}
	return out, nil
}

func (m *mockSessionRepository) ListByTypes(ctx context.Context, types []string) ([]*domain.Session, error) {
	return nil, nil
}

func (m *mockSessionRepository) ListByStartTime(ctx context.Context, conferenceID string, after time.Time) ([]*domain.Session, error) {
	return nil, nil
}

func (m *mockSessionRepository) ListByStartTimeAndTypes(ctx context.Context, after time.Time, types []string) ([]*domain.Session, error) {
	m.gotStartTimeTypes = types
	return m.byStartTimeTypes, nil
}

func (m *mockSessionRepository) ListBySpeakerInConference(ctx context.Context, conferenceID, speakerID string) ([]*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.bySpeakerInConf, nil
}

type mockSpeakerRepository struct {
	speakers map[string]*domain.Speaker
	err      error
}

func (m *mockSpeakerRepository) Create(ctx context.Context, speaker *domain.Speaker) error {
	if m.err != nil {
		return m.err
	}
	speaker.ID = "spk-new"
	return nil
}

func (m *mockSpeakerRepository) GetByID(ctx context.Context, id string) (*domain.Speaker, error) {
	speaker, ok := m.speakers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return speaker, nil
}

func (m *mockSpeakerRepository) Search(ctx context.Context, name, email string) ([]*domain.Speaker, error) {
	return nil, nil
}

type mockWishlistRepository struct {
	items     map[string]bool
	byProfile map[string][]string
}

func (m *mockWishlistRepository) Add(ctx context.Context, profileID, sessionID string) error {
	key := profileID + ":" + sessionID
	if m.items[key] {
		return domain.ErrAlreadyInWishlist
	}
	if m.items == nil {
		m.items = map[string]bool{}
	}
	m.items[key] = true
	return nil
}

func (m *mockWishlistRepository) Remove(ctx context.Context, profileID, sessionID string) (bool, error) {
	key := profileID + ":" + sessionID
	if !m.items[key] {
		return false, nil
	}
	delete(m.items, key)
	return true, nil
}

func (m *mockWishlistRepository) ListSessionIDs(ctx context.Context, profileID string) ([]string, error) {
	return m.byProfile[profileID], nil
}

type mockCache struct {
	values map[string]string
	err    error
}

func (m *mockCache) Get(ctx context.Context, key string) (string, bool, error) {
	if m.err != nil {
		return "", false, m.err
	}
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *mockCache) Set(ctx context.Context, key, value string) error {
	if m.err != nil {
		return m.err
	}
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	delete(m.values, key)
	return nil
}

type queuedTask struct {
	name   string
	params map[string]string
}

type mockTaskQueue struct {
	submitted []queuedTask
	err       error
}

func (m *mockTaskQueue) Submit(ctx context.Context, name string, params map[string]string) error {
	if m.err != nil {
		return m.err
	}
	m.submitted = append(m.submitted, queuedTask{name: name, params: params})
	return nil
}
