package services

import (
	"context"
	"errors"
	"testing"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
)

func TestConferenceService_Create(t *testing.T) {
	ctx := context.Background()
	id := domain.Identity{UserID: "u1", Email: "u1@example.com", Nickname: "Uma"}

	confRepo := &mockConferenceRepository{}
	profRepo := &mockProfileRepository{}
	queue := &mockTaskQueue{}
	svc := NewConferenceService(confRepo, profRepo, queue)

	conf := &domain.Conference{Name: "GopherCon"}
	if err := svc.Create(ctx, id, conf, "GopherCon in Denver"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if conf.OrganizerID != "u1" {
		t.Errorf("OrganizerID = %q, want %q", conf.OrganizerID, "u1")
	}
	// First authenticated access creates the profile.
	profile, ok := profRepo.profiles["u1"]
	if !ok {
		t.Fatal("profile was not created")
	}
	if profile.DisplayName != "Uma" {
		t.Errorf("DisplayName = %q, want %q", profile.DisplayName, "Uma")
	}
	if profile.TeeShirtSize != domain.TeeShirtSizeNotSpecified {
		t.Errorf("TeeShirtSize = %q, want %q", profile.TeeShirtSize, domain.TeeShirtSizeNotSpecified)
	}

	if len(queue.submitted) != 1 {
		t.Fatalf("submitted %d tasks, want 1", len(queue.submitted))
	}
	task := queue.submitted[0]
	if task.name != domain.TaskSendConfirmationEmail {
		t.Errorf("task name = %q, want %q", task.name, domain.TaskSendConfirmationEmail)
	}
	if task.params["email"] != "u1@example.com" || task.params["conferenceInfo"] != "GopherCon in Denver" {
		t.Errorf("task params = %v", task.params)
	}
}

func TestConferenceService_Update(t *testing.T) {
	ctx := context.Background()

	setup := func() (domain.ConferenceService, *mockConferenceRepository) {
		confRepo := &mockConferenceRepository{conferences: map[string]*domain.Conference{
			"c1": {ID: "c1", Name: "GopherCon", OrganizerID: "u1"},
		}}
		profRepo := &mockProfileRepository{profiles: map[string]*domain.Profile{
			"u1": {ID: "u1", DisplayName: "Uma"},
		}}
		return NewConferenceService(confRepo, profRepo, &mockTaskQueue{}), confRepo
	}

	t.Run("owner updates", func(t *testing.T) {
		svc, confRepo := setup()
		got, err := svc.Update(ctx, domain.Identity{UserID: "u1"}, "c1", func(c *domain.Conference) error {
			c.Name = "GopherCon 2026"
			return nil
		})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if got.Conference.Name != "GopherCon 2026" {
			t.Errorf("Name = %q, want %q", got.Conference.Name, "GopherCon 2026")
		}
		if confRepo.conferences["c1"].Name != "GopherCon 2026" {
			t.Error("update was not persisted")
		}
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		svc, _ := setup()
		_, err := svc.Update(ctx, domain.Identity{UserID: "intruder"}, "c1", func(c *domain.Conference) error {
			return nil
		})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("Update() error = %v, want ErrForbidden", err)
		}
	})

	t.Run("unknown conference", func(t *testing.T) {
		svc, _ := setup()
		_, err := svc.Update(ctx, domain.Identity{UserID: "u1"}, "c-missing", func(c *domain.Conference) error {
			return nil
		})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("Update() error = %v, want ErrNotFound", err)
		}
	})
}

func TestConferenceService_QueryConferences(t *testing.T) {
	ctx := context.Background()

	confRepo := &mockConferenceRepository{conferences: map[string]*domain.Conference{
		"c1": {ID: "c1", Name: "GopherCon", OrganizerID: "u1", City: "London"},
	}}
	profRepo := &mockProfileRepository{profiles: map[string]*domain.Profile{
		"u1": {ID: "u1", DisplayName: "Uma"},
	}}
	svc := NewConferenceService(confRepo, profRepo, &mockTaskQueue{})

	t.Run("compiles and resolves organizers", func(t *testing.T) {
		got, err := svc.QueryConferences(ctx, []query.Filter{
			{Field: "CITY", Operator: "EQ", Value: "London"},
		})
		if err != nil {
			t.Fatalf("QueryConferences() error = %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("returned %d conferences, want 1", len(got))
		}
		if got[0].DisplayName != "Uma" {
			t.Errorf("DisplayName = %q, want %q", got[0].DisplayName, "Uma")
		}
		if confRepo.queried == nil || len(confRepo.queried.Conditions) != 1 {
			t.Fatalf("compiled query not passed through: %+v", confRepo.queried)
		}
	})

	t.Run("conflicting inequalities fail before the store", func(t *testing.T) {
		_, err := svc.QueryConferences(ctx, []query.Filter{
			{Field: "CITY", Operator: "GT", Value: "London"},
			{Field: "MONTH", Operator: "LT", Value: "6"},
		})
		if !errors.Is(err, query.ErrInequalityConflict) {
			t.Errorf("QueryConferences() error = %v, want ErrInequalityConflict", err)
		}
	})
}
