package usecase_test

import (
	"context"
	"sort"
	"testing"
	"time"

	profiledto "wearlog/internal/modules/profile/dto"
	profilein "wearlog/internal/modules/profile/port/in"
	"wearlog/internal/modules/tracking/domain"
	trackingin "wearlog/internal/modules/tracking/port/in"
	"wearlog/internal/modules/tracking/service"
	"wearlog/internal/modules/tracking/usecase"
	apperrors "wearlog/internal/platform/errors"
	"wearlog/internal/platform/tx"
)

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time { return c.now }

type memStore struct {
	sessions map[int64]domain.Session
	nextID   int64
}

func newMemStore(sessions ...domain.Session) *memStore {
	m := &memStore{sessions: map[int64]domain.Session{}, nextID: 1}
	for _, s := range sessions {
		if s.ID >= m.nextID {
			m.nextID = s.ID + 1
		}
		m.sessions[s.ID] = s
	}
	return m
}

func (m *memStore) List(_ context.Context) ([]domain.Session, error) {
	out := make([]domain.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (m *memStore) ListBetween(ctx context.Context, start, end time.Time) ([]domain.Session, error) {
	all, _ := m.List(ctx)
	var out []domain.Session
	for _, s := range all {
		if !s.Start.Before(start) && s.Start.Before(end) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) FirstOpen(_ context.Context) (domain.Session, error) {
	for _, s := range m.sessions {
		if s.Open() {
			return s, nil
		}
	}
	return domain.Session{}, apperrors.ErrNoOpenSession
}

func (m *memStore) Create(_ context.Context, s domain.Session) (int64, error) {
	id := m.nextID
	m.nextID++
	s.ID = id
	m.sessions[id] = s
	return id, nil
}

func (m *memStore) Update(_ context.Context, s domain.Session) error {
	m.sessions[s.ID] = s
	return nil
}

func (m *memStore) Delete(_ context.Context, id int64) error {
	delete(m.sessions, id)
	return nil
}

// fakeProfile serves a fixed single-target method. hasProfile and inRange
// steer the two skip paths DayStatus can take.
type fakeProfile struct {
	hasProfile bool
	inRange    bool
}

func (f fakeProfile) Init(context.Context, profiledto.InitInput) (profiledto.ProfileOutput, error) {
	return profiledto.ProfileOutput{}, nil
}

func (f fakeProfile) Show(context.Context) (profiledto.ProfileOutput, error) {
	if !f.hasProfile {
		return profiledto.ProfileOutput{}, apperrors.ErrNoProfile
	}
	return profiledto.ProfileOutput{MethodID: "andro-switch"}, nil
}

func (f fakeProfile) SetMethod(context.Context, string) (profiledto.ProfileOutput, error) {
	return profiledto.ProfileOutput{}, nil
}

func (f fakeProfile) SetPrefs(context.Context, profiledto.SetPrefsInput) (profiledto.ProfileOutput, error) {
	return profiledto.ProfileOutput{}, nil
}

func (f fakeProfile) Methods(context.Context) ([]profiledto.MethodOutput, error) {
	return nil, nil
}

func (f fakeProfile) ObjectiveFor(context.Context, string) (profiledto.MethodOutput, error) {
	return profiledto.MethodOutput{
		ID:           "andro-switch",
		Name:         "Andro-switch ring",
		MinExtra:     18 * time.Hour,
		Min:          20 * time.Hour,
		Max:          20 * time.Hour,
		MaxExtra:     22 * time.Hour,
		SingleTarget: true,
	}, nil
}

func (f fakeProfile) InRange(context.Context, time.Time) (bool, error) {
	return f.inRange, nil
}

var _ profilein.Usecase = fakeProfile{}

func at(hh, mm int) time.Time {
	return time.Date(2024, time.March, 12, hh, mm, 0, 0, time.UTC)
}

func newInteractor(profile fakeProfile, now time.Time, sessions ...domain.Session) trackingin.Usecase {
	store := newMemStore(sessions...)
	svc := service.NewTrackingService(fakeClock{now: now}, store, tx.NoopManager{})
	return usecase.NewInteractor(svc, profile, store)
}

func TestDayStatusWithoutProfile(t *testing.T) {
	t.Parallel()
	now := at(21, 0)
	it := newInteractor(fakeProfile{}, now,
		domain.Session{ID: 1, Start: at(8, 0), End: at(12, 0)})

	out, err := it.DayStatus(context.Background(), now)
	if err != nil {
		t.Fatalf("day status: %v", err)
	}
	if out.Status != "none" {
		t.Fatalf("status = %q, want none", out.Status)
	}
	if out.TotalWearing != 4*time.Hour {
		t.Fatalf("total = %s, want 4h", out.TotalWearing)
	}
	if out.MethodID != "" {
		t.Fatalf("method must stay empty without a profile")
	}
}

func TestDayStatusClassifiesAgainstObjective(t *testing.T) {
	t.Parallel()
	now := at(21, 0)
	it := newInteractor(fakeProfile{hasProfile: true, inRange: true}, now,
		domain.Session{ID: 1, Start: at(1, 0), End: at(21, 0)})

	out, err := it.DayStatus(context.Background(), now)
	if err != nil {
		t.Fatalf("day status: %v", err)
	}
	if out.Status != "reached" {
		t.Fatalf("status = %q, want reached", out.Status)
	}
	if out.Remaining != 0 {
		t.Fatalf("remaining = %s, want 0", out.Remaining)
	}
	if out.Reachability != "reachable" {
		t.Fatalf("reachability = %q, want reachable", out.Reachability)
	}
	if !out.InMethodRange {
		t.Fatalf("expected in-range day")
	}
}

func TestDayStatusOutOfRangeWithoutWearIsNone(t *testing.T) {
	t.Parallel()
	now := at(21, 0)
	it := newInteractor(fakeProfile{hasProfile: true, inRange: false}, now)

	out, err := it.DayStatus(context.Background(), now)
	if err != nil {
		t.Fatalf("day status: %v", err)
	}
	if out.Status != "none" {
		t.Fatalf("status = %q, want none", out.Status)
	}
}

func TestDayStatusOutOfRangeWithWearStillClassifies(t *testing.T) {
	t.Parallel()
	now := at(21, 0)
	it := newInteractor(fakeProfile{hasProfile: true, inRange: false}, now,
		domain.Session{ID: 1, Start: at(1, 0), End: at(20, 0)})

	out, err := it.DayStatus(context.Background(), now)
	if err != nil {
		t.Fatalf("day status: %v", err)
	}
	if out.Status != "warned" {
		t.Fatalf("status = %q, want warned", out.Status)
	}
}

func TestDayStatusSplitsStoredOvernightSession(t *testing.T) {
	t.Parallel()
	now := at(12, 0)
	it := newInteractor(fakeProfile{hasProfile: true, inRange: true}, now,
		domain.Session{ID: 1, Start: at(22, 0).AddDate(0, 0, -1), End: at(2, 0)})

	out, err := it.DayStatus(context.Background(), now)
	if err != nil {
		t.Fatalf("day status: %v", err)
	}
	if out.TotalWearing != 2*time.Hour {
		t.Fatalf("total = %s, want only today's 2h share", out.TotalWearing)
	}
	if len(out.Sessions) != 1 {
		t.Fatalf("sessions on day = %d, want 1", len(out.Sessions))
	}
}
