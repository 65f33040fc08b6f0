// Package memory implements the portal store over in-process
// collections. It is the canonical store: state lives in memory and is
// lost on restart, matching the behavior the portal was built around.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/pec-events/portal/internal/model"
	"github.com/pec-events/portal/internal/store"
)

// Store holds all three record collections behind one mutex so the
// capacity check-then-insert runs as a single critical section.
type Store struct {
	mu            sync.RWMutex
	users         []model.User
	events        []model.Event
	registrations []model.Registration
}

// New constructs an empty Store.
func New() *Store {
	return &Store{}
}

func (s *Store) Users() store.Users                 { return (*userStore)(s) }
func (s *Store) Events() store.Events               { return (*eventStore)(s) }
func (s *Store) Registrations() store.Registrations { return (*registrationStore)(s) }

// AddUser inserts a user record. Used by seeding and tests.
func (s *Store) AddUser(u model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, u)
}

// AddEvent inserts an event record. Used by seeding and tests.
func (s *Store) AddEvent(e model.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

// AddRegistration inserts a registration record as-is, bypassing the
// capacity check. Used by seeding and tests.
func (s *Store) AddRegistration(r model.Registration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registrations = append(s.registrations, r)
}

// ─── Users ────────────────────────────────────────────────────────────────────

type userStore Store

func (s *userStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].Email == email {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *userStore) List(ctx context.Context) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.users), nil
}

func (s *userStore) UpdateProfilePicture(ctx context.Context, id, imageURL string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].ProfilePictureURL = imageURL
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

// ─── Events ───────────────────────────────────────────────────────────────────

type eventStore Store

func (s *eventStore) GetByID(ctx context.Context, id string) (*model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.events {
		if s.events[i].ID == id {
			e := s.events[i]
			return &e, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *eventStore) List(ctx context.Context) ([]model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.events), nil
}

func (s *eventStore) ListByJudge(ctx context.Context, judgeID string) ([]model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var events []model.Event
	for i := range s.events {
		if slices.Contains(s.events[i].AssignedJudgeIDs, judgeID) {
			events = append(events, s.events[i])
		}
	}
	return events, nil
}

// ─── Registrations ────────────────────────────────────────────────────────────

type registrationStore Store

func (s *registrationStore) Create(ctx context.Context, eventID, studentID string, status model.RegistrationStatus, maxParticipants int) (*model.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if maxParticipants > 0 {
		active := 0
		for i := range s.registrations {
			if s.registrations[i].EventID == eventID && s.registrations[i].Status.Active() {
				active++
			}
		}
		if active >= maxParticipants {
			return nil, store.ErrEventFull
		}
	}

	reg := model.Registration{
		ID:        uuid.New().String(),
		EventID:   eventID,
		StudentID: studentID,
		Status:    status,
	}
	s.registrations = append(s.registrations, reg)
	return &reg, nil
}

func (s *registrationStore) GetByID(ctx context.Context, id string) (*model.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.registrations {
		if s.registrations[i].ID == id {
			r := s.registrations[i]
			return &r, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *registrationStore) FindByEventAndStudent(ctx context.Context, eventID, studentID string) (*model.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.registrations {
		if s.registrations[i].EventID == eventID && s.registrations[i].StudentID == studentID {
			r := s.registrations[i]
			return &r, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *registrationStore) ListByStudent(ctx context.Context, studentID string) ([]model.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var regs []model.Registration
	for i := range s.registrations {
		if s.registrations[i].StudentID == studentID {
			regs = append(regs, s.registrations[i])
		}
	}
	return regs, nil
}

func (s *registrationStore) ListByEvent(ctx context.Context, eventID string, activeOnly bool) ([]model.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var regs []model.Registration
	for i := range s.registrations {
		if s.registrations[i].EventID != eventID {
			continue
		}
		if activeOnly && !s.registrations[i].Status.Active() {
			continue
		}
		regs = append(regs, s.registrations[i])
	}
	return regs, nil
}

func (s *registrationStore) ListPending(ctx context.Context) ([]model.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var regs []model.Registration
	for i := range s.registrations {
		if s.registrations[i].Status == model.StatusPending {
			regs = append(regs, s.registrations[i])
		}
	}
	return regs, nil
}

func (s *registrationStore) ListScored(ctx context.Context) ([]model.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var regs []model.Registration
	for i := range s.registrations {
		if s.registrations[i].Scored() {
			regs = append(regs, s.registrations[i])
		}
	}
	return regs, nil
}

func (s *registrationStore) SetStatus(ctx context.Context, id string, status model.RegistrationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.registrations {
		if s.registrations[i].ID == id {
			s.registrations[i].Status = status
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *registrationStore) SetScore(ctx context.Context, id string, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.registrations {
		if s.registrations[i].ID == id {
			sc := score
			s.registrations[i].Score = &sc
			return nil
		}
	}
	return store.ErrNotFound
}
