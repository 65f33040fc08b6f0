package memory

import (
	"github.com/pec-events/portal/internal/store"
)

// Seed loads the bootstrap fixture set into the store.
func Seed(s *Store, password string) error {
	fixture, err := store.NewFixture(password)
	if err != nil {
		return err
	}
	for _, u := range fixture.Users {
		s.AddUser(u)
	}
	for _, e := range fixture.Events {
		s.AddEvent(e)
	}
	for _, r := range fixture.Registrations {
		s.AddRegistration(r)
	}
	return nil
}
