package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pec-events/portal/internal/messaging"
	"github.com/pec-events/portal/internal/model"
	"github.com/pec-events/portal/internal/store"
)

// RegisterForEvent creates a registration for the student. Normal
// events register immediately; permission-required events start as
// Pending until a house admin decides. The event type is taken from the
// caller, which derives it from the event being registered for.
//
// Returns store.ErrNotFound when the event does not exist and
// store.ErrEventFull when the event's capacity is already reached by
// Approved and Registered registrations.
func (p *Portal) RegisterForEvent(ctx context.Context, eventID, studentID string, eventType model.EventType) (*model.Registration, error) {
	event, err := p.store.Events().GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("look up event: %w", err)
	}

	status := model.StatusPending
	if eventType == model.EventNormal {
		status = model.StatusRegistered
	}

	reg, err := p.store.Registrations().Create(ctx, eventID, studentID, status, event.MaxParticipants)
	if err != nil {
		if errors.Is(err, store.ErrEventFull) || errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("create registration: %w", err)
	}

	p.logger.InfoContext(ctx, "registration created",
		"registration_id", reg.ID, "event_id", eventID, "student_id", studentID, "status", reg.Status)
	if err := p.publisher.Publish("registrations.created", messaging.RegistrationCreated{
		RegistrationID: reg.ID,
		EventID:        eventID,
		StudentID:      studentID,
		Status:         string(reg.Status),
		At:             time.Now().UTC(),
	}); err != nil {
		p.logger.WarnContext(ctx, "failed to publish registration event", "error", err)
	}

	return reg, nil
}

// DecideRegistration sets a registration to Approved or Rejected. The
// overwrite is unconditional: a record that was already decided, or
// created directly as Registered, is simply overwritten. An unknown id
// returns store.ErrNotFound.
func (p *Portal) DecideRegistration(ctx context.Context, registrationID string, approve bool) error {
	status := model.StatusRejected
	if approve {
		status = model.StatusApproved
	}

	if err := p.store.Registrations().SetStatus(ctx, registrationID, status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrNotFound
		}
		return fmt.Errorf("set registration status: %w", err)
	}

	p.logger.InfoContext(ctx, "registration decided",
		"registration_id", registrationID, "status", status)
	if err := p.publisher.Publish("registrations.decided", messaging.RegistrationDecided{
		RegistrationID: registrationID,
		Status:         string(status),
		At:             time.Now().UTC(),
	}); err != nil {
		p.logger.WarnContext(ctx, "failed to publish decision event", "error", err)
	}

	return nil
}

// RegistrationStatus reports the student's registration status for an
// event. The second return value is false when the student has no
// registration for the event.
func (p *Portal) RegistrationStatus(ctx context.Context, eventID, studentID string) (model.RegistrationStatus, bool, error) {
	reg, err := p.store.Registrations().FindByEventAndStudent(ctx, eventID, studentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("find registration: %w", err)
	}
	return reg.Status, true, nil
}
