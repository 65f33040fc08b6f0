package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pec-events/portal/internal/model"
	"github.com/pec-events/portal/internal/store"
)

// ListEvents returns the full festival calendar.
func (p *Portal) ListEvents(ctx context.Context) ([]model.Event, error) {
	return p.store.Events().List(ctx)
}

// GetEvent returns a single event or store.ErrNotFound.
func (p *Portal) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	return p.store.Events().GetByID(ctx, id)
}

// JudgeEvents returns all events the judge is assigned to.
func (p *Portal) JudgeEvents(ctx context.Context, judgeID string) ([]model.Event, error) {
	return p.store.Events().ListByJudge(ctx, judgeID)
}

// ListUsers returns every user record.
func (p *Portal) ListUsers(ctx context.Context) ([]model.User, error) {
	return p.store.Users().List(ctx)
}

// UpdateProfilePicture changes a user's profile picture and returns the
// updated record, or store.ErrNotFound for an unknown user.
func (p *Portal) UpdateProfilePicture(ctx context.Context, userID, imageURL string) (*model.User, error) {
	user, err := p.store.Users().UpdateProfilePicture(ctx, userID, imageURL)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("update profile picture: %w", err)
	}
	p.logger.InfoContext(ctx, "profile picture updated", "user_id", userID)
	return user, nil
}

// StudentRegistrations returns all of a student's registrations, each
// enriched with its event. A registration whose event no longer
// resolves keeps a nil event rather than failing the query.
func (p *Portal) StudentRegistrations(ctx context.Context, studentID string) ([]model.StudentRegistration, error) {
	regs, err := p.store.Registrations().ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	out := make([]model.StudentRegistration, 0, len(regs))
	for _, reg := range regs {
		enriched := model.StudentRegistration{Registration: reg}
		if event, err := p.store.Events().GetByID(ctx, reg.EventID); err == nil {
			enriched.Event = event
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("resolve event: %w", err)
		}
		out = append(out, enriched)
	}
	return out, nil
}

// PendingRequests returns every pending registration owned by a student
// of the given house, enriched with student and event for review.
func (p *Portal) PendingRequests(ctx context.Context, house model.House) ([]model.PendingRequest, error) {
	pending, err := p.store.Registrations().ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending registrations: %w", err)
	}

	out := make([]model.PendingRequest, 0, len(pending))
	for _, reg := range pending {
		student, err := p.store.Users().GetByID(ctx, reg.StudentID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("resolve student: %w", err)
		}
		if student.House != house {
			continue
		}

		request := model.PendingRequest{Registration: reg, Student: student}
		if event, err := p.store.Events().GetByID(ctx, reg.EventID); err == nil {
			request.Event = event
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("resolve event: %w", err)
		}
		out = append(out, request)
	}
	return out, nil
}

// EventParticipants returns the event's active registrations (Approved
// or Registered), each enriched with its student.
func (p *Portal) EventParticipants(ctx context.Context, eventID string) ([]model.EventParticipant, error) {
	regs, err := p.store.Registrations().ListByEvent(ctx, eventID, true)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}

	out := make([]model.EventParticipant, 0, len(regs))
	for _, reg := range regs {
		participant := model.EventParticipant{Registration: reg}
		if student, err := p.store.Users().GetByID(ctx, reg.StudentID); err == nil {
			participant.Student = student
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("resolve student: %w", err)
		}
		out = append(out, participant)
	}
	return out, nil
}
