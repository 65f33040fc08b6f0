package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/pec-events/portal/internal/messaging"
	"github.com/pec-events/portal/internal/model"
	"github.com/pec-events/portal/internal/store"
)

// SubmitScores applies a judge's batch of score updates. Entries whose
// score does not parse as an integer are dropped, and entries naming an
// unknown registration are skipped; neither case fails the batch. The
// registration ids are trusted to belong to the given event.
func (p *Portal) SubmitScores(ctx context.Context, eventID string, updates []model.ScoreUpdate) error {
	applied := 0
	for _, update := range updates {
		score, err := strconv.Atoi(update.Score)
		if err != nil {
			p.logger.DebugContext(ctx, "dropping non-numeric score",
				"registration_id", update.RegistrationID, "score", update.Score)
			continue
		}

		if err := p.store.Registrations().SetScore(ctx, update.RegistrationID, score); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return fmt.Errorf("set score: %w", err)
		}
		applied++
	}

	p.logger.InfoContext(ctx, "scores submitted",
		"event_id", eventID, "submitted", len(updates), "applied", applied)
	if err := p.publisher.Publish("scores.submitted", messaging.ScoresSubmitted{
		EventID: eventID,
		Applied: applied,
		At:      time.Now().UTC(),
	}); err != nil {
		p.logger.WarnContext(ctx, "failed to publish scores event", "error", err)
	}

	return nil
}
