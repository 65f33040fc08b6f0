package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pec-events/portal/internal/store"
)

// Seed inserts the bootstrap fixture set when the users table is empty.
// Re-running against a populated database is a no-op.
func Seed(ctx context.Context, pool *pgxpool.Pool, password string) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	fixture, err := store.NewFixture(password)
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	for _, u := range fixture.Users {
		var house, picture *string
		if u.House != "" {
			h := string(u.House)
			house = &h
		}
		if u.ProfilePictureURL != "" {
			p := u.ProfilePictureURL
			picture = &p
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO users (id, name, email, role, house, profile_picture_url, password_hash)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			u.ID, u.Name, u.Email, u.Role, house, picture, u.PasswordHash,
		)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}

	for _, e := range fixture.Events {
		_, err = tx.Exec(ctx,
			`INSERT INTO events (id, name, category, description, rules, event_type, max_participants, assigned_judge_ids, date)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			e.ID, e.Name, e.Category, e.Description, e.Rules, e.EventType,
			e.MaxParticipants, e.AssignedJudgeIDs, e.Date,
		)
		if err != nil {
			return fmt.Errorf("seed event %s: %w", e.ID, err)
		}
	}

	for _, r := range fixture.Registrations {
		_, err = tx.Exec(ctx,
			`INSERT INTO registrations (id, event_id, student_id, status, score)
			 VALUES ($1, $2, $3, $4, $5)`,
			r.ID, r.EventID, r.StudentID, r.Status, r.Score,
		)
		if err != nil {
			return fmt.Errorf("seed registration %s: %w", r.ID, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
