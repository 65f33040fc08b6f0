package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pec-events/portal/internal/model"
	"github.com/pec-events/portal/internal/store"
)

// Store implements store.Store over a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New constructs a Store.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Users() store.Users                 { return &userStore{pool: s.pool} }
func (s *Store) Events() store.Events               { return &eventStore{pool: s.pool} }
func (s *Store) Registrations() store.Registrations { return &registrationStore{pool: s.pool} }

// ─── Users ────────────────────────────────────────────────────────────────────

type userStore struct {
	pool *pgxpool.Pool
}

const userColumns = `id, name, email, role, house, profile_picture_url, password_hash`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	var house, picture *string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &house, &picture, &u.PasswordHash); err != nil {
		return nil, err
	}
	if house != nil {
		u.House = model.House(*house)
	}
	if picture != nil {
		u.ProfilePictureURL = *picture
	}
	return &u, nil
}

func (r *userStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *userStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func (r *userStore) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *userStore) UpdateProfilePicture(ctx context.Context, id, imageURL string) (*model.User, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET profile_picture_url = $1 WHERE id = $2`, imageURL, id)
	if err != nil {
		return nil, fmt.Errorf("update profile picture: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, store.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// ─── Events ───────────────────────────────────────────────────────────────────

type eventStore struct {
	pool *pgxpool.Pool
}

const eventColumns = `id, name, category, description, rules, event_type, max_participants, assigned_judge_ids, date`

func scanEvent(row pgx.Row) (*model.Event, error) {
	var e model.Event
	if err := row.Scan(&e.ID, &e.Name, &e.Category, &e.Description, &e.Rules,
		&e.EventType, &e.MaxParticipants, &e.AssignedJudgeIDs, &e.Date); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *eventStore) GetByID(ctx context.Context, id string) (*model.Event, error) {
	e, err := scanEvent(r.pool.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

func (r *eventStore) List(ctx context.Context) ([]model.Event, error) {
	return r.query(ctx, `SELECT `+eventColumns+` FROM events ORDER BY date`)
}

func (r *eventStore) ListByJudge(ctx context.Context, judgeID string) ([]model.Event, error) {
	return r.query(ctx,
		`SELECT `+eventColumns+` FROM events WHERE $1 = ANY(assigned_judge_ids) ORDER BY date`,
		judgeID)
}

func (r *eventStore) query(ctx context.Context, sql string, args ...any) ([]model.Event, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// ─── Registrations ────────────────────────────────────────────────────────────

type registrationStore struct {
	pool *pgxpool.Pool
}

const registrationColumns = `id, event_id, student_id, status, score`

func scanRegistration(row pgx.Row) (*model.Registration, error) {
	var reg model.Registration
	if err := row.Scan(&reg.ID, &reg.EventID, &reg.StudentID, &reg.Status, &reg.Score); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Create locks the event row so concurrent requests cannot both pass
// the capacity check. The limit is re-read under the lock; the caller's
// value is only a hint.
func (r *registrationStore) Create(ctx context.Context, eventID, studentID string, status model.RegistrationStatus, maxParticipants int) (reg *model.Registration, err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var limit int
	err = tx.QueryRow(ctx,
		`SELECT max_participants FROM events WHERE id = $1 FOR UPDATE`, eventID,
	).Scan(&limit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("lock event row: %w", err)
	}

	if limit > 0 {
		var active int
		err = tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM registrations
			 WHERE event_id = $1 AND status IN ($2, $3)`,
			eventID, model.StatusApproved, model.StatusRegistered,
		).Scan(&active)
		if err != nil {
			return nil, fmt.Errorf("count active registrations: %w", err)
		}
		if active >= limit {
			return nil, store.ErrEventFull
		}
	}

	reg = &model.Registration{
		ID:        uuid.New().String(),
		EventID:   eventID,
		StudentID: studentID,
		Status:    status,
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO registrations (id, event_id, student_id, status)
		 VALUES ($1, $2, $3, $4)`,
		reg.ID, reg.EventID, reg.StudentID, reg.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("insert registration: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return reg, nil
}

func (r *registrationStore) GetByID(ctx context.Context, id string) (*model.Registration, error) {
	reg, err := scanRegistration(r.pool.QueryRow(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return reg, nil
}

func (r *registrationStore) FindByEventAndStudent(ctx context.Context, eventID, studentID string) (*model.Registration, error) {
	reg, err := scanRegistration(r.pool.QueryRow(ctx,
		`SELECT `+registrationColumns+` FROM registrations
		 WHERE event_id = $1 AND student_id = $2
		 ORDER BY created_at ASC LIMIT 1`,
		eventID, studentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("find registration: %w", err)
	}
	return reg, nil
}

func (r *registrationStore) ListByStudent(ctx context.Context, studentID string) ([]model.Registration, error) {
	return r.query(ctx,
		`SELECT `+registrationColumns+` FROM registrations
		 WHERE student_id = $1 ORDER BY created_at ASC`,
		studentID)
}

func (r *registrationStore) ListByEvent(ctx context.Context, eventID string, activeOnly bool) ([]model.Registration, error) {
	if activeOnly {
		return r.query(ctx,
			`SELECT `+registrationColumns+` FROM registrations
			 WHERE event_id = $1 AND status IN ($2, $3)
			 ORDER BY created_at ASC`,
			eventID, model.StatusApproved, model.StatusRegistered)
	}
	return r.query(ctx,
		`SELECT `+registrationColumns+` FROM registrations
		 WHERE event_id = $1 ORDER BY created_at ASC`,
		eventID)
}

func (r *registrationStore) ListPending(ctx context.Context) ([]model.Registration, error) {
	return r.query(ctx,
		`SELECT `+registrationColumns+` FROM registrations
		 WHERE status = $1 ORDER BY created_at ASC`,
		model.StatusPending)
}

func (r *registrationStore) ListScored(ctx context.Context) ([]model.Registration, error) {
	return r.query(ctx,
		`SELECT `+registrationColumns+` FROM registrations
		 WHERE score IS NOT NULL ORDER BY created_at ASC`)
}

func (r *registrationStore) SetStatus(ctx context.Context, id string, status model.RegistrationStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE registrations SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *registrationStore) SetScore(ctx context.Context, id string, score int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE registrations SET score = $1 WHERE id = $2`, score, id)
	if err != nil {
		return fmt.Errorf("set score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *registrationStore) query(ctx context.Context, sql string, args ...any) ([]model.Registration, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var regs []model.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		regs = append(regs, *reg)
	}
	return regs, rows.Err()
}
