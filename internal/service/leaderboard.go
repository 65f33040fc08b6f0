package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/pec-events/portal/internal/model"
	"github.com/pec-events/portal/internal/store"
)

// Standings computes the house leaderboard: the sum of every scored
// registration, attributed to the owning student's house. All four
// houses always appear; houses with no scored registrations stay at
// zero. The year is echoed back but does not filter records yet; all
// historical scores count.
func (p *Portal) Standings(ctx context.Context, year int) (*model.Leaderboard, error) {
	scored, err := p.store.Registrations().ListScored(ctx)
	if err != nil {
		return nil, fmt.Errorf("list scored registrations: %w", err)
	}

	totals := make(map[model.House]int, 4)
	for _, house := range model.Houses() {
		totals[house] = 0
	}

	for _, reg := range scored {
		student, err := p.store.Users().GetByID(ctx, reg.StudentID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("resolve student: %w", err)
		}
		if !student.House.Valid() {
			continue
		}
		totals[student.House] += *reg.Score
	}

	scores := make([]model.HouseScore, 0, len(totals))
	for _, house := range model.Houses() {
		scores = append(scores, model.HouseScore{House: house, Score: totals[house]})
	}
	// Ties keep the canonical house order.
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	return &model.Leaderboard{Year: year, Scores: scores}, nil
}
