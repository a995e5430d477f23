// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"context"
	"log/slog"
	"sort"

	"github.com/danielhkuo/ballot-box/models"
)

// Store is the read side of *store.Store.
type Store interface {
	ListCandidates(ctx context.Context) ([]models.Candidate, error)
	Inconsistencies(ctx context.Context) ([]string, error)
}

// Engine derives results from the stored per-candidate counters.
// It never writes.
type Engine struct {
	store  Store
	logger *slog.Logger
}

func NewEngine(s Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{store: s, logger: logger}
}

// GetCandidates returns all candidates ordered by position, then vote count
// descending, then creation order.
func (e *Engine) GetCandidates(ctx context.Context) ([]models.Candidate, error) {
	candidates, err := e.store.ListCandidates(ctx)
	if err != nil {
		e.logger.Error("failed to list candidates", "error", err)
		return nil, err
	}
	return candidates, nil
}

// GetResults computes per-position totals and each voted-for candidate's
// share of its position, rounded to two decimals.
//
// Every position with candidates appears in PositionTotals. Only candidates
// with at least one vote appear in Results, so positions with no votes have
// totals but no percentages.
func (e *Engine) GetResults(ctx context.Context) (models.Results, error) {
	candidates, err := e.store.ListCandidates(ctx)
	if err != nil {
		e.logger.Error("failed to compute results", "error", err)
		return models.Results{}, err
	}
	return Compute(candidates), nil
}

// Verify lists any disagreement between the denormalized counters/flags and
// the vote records. An empty slice means the ballot state is consistent.
func (e *Engine) Verify(ctx context.Context) ([]string, error) {
	problems, err := e.store.Inconsistencies(ctx)
	if err != nil {
		e.logger.Error("failed to verify tally", "error", err)
		return nil, err
	}
	if len(problems) > 0 {
		e.logger.Warn("tally inconsistencies found", "count", len(problems))
	}
	return problems, nil
}

// Compute builds Results from candidates already ordered by position and
// vote count, as ListCandidates returns them.
func Compute(candidates []models.Candidate) models.Results {
	results := models.Results{
		Results:        []models.CandidateResult{},
		PositionTotals: []models.PositionTotal{},
	}

	index := map[string]int{}
	voted := [][]models.Candidate{}
	for _, c := range candidates {
		i, ok := index[c.Position]
		if !ok {
			i = len(results.PositionTotals)
			index[c.Position] = i
			results.PositionTotals = append(results.PositionTotals, models.PositionTotal{Position: c.Position})
			voted = append(voted, nil)
		}
		results.PositionTotals[i].TotalVotes += c.VoteCount
		results.PositionTotals[i].CandidateCount++
		if c.VoteCount > 0 {
			voted[i] = append(voted[i], c)
		}
	}

	for _, group := range voted {
		votes := make([]int64, len(group))
		for j, c := range group {
			votes[j] = c.VoteCount
		}
		shares := Shares(votes)
		for j, c := range group {
			results.Results = append(results.Results, models.CandidateResult{
				Position:   c.Position,
				Name:       c.Name,
				Party:      c.Party,
				VoteCount:  c.VoteCount,
				Percentage: shares[j],
			})
		}
	}

	return results
}

// Shares splits 100 among votes in hundredths using largest remainders.
// Each share is within 0.01 of its exact value and a non-empty, non-zero
// input always sums to exactly 100.00. Ties on the remainder go to the
// earlier entry.
func Shares(votes []int64) []float64 {
	shares := make([]float64, len(votes))

	var total int64
	for _, v := range votes {
		total += v
	}
	if total <= 0 {
		return shares
	}

	hundredths := make([]int64, len(votes))
	remainders := make([]int64, len(votes))
	order := make([]int, len(votes))
	left := int64(10000)
	for i, v := range votes {
		hundredths[i] = v * 10000 / total
		remainders[i] = v * 10000 % total
		left -= hundredths[i]
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})
	for _, i := range order[:left] {
		hundredths[i]++
	}

	for i, h := range hundredths {
		shares[i] = float64(h) / 100
	}
	return shares
}
