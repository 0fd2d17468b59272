package service

import (
	"math"

	"github.com/nicolasbonaa/controle-compras/internal/repository"
)

// StatusStat is one entry of the dashboard breakdown.
type StatusStat struct {
	Status     string `json:"status"`
	Quantidade int64  `json:"quantidade"`
	Percentual int    `json:"percentual"`
}

// StatsResult is the full breakdown plus the grand total.
type StatsResult struct {
	Stats []StatusStat `json:"stats"`
	Total int64        `json:"total"`
}

// StatsService derives percentages from the repository's raw counts.
type StatsService interface {
	StatusBreakdown() (*StatsResult, error)
}

type statsService struct {
	repo repository.SolicitacaoRepository
}

// NewStatsService creates the statistics service.
func NewStatsService(repo repository.SolicitacaoRepository) StatsService {
	return &statsService{repo: repo}
}

// StatusBreakdown returns one entry per distinct status, descending by
// count, with percentual = round(count/total*100) and 0 when total is 0.
func (s *statsService) StatusBreakdown() (*StatsResult, error) {
	counts, err := s.repo.StatusBreakdown()
	if err != nil {
		return nil, err
	}

	var total int64
	for _, c := range counts {
		total += c.Count
	}

	stats := make([]StatusStat, 0, len(counts))
	for _, c := range counts {
		percentual := 0
		if total > 0 {
			percentual = int(math.Round(float64(c.Count) / float64(total) * 100))
		}
		stats = append(stats, StatusStat{
			Status:     c.Status,
			Quantidade: c.Count,
			Percentual: percentual,
		})
	}

	return &StatsResult{Stats: stats, Total: total}, nil
}
