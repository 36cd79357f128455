package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/aliskhannn/learn-scripting/internal/domain/entities"
	"github.com/aliskhannn/learn-scripting/internal/domain/projection"
)

// StatsReport is the platform counters with their origin.
type StatsReport struct {
	Stats   entities.Stats
	Offline bool
}

// RankingReport is the leaderboard with its origin.
type RankingReport struct {
	Rows    []entities.RankingEntry
	Offline bool
}

type StatsService struct {
	api     API
	lessons *LessonService
	log     *zap.Logger
}

func NewStatsService(api API, lessons *LessonService, log *zap.Logger) *StatsService {
	return &StatsService{api: api, lessons: lessons, log: log}
}

// Stats returns live counters; zero or missing values are replaced by defaults.
func (s *StatsService) Stats(ctx context.Context, l *Learner) StatsReport {
	loggedIn := l.Session().IsLoggedIn

	stats, err := s.api.Stats(ctx)
	if err != nil {
		s.log.Warn("stats unavailable", zap.Error(err))
		return StatsReport{Stats: entities.FallbackStats(loggedIn), Offline: true}
	}
	return StatsReport{Stats: stats.WithDefaults(loggedIn)}
}

// Ranking returns the server leaderboard or the fixed offline one with the learner added.
func (s *StatsService) Ranking(ctx context.Context, l *Learner) RankingReport {
	rows, err := s.api.Ranking(ctx)
	if err != nil {
		s.log.Warn("ranking unavailable", zap.Error(err))
		return RankingReport{
			Rows:    projection.FallbackRanking(l.Session()),
			Offline: true,
		}
	}

	projection.SortRanking(rows)
	return RankingReport{Rows: rows}
}

// Dashboard projects the learner's progress against the known catalog sizes.
func (s *StatsService) Dashboard(l *Learner) projection.Dashboard {
	return projection.BuildDashboard(l.Progress.Snapshot(), s.lessons.CatalogSizes())
}
