package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/derin/classpanel/internal/app/models"
	"github.com/derin/classpanel/internal/app/repositories"
)

// DefaultLatestLimit bounds the latest-items lists when no limit is given.
const DefaultLatestLimit = 5

// StatsService implements dashboard aggregate logic
type StatsService struct {
	statsRepo repositories.StatsStore
}

// NewStatsService creates a new stats service
func NewStatsService(statsRepo repositories.StatsStore) *StatsService {
	return &StatsService{statsRepo: statsRepo}
}

// Overview returns the entity counts for the dashboard header. The counts
// touch independent tables and run concurrently.
func (s *StatsService) Overview(ctx context.Context) (*models.OverviewStats, error) {
	var stats models.OverviewStats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.Users, err = s.statsRepo.CountUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Teachers, err = s.statsRepo.CountUsersByRole(gctx, models.RoleTeacher)
		return err
	})
	g.Go(func() (err error) {
		stats.Admins, err = s.statsRepo.CountUsersByRole(gctx, models.RoleAdmin)
		return err
	})
	g.Go(func() (err error) {
		stats.Subjects, err = s.statsRepo.CountSubjects(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Departments, err = s.statsRepo.CountDepartments(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Classes, err = s.statsRepo.CountClasses(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &stats, nil
}

// Latest returns the most recent classes and teachers. The default for an
// absent limit is the caller's concern; an explicit non-positive value is
// floored at 1.
func (s *StatsService) Latest(ctx context.Context, limit int) (*models.LatestStats, error) {
	if limit < 1 {
		limit = 1
	}

	var stats models.LatestStats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.LatestClasses, err = s.statsRepo.LatestClasses(gctx, limit)
		return err
	})
	g.Go(func() (err error) {
		stats.LatestTeachers, err = s.statsRepo.LatestTeachers(gctx, limit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &stats, nil
}

// Charts returns the grouped aggregates behind the dashboard charts.
func (s *StatsService) Charts(ctx context.Context) (*models.ChartStats, error) {
	var stats models.ChartStats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.UsersByRole, err = s.statsRepo.UsersByRole(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.SubjectsByDepartment, err = s.statsRepo.SubjectsByDepartment(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.ClassesBySubject, err = s.statsRepo.ClassesBySubject(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &stats, nil
}
