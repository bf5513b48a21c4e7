package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/edushare/edushare-backend/internal/data/repos"
	"github.com/edushare/edushare-backend/internal/domain"
	"github.com/edushare/edushare-backend/internal/platform/logger"
)

// FilterOptions feeds the client's facet dropdowns.
type FilterOptions struct {
	Subjects []*domain.Subject `json:"subjects"`
	Grades   []*domain.Grade   `json:"grades"`
	Tags     []*domain.Tag     `json:"tags"`
}

type FilterOptionsService interface {
	Options(ctx context.Context, tx *gorm.DB) (*FilterOptions, error)
}

type filterOptionsService struct {
	db          *gorm.DB
	log         *logger.Logger
	subjectRepo repos.SubjectRepo
	gradeRepo   repos.GradeRepo
	tagRepo     repos.TagRepo
}

func NewFilterOptionsService(
	db *gorm.DB,
	baseLog *logger.Logger,
	subjectRepo repos.SubjectRepo,
	gradeRepo repos.GradeRepo,
	tagRepo repos.TagRepo,
) FilterOptionsService {
	return &filterOptionsService{
		db:          db,
		log:         baseLog.With("service", "FilterOptionsService"),
		subjectRepo: subjectRepo,
		gradeRepo:   gradeRepo,
		tagRepo:     tagRepo,
	}
}

// Options fetches the three reference lists concurrently; they are
// independent reads against small tables. A caller-supplied transaction
// forces sequential reads, one tx cannot be shared across goroutines.
func (s *filterOptionsService) Options(ctx context.Context, tx *gorm.DB) (*FilterOptions, error) {
	var out FilterOptions

	if tx != nil {
		var err error
		if out.Subjects, err = s.subjectRepo.GetAll(ctx, tx); err != nil {
			return nil, fmt.Errorf("load subjects: %w", err)
		}
		if out.Grades, err = s.gradeRepo.GetAll(ctx, tx); err != nil {
			return nil, fmt.Errorf("load grades: %w", err)
		}
		if out.Tags, err = s.tagRepo.GetAll(ctx, tx); err != nil {
			return nil, fmt.Errorf("load tags: %w", err)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			subjects, err := s.subjectRepo.GetAll(gctx, s.db)
			if err != nil {
				return fmt.Errorf("load subjects: %w", err)
			}
			out.Subjects = subjects
			return nil
		})
		g.Go(func() error {
			grades, err := s.gradeRepo.GetAll(gctx, s.db)
			if err != nil {
				return fmt.Errorf("load grades: %w", err)
			}
			out.Grades = grades
			return nil
		})
		g.Go(func() error {
			tags, err := s.tagRepo.GetAll(gctx, s.db)
			if err != nil {
				return fmt.Errorf("load tags: %w", err)
			}
			out.Tags = tags
			return nil
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	if out.Subjects == nil {
		out.Subjects = []*domain.Subject{}
	}
	if out.Grades == nil {
		out.Grades = []*domain.Grade{}
	}
	if out.Tags == nil {
		out.Tags = []*domain.Tag{}
	}
	return &out, nil
}
