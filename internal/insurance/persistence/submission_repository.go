package persistence

import (
	"context"
	"fmt"
	"log/slog"

	"insurance-server/internal/infra/sql"
	"insurance-server/internal/insurance/domain"
	"insurance-server/internal/insurance/persistence/internal"
	"insurance-server/internal/insurance/usecases"
)

func NewSubmissionRepository(orm sql.ORM) (*SimpleSubmissionRepository, error) {
	err := orm.AutoMigrate(&internal.FormSubmission{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleSubmissionRepository{
		orm: orm,
	}, nil
}

var _ usecases.SubmissionRepository = (*SimpleSubmissionRepository)(nil)

type SimpleSubmissionRepository struct {
	orm sql.ORM
}

func (r *SimpleSubmissionRepository) Create(ctx context.Context, submission domain.Submission) (domain.Submission, error) {
	entity, err := internal.FromSubmission(submission)
	if err != nil {
		return domain.Submission{}, err
	}

	if err := r.orm.WithContext(ctx).Create(&entity).Error(); err != nil {
		return domain.Submission{}, fmt.Errorf("inserting submission: %w", err)
	}

	submission.ID = entity.ID
	return submission, nil
}

// FindAll skips rows whose payload no longer decodes instead of failing the
// whole listing.
func (r *SimpleSubmissionRepository) FindAll(ctx context.Context, formType string) ([]domain.Submission, error) {
	query := r.orm.WithContext(ctx)
	if formType != "" {
		query = query.Where("type = ?", formType)
	}

	var entities []internal.FormSubmission
	err := query.
		Order("created_at desc, id desc").
		Find(&entities).
		Error()
	if err != nil {
		return nil, fmt.Errorf("database query: %w", err)
	}

	submissions := make([]domain.Submission, 0, len(entities))
	for _, entity := range entities {
		submission, err := entity.ToDomain()
		if err != nil {
			slog.Error("skipping unreadable submission",
				slog.Int64("id", entity.ID),
				slog.String("error", err.Error()))
			continue
		}
		submissions = append(submissions, submission)
	}
	return submissions, nil
}
