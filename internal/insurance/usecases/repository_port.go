package usecases

import (
	"context"
	"errors"

	"insurance-server/internal/insurance/domain"
)

//go:generate mockgen -source=repository_port.go -destination=../../../test/unit/doubles/insurance/usecases/repository_port_mock.go -package=usecases -mock_names=TemplateRepository=MockTemplateRepository,SubmissionRepository=MockSubmissionRepository

var (
	ErrTemplateNotFound   = errors.New("form template not found")
	ErrTemplateDuplicated = errors.New("form template already exists")
)

type TemplateRepository interface {
	FindAll(context.Context) ([]domain.TemplateRecord, error)
	FindByType(context.Context, string) (domain.TemplateRecord, error)
	Get(context.Context, int64) (domain.TemplateRecord, error)
	Count(context.Context) (int64, error)
	Create(context.Context, domain.TemplateRecord) (domain.TemplateRecord, error)
}

type SubmissionRepository interface {
	Create(context.Context, domain.Submission) (domain.Submission, error)
	// FindAll returns submissions newest first. An empty type matches all.
	FindAll(context.Context, string) ([]domain.Submission, error)
}
