package usecases

import (
	"context"

	"insurance-server/internal/insurance/domain"
)

//go:generate mockgen -source=./api.go -destination=../../../test/unit/doubles/insurance/usecases/api_mock.go -package=usecases -mock_names=FormService=MockFormService,SubmissionService=MockSubmissionService

type FormService interface {
	AllForms(context.Context) ([]domain.FormStructure, error)
	FormByType(context.Context, string) (domain.FormStructure, error)
	TemplateCount(context.Context) (int64, error)
	RefreshCache(context.Context) error
}

// SubmitCommand is an incoming submission before its type is resolved.
type SubmitCommand struct {
	TemplateID int64
	Type       string
	Data       domain.Values
}

type SubmissionService interface {
	Submit(context.Context, SubmitCommand) (domain.Submission, error)
	List(context.Context, string) ([]domain.Row, error)
	Columns() []string
}
