package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"insurance-server/internal/insurance/domain"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var _columnDefinitions = []string{"id", "fullName", "email", "age", "type", "status", "createdAt"}

func NewSubmissionService(
	repository SubmissionRepository,
	templates TemplateRepository,
	publisher SubmissionPublisher,
) *SimpleSubmissionService {
	meter := otel.Meter("insurance-server")
	counter, err := meter.Int64Counter(
		"insurance_server.submissions",
		metric.WithDescription("insurance submissions created"),
	)
	if err != nil {
		slog.Warn("creating submissions counter", slog.String("error", err.Error()))
	}

	return &SimpleSubmissionService{
		repository: repository,
		templates:  templates,
		publisher:  publisher,
		counter:    counter,
	}
}

var _ SubmissionService = (*SimpleSubmissionService)(nil)

type SimpleSubmissionService struct {
	repository SubmissionRepository
	templates  TemplateRepository
	publisher  SubmissionPublisher
	counter    metric.Int64Counter
}

// Submit stores the answers as given. Validation is advisory and is not
// enforced here. The type comes from the command, then from the answers,
// then from the template, and is kept on the record only.
func (s *SimpleSubmissionService) Submit(ctx context.Context, cmd SubmitCommand) (domain.Submission, error) {
	if len(cmd.Data) == 0 {
		return domain.Submission{}, domain.ErrEmptyData
	}

	template, err := s.templates.Get(ctx, cmd.TemplateID)
	if errors.Is(err, ErrTemplateNotFound) {
		return domain.Submission{}, ErrTemplateNotFound
	}
	if err != nil {
		return domain.Submission{}, fmt.Errorf("getting template: %w", err)
	}

	formType := resolveType(cmd, template)

	submission, err := domain.NewSubmissionBuilder().
		WithTemplateID(template.ID).
		WithType(formType).
		WithData(cmd.Data).
		Build()
	if err != nil {
		return domain.Submission{}, err
	}

	stored, err := s.repository.Create(ctx, submission)
	if err != nil {
		slog.Error("creating submission", slog.String("error", err.Error()))
		return domain.Submission{}, fmt.Errorf("creating submission: %w", err)
	}

	if s.counter != nil {
		s.counter.Add(ctx, 1, metric.WithAttributes(attribute.String("type", formType)))
	}

	if err := s.publisher.Publish(ctx, stored); err != nil {
		slog.Error("publishing submission",
			slog.Int64("id", stored.ID),
			slog.String("error", err.Error()))
	}

	slog.Info("submission created",
		slog.Int64("id", stored.ID),
		slog.String("type", stored.Type),
		slog.Int64("template_id", stored.TemplateID))

	return stored, nil
}

func resolveType(cmd SubmitCommand, template domain.TemplateRecord) string {
	if cmd.Type != "" {
		return cmd.Type
	}
	if value, ok := cmd.Data.Get("type"); ok {
		if str, isString := value.Str(); isString && str != "" {
			return str
		}
	}
	return template.Type
}

func (s *SimpleSubmissionService) List(ctx context.Context, formType string) ([]domain.Row, error) {
	submissions, err := s.repository.FindAll(ctx, formType)
	if err != nil {
		return nil, fmt.Errorf("listing submissions: %w", err)
	}

	rows := make([]domain.Row, len(submissions))
	for i, submission := range submissions {
		rows[i] = submission.Row()
	}
	return rows, nil
}

func (s *SimpleSubmissionService) Columns() []string {
	return append([]string(nil), _columnDefinitions...)
}
