package communication

import (
	"context"
	"fmt"

	"insurance-server/internal/infra/pubsub"
	"insurance-server/internal/insurance/communication/internal"
	"insurance-server/internal/insurance/domain"
	"insurance-server/internal/insurance/usecases"
)

const SubmissionsTopic pubsub.Topic = "insurance_submissions"

func NewSubmissionPublisher(factory pubsub.PublisherFactory) (*SubmissionPublisher, error) {
	publisher, err := factory.New(SubmissionsTopic, internal.SubmissionEvent{})
	if err != nil {
		return nil, fmt.Errorf("creating publisher: %w", err)
	}
	return &SubmissionPublisher{
		publisher: publisher,
	}, nil
}

var _ usecases.SubmissionPublisher = (*SubmissionPublisher)(nil)

type SubmissionPublisher struct {
	publisher pubsub.Publisher
}

func (p *SubmissionPublisher) Publish(ctx context.Context, submission domain.Submission) error {
	event := internal.FromSubmission(submission)
	err := p.publisher.Publish(ctx, pubsub.Key(submission.PublicID), event)
	if err != nil {
		return fmt.Errorf("publishing submission: %w", err)
	}

	return nil
}
