package usecases

import (
	"context"

	"insurance-server/internal/insurance/domain"
)

//go:generate mockgen -source=port.go -destination=../../../test/unit/doubles/insurance/usecases/port_mock.go -package=usecases -mock_names=SubmissionPublisher=MockSubmissionPublisher

// SubmissionPublisher announces stored submissions to other services and nodes.
type SubmissionPublisher interface {
	Publish(context.Context, domain.Submission) error
}
