//go:build wireinject
// +build wireinject

package wire

import (
	"insurance-server/internal/infra/async"
	"insurance-server/internal/infra/notification"
	"insurance-server/internal/insurance/communication"
	"insurance-server/internal/insurance/domain"
	"insurance-server/internal/insurance/httpapi"
	"insurance-server/internal/insurance/persistence"
	"insurance-server/internal/insurance/usecases"

	"github.com/google/wire"
)

var TemplateRepositorySet = wire.NewSet(
	provideAppConfig,
	provideDatabase,
	persistence.NewTemplateRepository,
	wire.Bind(new(usecases.TemplateRepository), new(*persistence.SimpleTemplateRepository)),
)

var FormServiceSet = wire.NewSet(
	TemplateRepositorySet,
	provideCache,
	provideFormService,
	wire.Bind(new(usecases.FormService), new(*usecases.SimpleFormService)),
)

func InitializeTemplateRepository() (*persistence.SimpleTemplateRepository, error) {
	wire.Build(
		provideAppConfig,
		provideDatabase,
		persistence.NewTemplateRepository,
	)
	return nil, nil
}

func InitializeInsuranceController() (*httpapi.InsuranceController, error) {
	wire.Build(
		FormServiceSet,
		providePubSubFactory,
		providePublisherFactory,
		communication.NewSubmissionPublisher,
		wire.Bind(new(usecases.SubmissionPublisher), new(*communication.SubmissionPublisher)),
		persistence.NewSubmissionRepository,
		wire.Bind(new(usecases.SubmissionRepository), new(*persistence.SimpleSubmissionRepository)),
		usecases.NewSubmissionService,
		wire.Bind(new(usecases.SubmissionService), new(*usecases.SimpleSubmissionService)),
		provideOptionFetcher,
		wire.Bind(new(domain.OptionLoader), new(*usecases.HTTPOptionFetcher)),
		httpapi.NewInsuranceController,
	)
	return nil, nil
}

func InitializeSubmissionFeedController(broker async.InternalBroker) (*httpapi.SubmissionFeedController, error) {
	wire.Build(
		httpapi.NewSubmissionFeedController,
	)
	return nil, nil
}

func InitializeSubmissionFeed(broker async.InternalBroker) (*communication.SubmissionFeed, error) {
	wire.Build(
		provideAppConfig,
		providePubSubFactory,
		provideConsumerFactory,
		communication.NewSubmissionFeed,
	)
	return nil, nil
}

func InitializeTemplateCacheWorker() (*usecases.TemplateCacheWorker, error) {
	wire.Build(
		FormServiceSet,
		provideTemplateCacheWorker,
	)
	return nil, nil
}

func InitializeSubmissionNotifier(broker async.InternalBroker) (*communication.SubmissionNotifier, error) {
	wire.Build(
		provideAppConfig,
		provideNotificationClient,
		wire.Bind(new(notification.NotificationClient), new(*notification.MailerSendClient)),
		provideSubmissionNotifier,
	)
	return nil, nil
}
