package driver

import (
	"context"
	"fmt"
	"net/http/httptest"
	"time"

	"insurance-server/internal/infra/async"
	"insurance-server/internal/infra/cache"
	"insurance-server/internal/infra/httpserver"
	"insurance-server/internal/infra/pubsub"
	"insurance-server/internal/infra/sql"
	"insurance-server/internal/insurance/communication"
	"insurance-server/internal/insurance/httpapi"
	"insurance-server/internal/insurance/persistence"
	"insurance-server/internal/insurance/seed"
	"insurance-server/internal/insurance/usecases"
)

// Server is a complete insurance server running in the test process on an
// in-memory database, cache and message bus.
type Server struct {
	*httptest.Server
	feed       *httpapi.SubmissionFeedController
	worker     *communication.SubmissionFeed
	broker     *async.LocalBroker
	cache      *cache.RistrettoCache
	cancel     context.CancelFunc
	workerDone chan struct{}
}

func StartServer(today time.Time) (*Server, error) {
	orm, err := sql.NewMemoryORM()
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	templates, err := persistence.NewTemplateRepository(orm)
	if err != nil {
		return nil, err
	}
	submissions, err := persistence.NewSubmissionRepository(orm)
	if err != nil {
		return nil, err
	}
	if _, err := seed.Load(context.Background(), templates, today); err != nil {
		return nil, err
	}

	formCache, err := cache.New(nil)
	if err != nil {
		return nil, err
	}

	factory := pubsub.NewFactory(pubsub.FactoryOptions{Environment: "local", ConsumerGroup: "functional"})
	publisher, err := communication.NewSubmissionPublisher(factory.GetPublisherFactory())
	if err != nil {
		return nil, err
	}

	broker := async.NewLocalBroker()
	feed := httpapi.NewSubmissionFeedController(broker)
	controller := httpapi.NewInsuranceController(
		usecases.NewFormService(templates, formCache, time.Minute),
		usecases.NewSubmissionService(submissions, templates, publisher),
		usecases.NewHTTPOptionFetcher(time.Second),
	)
	handler := httpserver.NewServer(httpserver.ServerOptions{}, controller, feed).Handler()

	ctx, cancel := context.WithCancel(context.Background())
	worker := communication.NewSubmissionFeed(factory.GetConsumerFactory(), broker)
	done := make(chan struct{})
	go worker.Run(ctx, func() { close(done) })

	return &Server{
		Server:     httptest.NewServer(handler),
		feed:       feed,
		worker:     worker,
		broker:     broker,
		cache:      formCache,
		cancel:     cancel,
		workerDone: done,
	}, nil
}

func (s *Server) Stop() {
	s.Server.Close()
	s.feed.Shutdown()
	s.worker.Shutdown()
	s.cancel()
	<-s.workerDone
	s.broker.Stop()
	s.cache.Close()
}
