package httpapi_test

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"insurance-server/internal/infra/async"
	"insurance-server/internal/insurance/communication"
	"insurance-server/internal/insurance/domain"
	"insurance-server/internal/insurance/httpapi"

	"github.com/gorilla/websocket"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SubmissionFeedController", func() {
	var (
		broker     *async.LocalBroker
		controller *httpapi.SubmissionFeedController
		server     *httptest.Server
		conn       *websocket.Conn
	)

	BeforeEach(func() {
		broker = async.NewLocalBroker()
		controller = httpapi.NewSubmissionFeedController(broker)
		Eventually(controller.Ready(), time.Second).Should(BeClosed())

		router := http.NewServeMux()
		controller.AddRoutes(router)
		server = httptest.NewServer(router)

		url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/insurance/submissions/ws"
		var err error
		conn, _, err = websocket.DefaultDialer.Dial(url, nil)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		conn.Close()
		controller.Shutdown()
		server.Close()
		broker.Stop()
	})

	It("should push created submissions to connected clients", func() {
		submission := domain.Submission{
			ID:         5,
			PublicID:   "3c0e4d9b-6a2f-4f0e-8b7e-2b1d9b5c0a44",
			TemplateID: 1,
			Type:       "car",
			Data:       domain.Values{"make": domain.String("Fiat")},
			Status:     domain.StatusPending,
			CreatedAt:  time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		}

		received := make(chan map[string]any, 1)
		go func() {
			defer GinkgoRecover()
			var event map[string]any
			if err := conn.ReadJSON(&event); err == nil {
				received <- event
			}
		}()

		var event map[string]any
		Eventually(func() bool {
			_ = broker.Publish(context.Background(), communication.FeedTopic, async.BrokerMessage{
				Event: communication.SubmissionCreatedEvent,
				Value: submission,
			})
			select {
			case event = <-received:
				return true
			case <-time.After(20 * time.Millisecond):
				return false
			}
		}, 3*time.Second).Should(BeTrue())

		Expect(event["type"]).To(Equal(communication.SubmissionCreatedEvent))
		payload := event["submission"].(map[string]any)
		Expect(payload["type"]).To(Equal("car"))
		Expect(payload["data"]).To(Equal(map[string]any{"make": "Fiat"}))
	})

	It("should ignore unrelated broker events", func() {
		Expect(broker.Publish(context.Background(), communication.FeedTopic, async.BrokerMessage{
			Event: "something_else",
			Value: 42,
		})).To(Succeed())

		_ = conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
		var event map[string]any
		Expect(conn.ReadJSON(&event)).NotTo(Succeed())
	})

	Context("when the broker goes away", func() {
		expectRefused := func(server *httptest.Server) {
			url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/insurance/submissions/ws"
			Eventually(func() bool {
				client, _, err := websocket.DefaultDialer.Dial(url, nil)
				if err != nil {
					return false
				}
				defer client.Close()

				_ = client.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
				var event map[string]any
				err = client.ReadJSON(&event)
				var netErr net.Error
				return err != nil && !(errors.As(err, &netErr) && netErr.Timeout())
			}, 3*time.Second).Should(BeTrue())
		}

		It("should close new connections once the feed is closed", func() {
			broker.Stop()

			expectRefused(server)
		})

		It("should close new connections when subscribing fails", func() {
			stopped := async.NewLocalBroker()
			stopped.Stop()
			failing := httpapi.NewSubmissionFeedController(stopped)
			defer failing.Shutdown()

			router := http.NewServeMux()
			failing.AddRoutes(router)
			failingServer := httptest.NewServer(router)
			defer failingServer.Close()

			expectRefused(failingServer)
		})
	})
})
