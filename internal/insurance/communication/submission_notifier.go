package communication

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"insurance-server/internal/infra/async"
	"insurance-server/internal/infra/notification"
	"insurance-server/internal/insurance/domain"
)

func NewSubmissionNotifier(broker async.InternalBroker, client notification.NotificationClient, recipient string) *SubmissionNotifier {
	return &SubmissionNotifier{
		broker:    broker,
		client:    client,
		recipient: recipient,
	}
}

var _ async.Worker = (*SubmissionNotifier)(nil)

// SubmissionNotifier emails a summary of every new submission seen on the
// local feed to a single recipient.
type SubmissionNotifier struct {
	broker    async.InternalBroker
	client    notification.NotificationClient
	recipient string

	mu     sync.Mutex
	cancel context.CancelFunc
}

func (n *SubmissionNotifier) Run(ctx context.Context, done func()) {
	slog.Debug("submission notifier started", slog.String("recipient", n.recipient))
	defer done()

	ctx, cancel := context.WithCancel(ctx)
	n.mu.Lock()
	n.cancel = cancel
	n.mu.Unlock()
	defer cancel()

	subscription, err := n.broker.Subscribe(FeedTopic)
	if err != nil {
		slog.Error("subscribing to submission feed", slog.String("error", err.Error()))
		return
	}
	defer func() {
		_ = n.broker.Unsubscribe(FeedTopic, subscription)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-subscription.Receiver:
			if !ok {
				return
			}
			submission, isSubmission := msg.Value.(domain.Submission)
			if msg.Event != SubmissionCreatedEvent || !isSubmission {
				continue
			}
			n.notify(ctx, submission)
		}
	}
}

func (n *SubmissionNotifier) notify(ctx context.Context, submission domain.Submission) {
	err := n.client.SendEmail(ctx, notification.EmailRequest{
		To:      n.recipient,
		Subject: SubmissionSubject(submission),
		Body:    SubmissionSummary(submission),
	})
	if err != nil {
		slog.Error("notifying submission",
			slog.Int64("id", submission.ID),
			slog.String("error", err.Error()))
		return
	}
	slog.Debug("submission notified", slog.Int64("id", submission.ID))
}

func (n *SubmissionNotifier) Shutdown() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.cancel != nil {
		n.cancel()
	}
}

func SubmissionSubject(s domain.Submission) string {
	return fmt.Sprintf("New %s insurance submission #%d", s.Type, s.ID)
}

// SubmissionSummary lists the answers one per line, sorted by field id.
func SubmissionSummary(s domain.Submission) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Submission %s (%s) received %s\n\n", s.PublicID, s.Status, s.CreatedAt.UTC().Format("2006-01-02 15:04:05 MST"))

	keys := make([]string, 0, len(s.Data))
	for key := range s.Data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Fprintf(&b, "%s: %s\n", key, s.Data[key].String())
	}
	return b.String()
}
