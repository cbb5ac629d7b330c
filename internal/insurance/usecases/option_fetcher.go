package usecases

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"insurance-server/internal/insurance/domain"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

const (
	_defaultOptionsTimeout = 5 * time.Second
	_maxOptionsBody        = 1 << 20
)

var ErrUnexpectedOptionsShape = errors.New("options response is neither a list nor an object with options")

func NewHTTPOptionFetcher(timeout time.Duration) *HTTPOptionFetcher {
	if timeout <= 0 {
		timeout = _defaultOptionsTimeout
	}
	return &HTTPOptionFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

var _ domain.OptionLoader = (*HTTPOptionFetcher)(nil)

// HTTPOptionFetcher loads dynamic options. Endpoints may answer with a bare
// list or with {"options": [...]}.
type HTTPOptionFetcher struct {
	client *http.Client
}

func (f *HTTPOptionFetcher) LoadOptions(ctx context.Context, endpoint string) ([]domain.Option, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching options: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching options: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, _maxOptionsBody))
	if err != nil {
		return nil, fmt.Errorf("reading options: %w", err)
	}

	return decodeOptions(body)
}

func decodeOptions(body []byte) ([]domain.Option, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, ErrUnexpectedOptionsShape
	}

	switch trimmed[0] {
	case '[':
		var options []domain.Option
		if err := json.Unmarshal(trimmed, &options); err != nil {
			return nil, fmt.Errorf("decoding options: %w", err)
		}
		return options, nil
	case '{':
		var wrapped struct {
			Options *[]domain.Option `json:"options"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, fmt.Errorf("decoding options: %w", err)
		}
		if wrapped.Options == nil {
			return nil, ErrUnexpectedOptionsShape
		}
		return *wrapped.Options, nil
	default:
		return nil, ErrUnexpectedOptionsShape
	}
}
