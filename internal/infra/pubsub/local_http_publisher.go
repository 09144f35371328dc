package pubsub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"homecafe/internal/domain/service"

	"github.com/pkg/errors"
)

// localHTTPPublisher implements EventPublisher by POSTing Pub/Sub style push
// envelopes to a local HTTP endpoint. It lets the whole pipeline run without
// any cloud credentials during development.
type localHTTPPublisher struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// pushMessage mirrors the Pub/Sub push delivery envelope so the receiving
// side can reuse the same decoding path for local and cloud events.
type pushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// NewLocalHTTPPublisher creates a publisher that targets a local endpoint.
func NewLocalHTTPPublisher(endpoint string, logger *slog.Logger) service.EventPublisher {
	return &localHTTPPublisher{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// PublishOrderEvent delivers the event to the configured local endpoint.
func (p *localHTTPPublisher) PublishOrderEvent(ctx context.Context, event *service.OrderEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	var envelope pushMessage
	envelope.Message.Data = base64.StdEncoding.EncodeToString(data)
	envelope.Message.Attributes = map[string]string{
		"order_id": event.OrderID,
		"status":   event.Status,
	}
	envelope.Message.MessageID = event.OrderID
	envelope.Message.PublishTime = time.Now().UTC().Format(time.RFC3339)
	envelope.Subscription = "local"

	body, err := json.Marshal(envelope)
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if event.RequestID != "" {
		req.Header.Set("X-Request-Id", event.RequestID)
	}

	p.logger.Info("[LocalPubSub] Publishing order event",
		slog.String("order_id", event.OrderID),
		slog.String("endpoint", p.endpoint),
	)

	resp, err := p.client.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("local publish failed with status %d", resp.StatusCode)
	}

	return nil
}

// Close is a no-op for the local publisher.
func (p *localHTTPPublisher) Close() error {
	return nil
}
