package submissions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/pubsub"
)

// Publisher fans a stored submission out to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, s Submission) (string, error)
}

// NoopPublisher drops messages. Used when no topic is configured.
type NoopPublisher struct{}

// Publish implements Publisher.
func (NoopPublisher) Publish(context.Context, Submission) (string, error) { return "", nil }

// PubSubPublisher publishes submissions to a Pub/Sub topic.
type PubSubPublisher struct {
	topic   *pubsub.Topic
	marshal func(any) ([]byte, error)
}

// NewPubSubPublisher constructs a Pub/Sub backed publisher.
func NewPubSubPublisher(topic *pubsub.Topic) (*PubSubPublisher, error) {
	if topic == nil {
		return nil, errors.New("pubsub submission publisher: topic is required")
	}
	return &PubSubPublisher{topic: topic, marshal: json.Marshal}, nil
}

// Publish sends s as JSON with kind, submissionId and locale attributes.
func (p *PubSubPublisher) Publish(ctx context.Context, s Submission) (string, error) {
	if p == nil || p.topic == nil {
		return "", errors.New("pubsub submission publisher: not initialised")
	}
	data, err := p.marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshal submission: %w", err)
	}

	attrs := make(map[string]string)
	setAttr(attrs, "kind", s.Kind)
	setAttr(attrs, "submissionId", s.ID)
	setAttr(attrs, "locale", s.Locale)

	result := p.topic.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: attrs,
	})
	id, err := result.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("publish submission: %w", err)
	}
	return id, nil
}

func setAttr(attrs map[string]string, key, value string) {
	if v := strings.TrimSpace(value); v != "" {
		attrs[key] = v
	}
}
