package submissions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"sheraa.ae/site/internal/forms"
)

const publishTimeout = 5 * time.Second

// Service stores validated forms and publishes them.
type Service struct {
	store     Store
	publisher Publisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a store and publisher. A nil publisher disables fan-out.
func NewService(store Store, publisher Publisher, logger *zap.Logger) *Service {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, publisher: publisher, logger: logger, now: time.Now}
}

// Meta carries request context stored alongside a submission.
type Meta struct {
	Locale string
	UserID string
}

// Submit persists f and publishes it. Spam submissions are dropped silently
// and reported as accepted. A publish failure is logged and does not fail the
// submission since the record is already stored.
func (s *Service) Submit(ctx context.Context, f forms.Submittable, meta Meta) (Submission, error) {
	name, email := f.Contact()
	sub := Submission{
		ID:        ulid.Make().String(),
		Kind:      f.Kind(),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Name:      name,
		Fields:    f.Fields(),
		Locale:    meta.Locale,
		UserID:    meta.UserID,
		CreatedAt: s.now().UTC(),
	}
	if f.Spam() {
		s.logger.Info("submission dropped as spam", zap.String("kind", sub.Kind))
		return sub, nil
	}
	if err := s.store.Insert(ctx, sub); err != nil {
		return Submission{}, fmt.Errorf("store submission: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	msgID, err := s.publisher.Publish(pubCtx, sub)
	if err != nil {
		s.logger.Error("submission publish failed", zap.String("submission_id", sub.ID), zap.Error(err))
	} else if msgID != "" {
		s.logger.Info("submission published", zap.String("submission_id", sub.ID), zap.String("message_id", msgID))
	}
	return sub, nil
}

// ForEmail lists the submissions made with email, newest first.
func (s *Service) ForEmail(ctx context.Context, email string) ([]Submission, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, nil
	}
	return s.store.ListByEmail(ctx, email, 50)
}
