package submissions

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"sheraa.ae/site/internal/forms"
)

func newMemoryStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStoreInsertAndList(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(t)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	first := Submission{ID: "01A", Kind: forms.KindContact, Email: "Founder@Example.com", Name: "Aisha", Fields: map[string]string{"subject": "programs"}, Locale: "en", CreatedAt: base}
	second := Submission{ID: "01B", Kind: forms.KindNewsletter, Email: "founder@example.com", Locale: "ar", CreatedAt: base.Add(time.Hour)}
	other := Submission{ID: "01C", Kind: forms.KindNewsletter, Email: "someone@example.com", Locale: "en", CreatedAt: base}

	for _, s := range []Submission{first, second, other} {
		require.NoError(t, store.Insert(ctx, s))
	}

	got, err := store.ListByEmail(ctx, "FOUNDER@example.com", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "01B", got[0].ID)
	require.Equal(t, "01A", got[1].ID)
	require.Equal(t, "programs", got[1].Fields["subject"])
	require.True(t, got[1].CreatedAt.Equal(base))

	one, err := store.Get(ctx, "01C")
	require.NoError(t, err)
	require.Equal(t, "someone@example.com", one.Email)

	_, err = store.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStoreRejectsUnknownKind(t *testing.T) {
	store := newMemoryStore(t)
	err := store.Insert(context.Background(), Submission{ID: "x", Kind: "survey", Email: "a@b.co", CreatedAt: time.Now()})
	require.Error(t, err)
}

func TestOpenSQLiteCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "submissions.db")
	store, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, store.Insert(context.Background(), Submission{ID: "1", Kind: forms.KindNewsletter, Email: "a@b.co", CreatedAt: time.Now()}))
	require.NoError(t, store.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()
	got, err := reopened.ListByEmail(context.Background(), "a@b.co", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestPubSubPublisherPublishesSubmission(t *testing.T) {
	ctx := context.Background()
	srv := pstest.NewServer()
	defer srv.Close()

	client, err := pubsub.NewClient(ctx, "test-project",
		option.WithEndpoint(srv.Addr),
		option.WithoutAuthentication(),
		option.WithGRPCDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
	)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	topic, err := client.CreateTopic(ctx, "submissions")
	require.NoError(t, err)

	publisher, err := NewPubSubPublisher(topic)
	require.NoError(t, err)

	sub := Submission{ID: "01H", Kind: forms.KindApplication, Email: "a@b.co", Locale: "ar", CreatedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)}
	_, err = publisher.Publish(ctx, sub)
	require.NoError(t, err)

	messages := srv.Messages()
	require.Len(t, messages, 1)

	var payload Submission
	require.NoError(t, json.Unmarshal(messages[0].Data, &payload))
	require.Equal(t, "01H", payload.ID)
	require.Equal(t, "application", messages[0].Attributes["kind"])
	require.Equal(t, "01H", messages[0].Attributes["submissionId"])
	require.Equal(t, "ar", messages[0].Attributes["locale"])
}

func TestNewPubSubPublisherRequiresTopic(t *testing.T) {
	_, err := NewPubSubPublisher(nil)
	require.Error(t, err)
}

type failingPublisher struct{ calls int }

func (f *failingPublisher) Publish(context.Context, Submission) (string, error) {
	f.calls++
	return "", errors.New("broker down")
}

func TestServiceSubmitStoresAndSurvivesPublishFailure(t *testing.T) {
	store := newMemoryStore(t)
	pub := &failingPublisher{}
	core, logs := observer.New(zap.InfoLevel)
	svc := NewService(store, pub, zap.New(core))

	form := forms.Contact{Name: "Omar", Email: " Omar@Example.com ", Subject: "general", Message: "Hello there, Sheraa team"}
	sub, err := svc.Submit(context.Background(), form, Meta{Locale: "en"})
	require.NoError(t, err)
	require.NotEmpty(t, sub.ID)
	require.Equal(t, "omar@example.com", sub.Email)
	require.Equal(t, 1, pub.calls)
	require.Equal(t, 1, logs.FilterMessage("submission publish failed").Len())

	list, err := svc.ForEmail(context.Background(), "omar@example.com")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "general", list[0].Fields["subject"])
}

func TestServiceSubmitDropsSpam(t *testing.T) {
	store := newMemoryStore(t)
	pub := &failingPublisher{}
	svc := NewService(store, pub, nil)

	_, err := svc.Submit(context.Background(), forms.Newsletter{Email: "bot@spam.co", Nickname: "gotcha"}, Meta{Locale: "en"})
	require.NoError(t, err)
	require.Zero(t, pub.calls)

	list, err := svc.ForEmail(context.Background(), "bot@spam.co")
	require.NoError(t, err)
	require.Empty(t, list)
}
