package reporters

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
)

func TestGCPPubSubSenderPublishes(t *testing.T) {
	// In-memory Pub/Sub emulator.
	server := pstest.NewServer()
	defer server.Close()
	t.Setenv("PUBSUB_EMULATOR_HOST", server.Addr)

	ctx := context.Background()
	client, err := pubsub.NewClient(ctx, "test-project")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	defer client.Close()
	if _, err := client.CreateTopic(ctx, "runs"); err != nil {
		t.Fatalf("create topic: %v", err)
	}

	rep, err := newPubSubReporter(ctx, ReporterConfig{
		ID:     "gcp",
		Type:   TypePubSub,
		PubSub: &PubSubConfig{ProjectID: "test-project", Topic: "runs"},
	}, nil)
	if err != nil {
		t.Fatalf("newPubSubReporter: %v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := rep.Publish(ctx, sampleReport()); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	msgs := server.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message on emulator, got %d", len(msgs))
	}
	if got := msgs[0].Attributes["status"]; got != StatusFailed {
		t.Fatalf("status attribute = %q", got)
	}
	if err := rep.(*queueReporter).Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
