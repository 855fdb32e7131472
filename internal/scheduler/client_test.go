package scheduler

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

type stubSchedulerConfig struct {
	redisURL string
}

func (s stubSchedulerConfig) GetRedisURL() string       { return s.redisURL }
func (s stubSchedulerConfig) GetRedisTLSInsecure() bool { return false }
func (s stubSchedulerConfig) GetAsynqQueueName() string { return "truthscope" }
func (s stubSchedulerConfig) GetAsynqConcurrency() int  { return 1 }

func newTestClient(t *testing.T) *Client {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := NewClient(stubSchedulerConfig{redisURL: "redis://" + mr.Addr()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestNewClient_RequiresRedisURL(t *testing.T) {
	if _, err := NewClient(stubSchedulerConfig{}); err == nil {
		t.Fatal("expected error without redis url")
	}
}

func TestScheduleAnalysisRefresh_DeduplicatesPerURL(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	if err := client.ScheduleAnalysisRefresh(ctx, "https://example.com/article"); err != nil {
		t.Fatalf("first enqueue failed: %v", err)
	}
	// The second enqueue hits the task ID conflict and must be swallowed.
	if err := client.ScheduleAnalysisRefresh(ctx, "https://example.com/article"); err != nil {
		t.Fatalf("duplicate enqueue should be tolerated, got %v", err)
	}
	if err := client.ScheduleAnalysisRefresh(ctx, "https://example.com/other"); err != nil {
		t.Fatalf("distinct URL enqueue failed: %v", err)
	}
}

func TestEnqueueVerdictSeed(t *testing.T) {
	client := newTestClient(t)

	if err := client.EnqueueVerdictSeed(context.Background(), "/etc/truthscope/verdicts.yaml"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNilClientIsNoOp(t *testing.T) {
	var client *Client

	if err := client.ScheduleAnalysisRefresh(context.Background(), "https://example.com"); err != nil {
		t.Fatalf("nil client should no-op, got %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("nil client close should no-op, got %v", err)
	}
}
