package queue

import (
	"testing"

	"github.com/flipcart-next/internal/config"
)

func TestCartConsolidateTaskRoundTrip(t *testing.T) {
	task, err := NewCartConsolidateTask(CartConsolidatePayload{UserID: "2"})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskCartConsolidate {
		t.Fatalf("unexpected task type: %s", task.Type())
	}
	payload, err := ParseCartConsolidatePayload(task)
	if err != nil || payload.UserID != "2" {
		t.Fatalf("parse payload failed: %+v err=%v", payload, err)
	}
}

func TestDisabledClientSkipsEnqueue(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueCartConsolidate(CartConsolidatePayload{UserID: "2"}); err != nil {
		t.Fatalf("disabled enqueue should be noop: %v", err)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{Host: " redis ", Port: 6380, DB: 2})
	if opt.Addr != "redis:6380" || opt.DB != 2 {
		t.Fatalf("unexpected redis opt: %+v", opt)
	}
	if cfg.Concurrency != 10 || cfg.Queues[DefaultQueue] != 1 {
		t.Fatalf("unexpected server config: %+v", cfg)
	}
}
