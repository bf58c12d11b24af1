package notify

import (
	"strings"
	"testing"
	"time"
)

func TestBar_PushAndVisible(t *testing.T) {
	b := NewBar(20)
	now := time.Now()

	b.Push(Notification{Label: "symbols", OldStatus: "PENDING", NewStatus: "RUNNING", Timestamp: now})
	b.Push(Notification{Label: "symbols", OldStatus: "RUNNING", NewStatus: "PASS", Timestamp: now})
	b.Push(Notification{Label: "rs", OldStatus: "PENDING", NewStatus: "RUNNING", Timestamp: now})

	visible := b.Visible()
	if len(visible) != 2 {
		t.Fatalf("Visible() = %d items, want 2", len(visible))
	}
	if visible[0].NewStatus != "PASS" {
		t.Errorf("visible[0].NewStatus = %q, want PASS", visible[0].NewStatus)
	}
	if visible[1].Label != "rs" {
		t.Errorf("visible[1].Label = %q, want rs", visible[1].Label)
	}
}

func TestBar_VisibleEmpty(t *testing.T) {
	b := NewBar(20)
	if len(b.Visible()) != 0 {
		t.Error("empty bar should have no visible items")
	}
}

func TestBar_MaxBuffer(t *testing.T) {
	b := NewBar(3)
	now := time.Now()

	for i := 0; i < 10; i++ {
		b.Push(Notification{Label: string(rune('a' + i)), Timestamp: now})
	}

	if len(b.items) != 3 {
		t.Errorf("buffered = %d, want 3 (max buffer)", len(b.items))
	}

	visible := b.Visible()
	if visible[0].Label != "i" || visible[1].Label != "j" {
		t.Errorf("visible = [%q %q], want [i j]", visible[0].Label, visible[1].Label)
	}
}

func TestBar_Render(t *testing.T) {
	b := NewBar(20)
	now := time.Now()

	b.Push(Notification{
		Label:     "Reed-Solomon (Node.js)",
		OldStatus: "RUNNING",
		NewStatus: "FAIL",
		Timestamp: now.Add(-2 * time.Minute),
	})

	result := b.Render(80, now)
	if !strings.Contains(result, "Reed-Solomon (Node.js)") {
		t.Errorf("render should contain label, got: %q", result)
	}
	if !strings.Contains(result, "RUNNING → FAIL") {
		t.Errorf("render should contain transition, got: %q", result)
	}
	if !strings.Contains(result, "2m ago") {
		t.Errorf("render should contain relative time, got: %q", result)
	}
}

func TestBar_RenderEmpty(t *testing.T) {
	b := NewBar(20)
	if b.Render(80, time.Now()) != "" {
		t.Error("empty bar should render empty string")
	}
}

func TestBar_RenderTruncation(t *testing.T) {
	b := NewBar(20)
	now := time.Now()

	b.Push(Notification{Label: "very-long-label", OldStatus: "RUNNING", NewStatus: "PASS", Timestamp: now})
	b.Push(Notification{Label: "another-long-label", OldStatus: "RUNNING", NewStatus: "FAIL", Timestamp: now})

	result := b.Render(30, now)
	runes := []rune(result)
	if len(runes) > 30 {
		t.Errorf("render should be truncated to 30 runes, got %d: %q", len(runes), result)
	}
	if !strings.HasSuffix(result, "…") {
		t.Errorf("truncated render should end with ellipsis: %q", result)
	}
}
