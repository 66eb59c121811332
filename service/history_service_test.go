package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/tieubaoca/roskai-be/types"
)

func pair(n int) []types.Message {
	return []types.Message{
		{Role: types.RoleUser, Content: fmt.Sprintf("question %d", n)},
		{Role: types.RoleBot, Content: fmt.Sprintf("answer %d", n)},
	}
}

func TestRecentWindow_boundedOldestFirst(t *testing.T) {
	h := NewChatHistoryService(100, 0)
	for i := 1; i <= 5; i++ {
		h.Append("s1", pair(i)...)
	}

	window := h.RecentWindow("s1", 6)
	if len(window) != 6 {
		t.Fatalf("got %d turns, want 6", len(window))
	}
	want := []string{"question 3", "answer 3", "question 4", "answer 4", "question 5", "answer 5"}
	for i, turn := range window {
		if turn.Content != want[i] {
			t.Errorf("window[%d] = %q, want %q", i, turn.Content, want[i])
		}
	}
}

func TestRecentWindow_roundTrip(t *testing.T) {
	const n = 4
	h := NewChatHistoryService(100, 0)
	for i := 1; i <= n; i++ {
		h.Append("s1", pair(i)...)
	}

	all := h.RecentWindow("s1", 2*n)
	if len(all) != 2*n {
		t.Fatalf("got %d turns, want %d", len(all), 2*n)
	}
	if all[0].Content != "question 1" || all[2*n-1].Content != fmt.Sprintf("answer %d", n) {
		t.Errorf("unexpected order: first=%q last=%q", all[0].Content, all[2*n-1].Content)
	}

	for k := 1; k < 2*n; k++ {
		window := h.RecentWindow("s1", k)
		if len(window) != k {
			t.Fatalf("RecentWindow(%d) returned %d turns", k, len(window))
		}
		if window[k-1].Content != all[2*n-1].Content {
			t.Errorf("RecentWindow(%d) does not end at the newest turn", k)
		}
	}
}

func TestRecentWindow_fewerThanRequested(t *testing.T) {
	h := NewChatHistoryService(100, 0)
	h.Append("s1", pair(1)...)
	if got := h.RecentWindow("s1", 6); len(got) != 2 {
		t.Errorf("got %d turns, want 2", len(got))
	}
	if got := h.RecentWindow("unknown", 6); len(got) != 0 {
		t.Errorf("unknown session returned %d turns", len(got))
	}
}

func TestRecentWindow_doesNotMutate(t *testing.T) {
	h := NewChatHistoryService(100, 0)
	h.Append("s1", pair(1)...)
	window := h.RecentWindow("s1", 2)
	window[0].Content = "mutated"
	if h.RecentWindow("s1", 2)[0].Content != "question 1" {
		t.Error("RecentWindow leaked internal state")
	}
}

func TestAppend_sessionIsolation(t *testing.T) {
	h := NewChatHistoryService(100, 0)
	h.Append("s1", pair(1)...)
	h.Append("s2", pair(2)...)
	if got := h.RecentWindow("s1", 6); len(got) != 2 || got[0].Content != "question 1" {
		t.Errorf("s1 window = %+v", got)
	}
	if got := h.RecentWindow("s2", 6); len(got) != 2 || got[0].Content != "question 2" {
		t.Errorf("s2 window = %+v", got)
	}
}

func TestAppend_capsRetainedTurns(t *testing.T) {
	h := NewChatHistoryService(4, 0)
	for i := 1; i <= 5; i++ {
		h.Append("s1", pair(i)...)
	}
	if got := h.Len("s1"); got != 4 {
		t.Fatalf("retained %d turns, want 4", got)
	}
	window := h.RecentWindow("s1", 4)
	if window[0].Content != "question 4" {
		t.Errorf("oldest retained turn = %q, want question 4", window[0].Content)
	}
}

func TestAppend_evictsIdleSessions(t *testing.T) {
	h := NewChatHistoryService(100, time.Hour)
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return now }

	h.Append("old", pair(1)...)
	now = now.Add(2 * time.Hour)
	h.Append("fresh", pair(2)...)

	if got := h.Len("old"); got != 0 {
		t.Errorf("idle session kept %d turns, want 0", got)
	}
	if got := h.Len("fresh"); got != 2 {
		t.Errorf("fresh session has %d turns, want 2", got)
	}
}
