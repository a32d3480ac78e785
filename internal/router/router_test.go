package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/focusflow/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
	seen    []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.seen = append(s.seen, msg)
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "first" {
		t.Errorf("expected active 'first', got %q", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplace(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Replace(s2)

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after replace, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on replaced screen")
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Update(ReplaceScreenMsg{Screen: s2})

	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	s3 := &stubScreen{title: "third"}
	r.Replace(s3)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "third" {
		t.Errorf("expected active 'third', got %q", r.Active().Title())
	}
}

type plainMsg struct{}

func TestUpdateReachesOnlyActive(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)
	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	r.Update(plainMsg{})

	if len(s1.seen) != 0 {
		t.Errorf("expected bottom screen to see nothing, got %d msgs", len(s1.seen))
	}
	if len(s2.seen) != 1 {
		t.Errorf("expected active screen to see 1 msg, got %d", len(s2.seen))
	}
}

func TestBroadcastReachesEveryScreen(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)
	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	r.Update(screen.PreferencesMsg{Variant: "classic"})

	for _, s := range []*stubScreen{s1, s2} {
		if len(s.seen) != 1 {
			t.Fatalf("%s: expected 1 msg, got %d", s.title, len(s.seen))
		}
		if got, ok := s.seen[0].(screen.PreferencesMsg); !ok || got.Variant != "classic" {
			t.Errorf("%s: unexpected msg %#v", s.title, s.seen[0])
		}
	}
}
