package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestMultiChoicePick(t *testing.T) {
	m := NewMultiChoice("кот", []string{"dog", "cat", "sun", "tree"}, 1)

	tests := []struct {
		key    string
		want   int
		wantOK bool
	}{
		{"1", 0, true},
		{"4", 3, true},
		{"5", 4, false},
		{"enter", 0, true},
		{"x", 0, false},
	}
	for _, tt := range tests {
		got, ok := m.Pick(tt.key)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("Pick(%q) = %d, %v; want %d, %v", tt.key, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestMultiChoiceNavigateAndReveal(t *testing.T) {
	m := NewMultiChoice("кот", []string{"dog", "cat", "sun", "tree"}, 1)
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", m.Selected)
	}
	if i, ok := m.Pick("enter"); !ok || i != 1 {
		t.Fatalf("Pick(enter) = %d, %v", i, ok)
	}

	m.Reveal(2)
	if m.IsCorrect() {
		t.Error("wrong pick reported correct")
	}
	if _, ok := m.Pick("1"); ok {
		t.Error("revealed choice should not accept picks")
	}
	if !strings.Contains(m.View(), "✓") || !strings.Contains(m.View(), "✗") {
		t.Error("reveal should mark the answer and the wrong pick")
	}

	m.Reset()
	if m.Revealed || m.Chosen != -1 {
		t.Errorf("Reset left %+v", m)
	}
	m.Reveal(1)
	if !m.IsCorrect() {
		t.Error("correct pick reported wrong")
	}
}

func TestMenuSkipsDisabled(t *testing.T) {
	var picked string
	pick := func(label string) func() tea.Cmd {
		return func() tea.Cmd {
			picked = label
			return nil
		}
	}
	m := NewMenu([]MenuItem{
		{Label: "Learn", Action: pick("learn"), Disabled: true},
		{Label: "Review", Action: pick("review")},
		{Label: "Quit", Action: pick("quit")},
	})
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want 1", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("moved onto a disabled item: %d", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if picked != "quit" {
		t.Errorf("picked %q, want quit", picked)
	}
}

func TestProgressBarClamps(t *testing.T) {
	for _, pct := range []float64{-0.5, 0, 0.5, 1, 3} {
		bar := NewProgressBar("", pct, true, 30).View()
		if bar == "" {
			t.Errorf("empty bar for %v", pct)
		}
	}
}

func TestProgressBarComplete(t *testing.T) {
	if NewProgressBar("", 3, false, 20).Percent != 1 {
		t.Error("fraction above one should clamp to one")
	}
	if !NewProgressBar("", 1, false, 20).Complete() {
		t.Error("full bar should be complete")
	}
	if NewProgressBar("", 0.99, false, 20).Complete() {
		t.Error("partial bar reported complete")
	}
	if !strings.Contains(NewProgressBar("Today", 0.5, true, 40).View(), "50%") {
		t.Error("percent missing")
	}
}

func TestButtons(t *testing.T) {
	b := NewButtons(1, "Yes", "No")
	if b.Focused != 1 {
		t.Fatalf("Focused = %d, want 1", b.Focused)
	}
	b, _, _ = b.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if b.Focused != 1 {
		t.Errorf("focus moved past the last button: %d", b.Focused)
	}
	b, _, _ = b.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	b, pressed, ok := b.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !ok || pressed != 0 {
		t.Errorf("pressed = %d, %v; want 0, true", pressed, ok)
	}
	if !strings.Contains(b.View(), "No") {
		t.Error("view missing a label")
	}
	if NewButtons(9, "Only").Focused != 0 {
		t.Error("focus should clamp to the row")
	}
}

func TestStatRow(t *testing.T) {
	row := StatRow(60, [2]string{"12", "learned"}, [2]string{"3", "streak"})
	for _, want := range []string{"12", "learned", "3", "streak"} {
		if !strings.Contains(row, want) {
			t.Errorf("row missing %q", want)
		}
	}
	if StatRow(60) != "" {
		t.Error("empty row should render nothing")
	}
}
