package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestConfirmModelUpdate(t *testing.T) {
	tests := []struct {
		name      string
		msg       tea.KeyMsg
		confirmed bool
		done      bool
	}{
		{"y confirms", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}}, true, true},
		{"Y confirms", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'Y'}}, true, true},
		{"n declines", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}}, false, true},
		{"enter defaults no", tea.KeyMsg{Type: tea.KeyEnter}, false, true},
		{"esc declines", tea.KeyMsg{Type: tea.KeyEsc}, false, true},
		{"ctrl+c declines", tea.KeyMsg{Type: tea.KeyCtrlC}, false, true},
		{"other keys ignored", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, cmd := confirmModel{prompt: "Create?"}.Update(tt.msg)
			m := updated.(confirmModel)
			if m.confirmed != tt.confirmed || m.done != tt.done {
				t.Fatalf("got confirmed=%v done=%v, want %v %v", m.confirmed, m.done, tt.confirmed, tt.done)
			}
			if (cmd != nil) != tt.done {
				t.Fatalf("expected quit command only when done")
			}
		})
	}
}

func TestConfirmModelView(t *testing.T) {
	if got := (confirmModel{prompt: "Create?"}).View(); got != "Create? [y/N] " {
		t.Fatalf("unexpected view %q", got)
	}
	if got := (confirmModel{done: true}).View(); got != "" {
		t.Fatalf("expected empty view when done, got %q", got)
	}
}
