package views

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestCompletePath(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"talk.pdf", "talk_notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "archive"), 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		partial string
		want    string
		wantOK  bool
	}{
		{"shared prefix", filepath.Join(dir, "ta"), filepath.Join(dir, "talk"), true},
		{"unique file", filepath.Join(dir, "talk."), filepath.Join(dir, "talk.pdf"), true},
		{"directory", filepath.Join(dir, "arc"), filepath.Join(dir, "archive") + string(filepath.Separator), true},
		{"already ambiguous", filepath.Join(dir, "talk"), filepath.Join(dir, "talk"), false},
		{"no match", filepath.Join(dir, "zzz"), filepath.Join(dir, "zzz"), false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CompletePath(tt.partial)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("CompletePath(%q) = %q, %v; want %q, %v", tt.partial, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestInputFormTabCompletes(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "slides.dsh"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	form := NewInputForm(NewInputField("Document", "", 0), NewInputField("Notes", "", 0))
	form.SetValue(0, filepath.Join(dir, "sl"))

	handled, _ := form.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !handled {
		t.Fatal("tab not handled")
	}
	if got := form.Value(0); got != filepath.Join(dir, "slides.dsh") {
		t.Errorf("Value(0) = %q", got)
	}

	form.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if form.FocusedField != 1 {
		t.Errorf("FocusedField = %d, want 1", form.FocusedField)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandHome("~/talks"); got != filepath.Join(home, "talks") {
		t.Errorf("expandHome() = %q", got)
	}
	if got := expandHome("/abs/~x"); got != "/abs/~x" {
		t.Errorf("expandHome() changed %q", got)
	}
}
