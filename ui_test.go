package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dgnsrekt/flash/internal/session"
)

func TestTerminalUI_Prompt(t *testing.T) {
	var out bytes.Buffer
	ui := newTerminalUI(strings.NewReader("Paris\r\n"), &out)

	got, err := ui.Prompt("Your answer")
	if err != nil {
		t.Fatalf("Prompt failed: %v", err)
	}
	if got != "Paris" {
		t.Errorf("Prompt() = %q, want %q", got, "Paris")
	}
	if !strings.Contains(out.String(), "Your answer: ") {
		t.Errorf("output = %q", out.String())
	}
}

func TestTerminalUI_PromptWithoutTrailingNewline(t *testing.T) {
	ui := newTerminalUI(strings.NewReader("Paris"), &bytes.Buffer{})

	got, err := ui.Prompt("Your answer")
	if err != nil {
		t.Fatalf("Prompt failed: %v", err)
	}
	if got != "Paris" {
		t.Errorf("Prompt() = %q, want %q", got, "Paris")
	}
}

func TestTerminalUI_Confirm(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
	}{
		{"yes", "y\n", false, true},
		{"yes word", "YES\n", false, true},
		{"no", "n\n", true, false},
		{"empty takes default yes", "\n", true, true},
		{"empty takes default no", "\n", false, false},
		{"garbage then answer", "maybe\nn\n", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui := newTerminalUI(strings.NewReader(tt.input), &bytes.Buffer{})
			got, err := ui.Confirm("Continue?", tt.defaultYes)
			if err != nil {
				t.Fatalf("Confirm failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTerminalUI_ConfirmHint(t *testing.T) {
	var out bytes.Buffer
	ui := newTerminalUI(strings.NewReader("\n"), &out)
	if _, err := ui.Confirm("Continue without voice?", true); err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if !strings.Contains(out.String(), "[Y/n]") {
		t.Errorf("output = %q, want a [Y/n] hint", out.String())
	}
}

func TestTerminalUI_Summary(t *testing.T) {
	var out bytes.Buffer
	ui := newTerminalUI(strings.NewReader(""), &out)

	ui.Summary([]session.RoundResult{
		{Round: 1, Correct: 1, Total: 2},
		{Round: 2, Correct: 1, Total: 1},
	}, true)

	s := out.String()
	for _, want := range []string{
		"--- Final Summary ---",
		"Round 1: 1/2 correct (50.0%)",
		"Round 2: 1/1 correct (100.0%)",
		"mastered",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("summary missing %q in %q", want, s)
		}
	}
}

func TestTerminalUI_Incorrect(t *testing.T) {
	var out bytes.Buffer
	ui := newTerminalUI(strings.NewReader(""), &out)

	ui.Incorrect("Paris")
	if !strings.Contains(out.String(), "Paris") {
		t.Errorf("output = %q, want the expected answer", out.String())
	}

	out.Reset()
	ui.Incorrect("")
	if strings.Contains(out.String(), "Paris") {
		t.Errorf("re-prompt rejection leaked an answer: %q", out.String())
	}
}
