package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dgnsrekt/flash/internal/session"
)

// terminalUI implements session.UI on a pair of streams. Input is read
// line by line; feedback uses the shared lipgloss styles.
type terminalUI struct {
	in  *bufio.Reader
	out io.Writer
}

func newTerminalUI(in io.Reader, out io.Writer) *terminalUI {
	return &terminalUI{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (t *terminalUI) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("unable to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Prompt reads one line of input for the given label.
func (t *terminalUI) Prompt(label string) (string, error) {
	fmt.Fprintf(t.out, "%s: ", label)
	return t.readLine()
}

// Confirm asks a yes/no question; an empty answer takes the default.
func (t *terminalUI) Confirm(question string, defaultYes bool) (bool, error) {
	hint := "y/N"
	if defaultYes {
		hint = "Y/n"
	}

	for {
		fmt.Fprintf(t.out, "%s [%s]: ", question, hint)
		line, err := t.readLine()
		if err != nil {
			return false, err
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}

func (t *terminalUI) RoundStart(round, cards int) {
	fmt.Fprintf(t.out, "\n--- Round %d (%d cards) ---\n", round, cards)
}

func (t *terminalUI) ShowQuestion(index, total int, question string) {
	fmt.Fprintf(t.out, "\n%s %s\n", render(subtleStyle, fmt.Sprintf("[%d/%d]", index, total)), question)
}

func (t *terminalUI) Correct() {
	fmt.Fprintln(t.out, render(correctStyle, "✔"))
}

func (t *terminalUI) Incorrect(answer string) {
	if answer == "" {
		fmt.Fprintln(t.out, render(incorrectStyle, "✘"))
		return
	}
	fmt.Fprintln(t.out, render(incorrectStyle, "✘ "+answer))
}

func (t *terminalUI) RoundScore(r session.RoundResult) {
	fmt.Fprintf(t.out, "\nRound %d: You got %d out of %d correct (%.1f%%).\n",
		r.Round, r.Correct, r.Total, r.Percent())
}

func (t *terminalUI) Summary(results []session.RoundResult, mastered bool) {
	fmt.Fprintf(t.out, "\n--- Final Summary ---\n")
	for _, r := range results {
		fmt.Fprintf(t.out, "Round %d: %d/%d correct (%.1f%%)\n",
			r.Round, r.Correct, r.Total, r.Percent())
	}
	if mastered {
		fmt.Fprintln(t.out, render(masteredStyle, "\nCongratulations! You've mastered all the cards!"))
	}
}

func (t *terminalUI) VoiceError(err error) {
	fmt.Fprintln(t.out, render(warningStyle, fmt.Sprintf("Voice error: %v", err)))
}

// Ensure terminalUI implements the session.UI interface
var _ session.UI = (*terminalUI)(nil)
