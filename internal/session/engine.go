// Package session drives flashcard quiz sessions: pass iteration,
// judging, scoring, the confirm gate, and the recursive retry queue.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/flash/internal/deck"
)

// Common errors for quiz sessions.
var (
	// ErrAborted is returned when the user declines to continue after a
	// voice failure.
	ErrAborted = errors.New("session aborted")

	// ErrStateTransition is returned on an invalid engine state change.
	ErrStateTransition = errors.New("invalid state transition")
)

// UI is the terminal boundary the engine talks to. Implementations
// render the prompts and feedback; tests script them.
type UI interface {
	// Prompt reads one line of user input for the given label.
	Prompt(label string) (string, error)

	// Confirm asks a yes/no question with a default.
	Confirm(question string, defaultYes bool) (bool, error)

	// RoundStart announces a pass over the queue.
	RoundStart(round, cards int)

	// ShowQuestion displays a card's question with its position.
	ShowQuestion(index, total int, question string)

	// Correct signals a correct answer.
	Correct()

	// Incorrect signals a wrong answer. The expected answer is shown when
	// non-empty; the confirm gate passes "" for its re-prompt rejections.
	Incorrect(answer string)

	// RoundScore reports one pass's score.
	RoundScore(r RoundResult)

	// Summary reports the final multi-round results.
	Summary(results []RoundResult, mastered bool)

	// VoiceError surfaces a recoverable audio failure.
	VoiceError(err error)
}

// Speaker requests audio playback for a card's voice text. It is the
// playback boundary; the engine never touches the cache or the audio
// device directly.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Options are the session mode flags.
type Options struct {
	// Confirm requires re-typing the correct answer after a miss.
	Confirm bool

	// Recursive re-queues missed cards until a clean pass.
	Recursive bool
}

// Engine runs one quiz session. It is single-threaded: it blocks on
// user input and on synthesis, and only playback happens in the
// background.
type Engine struct {
	ui      UI
	speaker Speaker
	opts    Options

	sm    *StateMachine
	stats Stats

	// voiceOn flips off permanently after the first acknowledged audio
	// failure, so the error is surfaced once rather than per card.
	voiceOn bool
}

// New creates a session engine. speaker may be nil for text-only runs.
func New(ui UI, speaker Speaker, opts Options) *Engine {
	return &Engine{
		ui:      ui,
		speaker: speaker,
		opts:    opts,
		sm:      NewStateMachine(),
		voiceOn: speaker != nil,
	}
}

// Run plays through the deck until every pass is done and returns the
// final stats with per-round results. Retry passes keep the order cards
// were missed in; the deck is never re-shuffled between passes.
func (e *Engine) Run(ctx context.Context, d deck.Deck) (Stats, []RoundResult, error) {
	e.stats = Stats{}

	var results []RoundResult
	current := d
	round := 1

	// Iterative passes keep stack depth flat no matter how many rounds
	// the retry queue produces.
	for len(current) > 0 {
		retry, err := e.runRound(ctx, current, round)
		if err != nil {
			return e.stats, results, err
		}

		results = append(results, RoundResult{
			Round:   round,
			Correct: len(current) - len(retry),
			Total:   len(current),
		})

		if !e.opts.Recursive || len(retry) == 0 {
			if !e.sm.Transition(StateFinished) {
				return e.stats, results, fmt.Errorf("%s -> %s: %w", e.sm.Current(), StateFinished, ErrStateTransition)
			}
			break
		}

		current = retry
		round++
	}

	if e.opts.Recursive && round > 1 {
		mastered := results[len(results)-1].Correct == results[len(results)-1].Total
		e.ui.Summary(results, mastered)
	}

	log.Debug("Session finished", "rounds", round,
		"correct", e.stats.Correct, "incorrect", e.stats.Incorrect)

	return e.stats, results, nil
}

// runRound runs a single pass and returns the cards missed during it,
// in the order they were missed.
func (e *Engine) runRound(ctx context.Context, cards deck.Deck, round int) (deck.Deck, error) {
	e.ui.RoundStart(round, len(cards))

	var retry deck.Deck
	correct := 0

	for i, card := range cards {
		// Presenting
		if err := e.present(ctx, i, len(cards), card); err != nil {
			return nil, err
		}

		// Judging
		if !e.sm.Transition(StateJudging) {
			return nil, fmt.Errorf("%s -> %s: %w", e.sm.Current(), StateJudging, ErrStateTransition)
		}

		answer, err := e.ui.Prompt("Your answer")
		if err != nil {
			return nil, err
		}

		if Judge(answer, card.Answer) {
			e.stats.Correct++
			correct++
			e.ui.Correct()
		} else {
			e.stats.Incorrect++
			e.ui.Incorrect(card.Answer)

			// The confirm gate blocks advancement but never changes the
			// original judgment.
			if e.opts.Confirm {
				if err := e.confirmGate(card.Answer); err != nil {
					return nil, err
				}
			}

			if e.opts.Recursive {
				retry = append(retry, card)
			}
		}
		e.stats.Total++

		// Advancing
		if !e.sm.Transition(StateAdvancing) {
			return nil, fmt.Errorf("%s -> %s: %w", e.sm.Current(), StateAdvancing, ErrStateTransition)
		}
		if i < len(cards)-1 {
			if !e.sm.Transition(StatePresenting) {
				return nil, fmt.Errorf("%s -> %s: %w", e.sm.Current(), StatePresenting, ErrStateTransition)
			}
		}
	}

	e.ui.RoundScore(RoundResult{Round: round, Correct: correct, Total: len(cards)})

	// The next pass, if any, starts by presenting again.
	if len(retry) > 0 && e.opts.Recursive {
		if !e.sm.Transition(StatePresenting) {
			return nil, fmt.Errorf("%s -> %s: %w", e.sm.Current(), StatePresenting, ErrStateTransition)
		}
	}

	return retry, nil
}

// present shows the question and, when voice is active, requests
// playback. Audio failure degrades the session to text-only after a
// single acknowledgment instead of aborting it.
func (e *Engine) present(ctx context.Context, i, total int, card deck.Card) error {
	if e.voiceOn && card.VoiceText != "" {
		if err := e.speaker.Speak(ctx, card.VoiceText); err != nil {
			e.ui.VoiceError(err)

			cont, cerr := e.ui.Confirm("Continue without voice?", true)
			if cerr != nil {
				return cerr
			}
			if !cont {
				return ErrAborted
			}
			e.voiceOn = false
			log.Debug("Voice disabled for remainder of session", "err", err)
		}
	}

	e.ui.ShowQuestion(i+1, total, card.Question)
	return nil
}

// confirmGate re-prompts until the user reproduces the correct answer.
func (e *Engine) confirmGate(answer string) error {
	for {
		confirmation, err := e.ui.Prompt("Type the correct answer to continue")
		if err != nil {
			return err
		}
		if Judge(confirmation, answer) {
			return nil
		}
		e.ui.Incorrect("")
	}
}
