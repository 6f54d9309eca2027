// Package deck builds flashcard decks from CSV rows.
package deck

import (
	"errors"
	"fmt"
	"math/rand"
)

// Common errors for deck construction.
var (
	// ErrColumnOutOfRange is returned when a configured column index does
	// not exist in every row of the input.
	ErrColumnOutOfRange = errors.New("column index out of range")

	// ErrSameColumn is returned when the question and answer columns are equal.
	ErrSameColumn = errors.New("question and answer columns must be different")

	// ErrNegativeColumn is returned for negative column indices.
	ErrNegativeColumn = errors.New("column indices must be non-negative")

	// ErrNoCards is returned when the input contains no rows.
	ErrNoCards = errors.New("no flashcards found")
)

// NoVoiceColumn disables the voice column in a Columns configuration.
const NoVoiceColumn = -1

// Card is one question/answer pair selected from a CSV row.
// VoiceText holds the text to speak when a voice column is configured,
// otherwise it is empty. Cards are immutable once built.
type Card struct {
	Question  string
	Answer    string
	VoiceText string
}

// Deck is an ordered sequence of cards.
type Deck []Card

// Shuffle permutes the deck in place using the given random source.
func (d Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// Columns selects which 0-based CSV columns feed each card field.
// Voice is NoVoiceColumn when speech is disabled.
type Columns struct {
	From  int
	To    int
	Voice int
}

// Validate checks the column configuration once, before any rows are read.
func (c Columns) Validate() error {
	if c.From < 0 || c.To < 0 {
		return fmt.Errorf("from=%d to=%d: %w", c.From, c.To, ErrNegativeColumn)
	}
	if c.From == c.To {
		return fmt.Errorf("column %d: %w", c.From, ErrSameColumn)
	}
	if c.Voice != NoVoiceColumn && c.Voice < 0 {
		return fmt.Errorf("voice=%d: %w", c.Voice, ErrNegativeColumn)
	}
	return nil
}

// max returns the highest column index the configuration references.
func (c Columns) max() int {
	m := c.From
	if c.To > m {
		m = c.To
	}
	if c.Voice > m {
		m = c.Voice
	}
	return m
}

// Build constructs a deck from raw CSV rows. Every row must contain all
// configured columns; a short row is a fatal configuration error, not a
// per-row skip.
func Build(rows [][]string, cols Columns) (Deck, error) {
	if err := cols.Validate(); err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, ErrNoCards
	}

	need := cols.max()
	cards := make(Deck, 0, len(rows))
	for i, row := range rows {
		if len(row) <= need {
			return nil, fmt.Errorf("row %d has %d columns, need at least %d: %w",
				i+1, len(row), need+1, ErrColumnOutOfRange)
		}

		card := Card{
			Question: row[cols.From],
			Answer:   row[cols.To],
		}
		if cols.Voice != NoVoiceColumn {
			card.VoiceText = row[cols.Voice]
		}
		cards = append(cards, card)
	}

	return cards, nil
}
