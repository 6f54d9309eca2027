package session

// Stats accumulates scoring across all passes of one session. It is
// mutated only by the engine and reset per invocation.
type Stats struct {
	Correct   int
	Incorrect int
	Total     int
}

// RoundResult is the score of one pass over the queue.
type RoundResult struct {
	Round   int
	Correct int
	Total   int
}

// Percent returns the round's score as a percentage.
func (r RoundResult) Percent() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Total) * 100
}
