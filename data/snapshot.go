package data

import "time"

// LottoSnapshot - the lotto contract state as read by a single refresh
type LottoSnapshot struct {
	Balance        string
	Players        []string
	CurrentRoundID uint64
	// LastWinner is empty when no previous round winner is known
	LastWinner string

	// Partial is set when one of the reads failed; FailedRead names it and
	// every field after it keeps the value from the previous snapshot
	Partial    bool
	FailedRead string
	UpdatedAt  time.Time
}

// HasWinner - returns true if the previous round winner is known
func (s *LottoSnapshot) HasWinner() bool {
	return s.LastWinner != ""
}

// Clone - returns a deep copy of the snapshot
func (s *LottoSnapshot) Clone() *LottoSnapshot {
	if s == nil {
		return nil
	}

	c := *s
	c.Players = append([]string(nil), s.Players...)

	return &c
}
