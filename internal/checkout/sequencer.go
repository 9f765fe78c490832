package checkout

import "sync/atomic"

// Sequencer issues monotonically increasing request tokens so that a slow
// response from an older search request cannot overwrite the result of a
// newer one. Callers take a token with Next before dispatching and check
// Latest when the response arrives; stale responses are discarded.
type Sequencer struct {
	latest atomic.Uint64
}

// Next issues the token for a new request, superseding all earlier ones.
func (s *Sequencer) Next() uint64 {
	return s.latest.Add(1)
}

// Latest reports whether the token still belongs to the most recent request.
func (s *Sequencer) Latest(token uint64) bool {
	return s.latest.Load() == token
}
