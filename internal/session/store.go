// Package session holds the process-wide order session state: the loading
// flag and the most recent search's candidate list. Screens read and write it
// through typed transitions instead of ad-hoc setters so the allowed state
// changes stay explicit and testable.
package session

import (
	"sync"

	"github.com/RohithNair27/WTF-Where-is-the-food/internal/api"
)

// Store lives for the whole process. The candidate list is overwritten
// wholesale on each completed search, never merged or appended.
type Store struct {
	mu         sync.Mutex
	loading    bool
	candidates []api.BusinessCandidate
	lastErr    error

	// locationGen guards against a slow background geolocation fix landing
	// after the user has already typed or fetched a newer value.
	locationGen uint64
}

func NewStore() *Store {
	return &Store{}
}

// BeginSearch raises the loading flag. Every Begin must be paired with
// exactly one of CompleteSearch, Settle, or Fail on all exit paths.
func (s *Store) BeginSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.lastErr = nil
}

// CompleteSearch replaces the candidate list and clears the loading flag.
func (s *Store) CompleteSearch(candidates []api.BusinessCandidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates = append([]api.BusinessCandidate(nil), candidates...)
	s.loading = false
	s.lastErr = nil
}

// Settle clears the loading flag without touching the candidate list. Used by
// call sites whose success does not produce candidates (details fetch,
// location fix).
func (s *Store) Settle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
}

// Fail records the error and clears the loading flag. Candidates are left as
// they were.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.lastErr = err
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Candidates returns a copy of the latest candidate list.
func (s *Store) Candidates() []api.BusinessCandidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.BusinessCandidate(nil), s.candidates...)
}

// CandidateByID finds a candidate in the current list.
func (s *Store) CandidateByID(id string) (api.BusinessCandidate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.candidates {
		if c.ID == id {
			return c, true
		}
	}
	return api.BusinessCandidate{}, false
}

// BeginLocationFix starts a new location request generation. Any fix from an
// earlier generation becomes stale the moment this returns.
func (s *Store) BeginLocationFix() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locationGen++
	return s.locationGen
}

// AcceptLocationFix reports whether a fix from the given generation is still
// the newest request. Stale fixes must be dropped by the caller.
func (s *Store) AcceptLocationFix(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen == s.locationGen
}

// InvalidateLocationFixes marks all in-flight fixes stale, e.g. because the
// user typed a city by hand.
func (s *Store) InvalidateLocationFixes() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locationGen++
}
