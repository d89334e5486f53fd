package session

import (
	"errors"
	"testing"

	"github.com/RohithNair27/WTF-Where-is-the-food/internal/api"
)

func TestLoadingLifecycle(t *testing.T) {
	s := NewStore()
	if s.Loading() {
		t.Fatal("new store must not be loading")
	}

	s.BeginSearch()
	if !s.Loading() {
		t.Fatal("BeginSearch must raise the loading flag")
	}

	s.CompleteSearch([]api.BusinessCandidate{{ID: "1"}})
	if s.Loading() {
		t.Fatal("CompleteSearch must clear the loading flag")
	}

	s.BeginSearch()
	s.Fail(errors.New("backend down"))
	if s.Loading() {
		t.Fatal("Fail must clear the loading flag")
	}
	if s.LastError() == nil {
		t.Fatal("Fail must record the error")
	}

	s.BeginSearch()
	if s.LastError() != nil {
		t.Fatal("BeginSearch must reset the last error")
	}
	s.Settle()
	if s.Loading() {
		t.Fatal("Settle must clear the loading flag")
	}
}

func TestCompleteSearchReplacesWholesale(t *testing.T) {
	s := NewStore()
	s.CompleteSearch([]api.BusinessCandidate{{ID: "1", Name: "First"}, {ID: "2", Name: "Second"}})
	s.CompleteSearch([]api.BusinessCandidate{{ID: "9", Name: "Only"}})

	got := s.Candidates()
	if len(got) != 1 || got[0].ID != "9" {
		t.Fatalf("candidates = %+v, want only id 9", got)
	}
	if _, ok := s.CandidateByID("1"); ok {
		t.Fatal("old candidates must not survive a completed search")
	}
}

func TestFailLeavesCandidates(t *testing.T) {
	s := NewStore()
	s.CompleteSearch([]api.BusinessCandidate{{ID: "1"}})
	s.BeginSearch()
	s.Fail(errors.New("timeout"))
	if len(s.Candidates()) != 1 {
		t.Fatal("a failed search must keep the previous candidate list")
	}
}

func TestCandidatesReturnsCopy(t *testing.T) {
	s := NewStore()
	s.CompleteSearch([]api.BusinessCandidate{{ID: "1", Name: "First"}})
	got := s.Candidates()
	got[0].Name = "mutated"
	if fresh := s.Candidates(); fresh[0].Name != "First" {
		t.Fatal("Candidates must return a copy")
	}
}

func TestLocationGenerations(t *testing.T) {
	s := NewStore()
	gen := s.BeginLocationFix()
	if !s.AcceptLocationFix(gen) {
		t.Fatal("current generation must be accepted")
	}

	newer := s.BeginLocationFix()
	if s.AcceptLocationFix(gen) {
		t.Fatal("superseded generation must be rejected")
	}
	if !s.AcceptLocationFix(newer) {
		t.Fatal("newest generation must be accepted")
	}

	s.InvalidateLocationFixes()
	if s.AcceptLocationFix(newer) {
		t.Fatal("invalidation must reject every in-flight generation")
	}
}
