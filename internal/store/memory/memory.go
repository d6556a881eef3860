// Package memory is an in-process store of completed tabulations,
// keyed by election id. It exists for tests and single-shot CLI runs
// that have no postgres available, the same role the teacher's
// backend/memory package plays for vote backends: same mutex-guarded
// map shape, same doesNotExist marker-error idiom.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/openslides/rcvtab/rcv"
)

// Store holds completed voting results in memory.
type Store struct {
	mu      sync.Mutex
	results map[string]rcv.VotingResult
}

// New initializes an empty Store.
func New() *Store {
	return &Store{results: make(map[string]rcv.VotingResult)}
}

func (s *Store) String() string {
	return "memory"
}

// Save records the result of a completed tabulation under electionID,
// overwriting any previous result for the same id.
func (s *Store) Save(_ context.Context, electionID string, result rcv.VotingResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results[electionID] = result
	return nil
}

// Load fetches a previously saved result.
func (s *Store) Load(_ context.Context, electionID string) (rcv.VotingResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, ok := s.results[electionID]
	if !ok {
		return rcv.VotingResult{}, doesNotExistError{fmt.Errorf("no result stored for election %q", electionID)}
	}
	return result, nil
}

// Delete removes a stored result, if any.
func (s *Store) Delete(_ context.Context, electionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.results, electionID)
	return nil
}

type doesNotExistError struct {
	error
}

func (doesNotExistError) DoesNotExist() {}
