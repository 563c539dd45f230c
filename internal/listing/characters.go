package listing

import (
	"context"
	"errors"
	"sync"

	"github.com/adamavenir/heroes/internal/core"
	"github.com/adamavenir/heroes/internal/marvel"
	"github.com/adamavenir/heroes/internal/types"
)

// Fetcher is the remote source of characters.
type Fetcher interface {
	FetchCharacters(ctx context.Context) (*marvel.CharacterResponse, error)
}

// State is the observable state of a CharacterList: Idle, Loaded or Failed.
type State interface {
	isState()
}

// Idle means no load has completed yet.
type Idle struct{}

// Loaded carries the mapped batch from the last successful load.
type Loaded struct {
	Characters []types.CharacterInfo
}

// Failed carries the error from the last failed load.
type Failed struct {
	Err error
}

func (Idle) isState()   {}
func (Loaded) isState() {}
func (Failed) isState() {}

// Empty reports whether a loaded batch has no characters.
func (l Loaded) Empty() bool {
	return len(l.Characters) == 0
}

// CharacterList fetches characters and holds the current list.
// Loads may overlap; a load that completes after a newer one is dropped.
type CharacterList struct {
	fetcher  Fetcher
	onChange func(State)

	mu        sync.Mutex
	state     State
	started   uint64
	completed uint64
}

// NewCharacterList creates a list in the Idle state. onChange may be nil.
func NewCharacterList(fetcher Fetcher, onChange func(State)) *CharacterList {
	return &CharacterList{
		fetcher:  fetcher,
		onChange: onChange,
		state:    Idle{},
	}
}

// Load fetches once and publishes the resulting state. The callback fires
// once per load, after the whole batch is mapped. A stale result leaves the
// current state in place and is returned without notifying.
func (l *CharacterList) Load(ctx context.Context) State {
	l.mu.Lock()
	l.started++
	seq := l.started
	l.mu.Unlock()

	var next State
	resp, err := l.fetcher.FetchCharacters(ctx)
	switch {
	case err != nil:
		next = Failed{Err: err}
	case resp == nil:
		next = Failed{Err: errors.New("empty response")}
	default:
		next = Loaded{Characters: MapCharacters(resp.Data.Results)}
	}

	l.mu.Lock()
	if seq < l.completed {
		l.mu.Unlock()
		return next
	}
	l.completed = seq
	l.state = next
	onChange := l.onChange
	l.mu.Unlock()

	if onChange != nil {
		onChange(next)
	}
	return next
}

// State returns the current state.
func (l *CharacterList) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Characters returns the loaded list, or nil when not Loaded.
func (l *CharacterList) Characters() []types.CharacterInfo {
	if loaded, ok := l.State().(Loaded); ok {
		return loaded.Characters
	}
	return nil
}

// Filtered returns the loaded list narrowed by a search query.
func (l *CharacterList) Filtered(query string) []types.CharacterInfo {
	return core.FilterByName(l.Characters(), query)
}
