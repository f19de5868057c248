package watchlist

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// MaxSize bounds how many tickers a watchlist may hold.
const MaxSize = 25

var (
	ErrDuplicate = errors.New("ticker already watched")
	ErrNotFound  = errors.New("ticker not watched")
	ErrFull      = fmt.Errorf("watchlist holds at most %d tickers", MaxSize)
)

// Normalizer canonicalizes and validates a ticker.
type Normalizer func(raw string) (string, error)

// Manager holds the in-memory watchlist with concurrency safety.
type Manager struct {
	mu        sync.Mutex
	tickers   []string
	normalize Normalizer
}

// NewManager creates a Manager seeded with initial. Invalid or duplicate
// seeds are rejected.
func NewManager(initial []string, normalize Normalizer) (*Manager, error) {
	m := &Manager{normalize: normalize}
	for _, t := range initial {
		if _, err := m.Add(t); err != nil {
			return nil, fmt.Errorf("seed %q: %w", t, err)
		}
	}
	return m, nil
}

// Tickers returns a copy of the watched tickers in insertion order.
func (m *Manager) Tickers() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.tickers...)
}

// Sorted returns the watched tickers alphabetically.
func (m *Manager) Sorted() []string {
	out := m.Tickers()
	sort.Strings(out)
	return out
}

// Add normalizes raw and appends it, returning the stored symbol.
func (m *Manager) Add(raw string) (string, error) {
	ticker, err := m.normalize(raw)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.indexOf(ticker) >= 0 {
		return ticker, ErrDuplicate
	}
	if len(m.tickers) >= MaxSize {
		return ticker, ErrFull
	}
	m.tickers = append(m.tickers, ticker)
	return ticker, nil
}

// Remove drops raw from the watchlist, returning the normalized symbol.
func (m *Manager) Remove(raw string) (string, error) {
	ticker, err := m.normalize(raw)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(ticker)
	if i < 0 {
		return ticker, ErrNotFound
	}
	m.tickers = append(m.tickers[:i], m.tickers[i+1:]...)
	return ticker, nil
}

func (m *Manager) indexOf(ticker string) int {
	for i, t := range m.tickers {
		if t == ticker {
			return i
		}
	}
	return -1
}
