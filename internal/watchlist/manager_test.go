package watchlist

import (
	"fmt"
	"sync"
	"testing"

	"CaptionComposer/internal/analyzer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager(t *testing.T) {
	m, err := NewManager([]string{"nvda", "AAPL"}, analyzer.NormalizeTicker)
	require.NoError(t, err)
	assert.Equal(t, []string{"NVDA", "AAPL"}, m.Tickers())
	assert.Equal(t, []string{"AAPL", "NVDA"}, m.Sorted())

	got, err := m.Add(" ibit ")
	require.NoError(t, err)
	assert.Equal(t, "IBIT", got)

	_, err = m.Add("aapl")
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = m.Add("TOOLONGTICKER")
	assert.ErrorIs(t, err, analyzer.ErrInvalidTicker)

	got, err = m.Remove("nvda")
	require.NoError(t, err)
	assert.Equal(t, "NVDA", got)
	assert.Equal(t, []string{"AAPL", "IBIT"}, m.Tickers())

	_, err = m.Remove("NVDA")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_BadSeed(t *testing.T) {
	_, err := NewManager([]string{"AAPL", "aapl"}, analyzer.NormalizeTicker)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestManager_Full(t *testing.T) {
	m, err := NewManager(nil, analyzer.NormalizeTicker)
	require.NoError(t, err)
	for i := 0; i < MaxSize; i++ {
		_, err := m.Add(fmt.Sprintf("T%d", i))
		require.NoError(t, err)
	}
	_, err = m.Add("ONEMORE")
	assert.ErrorIs(t, err, ErrFull)
}

func TestManager_Concurrent(t *testing.T) {
	m, err := NewManager(nil, analyzer.NormalizeTicker)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = m.Add(fmt.Sprintf("C%d", i))
			_ = m.Tickers()
		}(i)
	}
	wg.Wait()
	assert.Len(t, m.Tickers(), 20)
}
