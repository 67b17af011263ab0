package report

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/afairless/asynchronous-downloads/internal/models"
	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name     string
		a        [][]byte
		b        [][]byte
		expected bool
	}{
		{
			name:     "identical lists",
			a:        [][]byte{[]byte("x"), []byte("y")},
			b:        [][]byte{[]byte("x"), []byte("y")},
			expected: true,
		},
		{
			name:     "both empty",
			a:        [][]byte{},
			b:        nil,
			expected: true,
		},
		{
			name:     "different lengths",
			a:        [][]byte{[]byte("x"), []byte("y")},
			b:        [][]byte{[]byte("x")},
			expected: false,
		},
		{
			name:     "different element",
			a:        [][]byte{[]byte("x"), []byte("y")},
			b:        [][]byte{[]byte("x"), []byte("z")},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Equal(tt.a, tt.b))
		})
	}
}

func TestMeasure(t *testing.T) {
	result, err := Measure("sequential", func() ([][]byte, error) {
		time.Sleep(time.Millisecond)
		return [][]byte{[]byte("data")}, nil
	})
	require.NoError(t, err)
	require.Equal(t, "sequential", result.Name)
	require.Positive(t, result.Elapsed)
	require.Len(t, result.Downloads, 1)
}

func TestMeasurePropagatesError(t *testing.T) {
	boom := errors.New("connection refused")
	_, err := Measure("concurrent", func() ([][]byte, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
}

func TestWriteIdenticalVerdict(t *testing.T) {
	downloads := [][]byte{[]byte("same"), []byte("same")}
	first := models.StrategyResult{Name: "sequential", Elapsed: 2 * time.Second, Downloads: downloads}
	second := models.StrategyResult{Name: "concurrent", Elapsed: 200 * time.Millisecond, Downloads: downloads}

	var out bytes.Buffer
	require.NoError(t, Write(&out, first, second))

	text := out.String()
	require.Contains(t, text, "Elapsed time for sequential downloads: 2s")
	require.Contains(t, text, "Elapsed time for concurrent downloads: 200ms")
	require.Contains(t, text, "sequential downloads, first item:\nsame")
	require.Contains(t, text, "concurrent downloads, first item:\nsame")
	require.Contains(t, text, "Both sets of downloads are identical")
}

func TestWriteMismatchVerdict(t *testing.T) {
	first := models.StrategyResult{Name: "sequential", Downloads: [][]byte{[]byte("a")}}
	second := models.StrategyResult{Name: "concurrent", Downloads: [][]byte{[]byte("b")}}

	var out bytes.Buffer
	require.NoError(t, Write(&out, first, second))
	require.Contains(t, out.String(), "The two sets of downloads are not identical")
}

func TestWriteTruncatesLongFirstItem(t *testing.T) {
	long := bytes.Repeat([]byte("z"), previewLimit*2)
	first := models.StrategyResult{Name: "sequential", Downloads: [][]byte{long}}
	second := models.StrategyResult{Name: "concurrent", Downloads: [][]byte{long}}

	var out bytes.Buffer
	require.NoError(t, Write(&out, first, second))
	require.Contains(t, out.String(), string(long[:previewLimit])+"...")
	require.NotContains(t, out.String(), string(long))
}

func TestWriteHandlesEmptyLists(t *testing.T) {
	var out bytes.Buffer
	err := Write(&out, models.StrategyResult{Name: "sequential"}, models.StrategyResult{Name: "concurrent"})
	require.NoError(t, err)
	require.Contains(t, out.String(), "(no downloads)")
}
