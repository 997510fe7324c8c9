package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []Record {
	return []Record{
		{ID: "a", Date: "2024-01-10", Weight: 70},
		{ID: "b", Date: "2024-01-01", Weight: 69},
		{ID: "c", Date: "2024-01-05", Weight: 68.5},
	}
}

func TestLatestIsLastInserted(t *testing.T) {
	latest, ok := Latest(sample())
	require.True(t, ok)
	assert.Equal(t, "c", latest.ID)

	_, ok = Latest(nil)
	assert.False(t, ok)
}

func TestRemoveAt(t *testing.T) {
	records := sample()

	out, ok := RemoveAt(records, 1)
	require.True(t, ok)
	assert.Equal(t, []Record{records[0], records[2]}, out)
	assert.Len(t, records, 3, "input must not be modified")

	// indices are relative to the new sequence
	out, ok = RemoveAt(out, 1)
	require.True(t, ok)
	assert.Equal(t, []Record{records[0]}, out)

	for _, idx := range []int{-1, 3, 100} {
		same, ok := RemoveAt(records, idx)
		assert.False(t, ok)
		assert.Equal(t, records, same)
	}
}

func TestIndexOf(t *testing.T) {
	assert.Equal(t, 2, IndexOf(sample(), "c"))
	assert.Equal(t, -1, IndexOf(sample(), "zzz"))
	assert.Equal(t, -1, IndexOf([]Record{{Date: "2024-01-01"}}, ""))
}
