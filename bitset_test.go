package cajal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestActiveSetInsertContains(t *testing.T) {
	s := newActiveSet(200)
	require.False(t, s.Contains(5))

	s.Insert(5)
	require.True(t, s.Contains(5))
	require.Equal(t, 1, s.Len())

	s.Insert(5)
	require.Equal(t, 1, s.Len(), "inserting twice should not double-count")

	s.Insert(199)
	require.Equal(t, 2, s.Len())
}

func TestActiveSetEachIsAscending(t *testing.T) {
	s := newActiveSet(300)
	for _, i := range []uint32{200, 5, 130, 0, 64, 63} {
		s.Insert(i)
	}

	var seen []uint32
	s.Each(func(i uint32) { seen = append(seen, i) })

	require.Equal(t, []uint32{0, 5, 63, 64, 130, 200}, seen)
}

func TestActiveSetClear(t *testing.T) {
	s := newActiveSet(128)
	s.Insert(1)
	s.Insert(2)
	s.Clear()

	require.Equal(t, 0, s.Len())
	require.False(t, s.Contains(1))
	require.False(t, s.Contains(2))
}
