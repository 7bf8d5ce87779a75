package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myteklab/CircuitSim/internal/core/circuit"
)

// docWith builds a document snapshot of a circuit containing n loads.
func docWith(t *testing.T, n int) circuit.Document {
	t.Helper()
	c := circuit.New()
	for i := 0; i < n; i++ {
		_, err := c.AddComponent(circuit.KindLoad, circuit.Point{X: float64(i)})
		require.NoError(t, err)
	}
	return c.ToDocument()
}

func TestPushAndUndoRedo(t *testing.T) {
	b := New(8, nil)
	require.NoError(t, b.Push(docWith(t, 0)))
	require.NoError(t, b.Push(docWith(t, 1)))
	require.NoError(t, b.Push(docWith(t, 2)))
	require.Equal(t, 3, b.Depth())
	require.True(t, b.CanUndo())
	require.False(t, b.CanRedo())

	doc, ok := b.Undo()
	require.True(t, ok)
	assert.Len(t, doc.Components, 1)
	assert.True(t, b.CanRedo())

	doc, ok = b.Undo()
	require.True(t, ok)
	assert.Empty(t, doc.Components)
	assert.False(t, b.CanUndo(), "the initial snapshot is the floor")

	doc, ok = b.Redo()
	require.True(t, ok)
	assert.Len(t, doc.Components, 1)

	doc, ok = b.Redo()
	require.True(t, ok)
	assert.Len(t, doc.Components, 2)
	assert.False(t, b.CanRedo())
}

func TestUndoBelowFloorFails(t *testing.T) {
	b := New(8, nil)
	require.NoError(t, b.Push(docWith(t, 0)))

	_, ok := b.Undo()
	assert.False(t, ok)

	_, ok = b.Redo()
	assert.False(t, ok)
}

func TestIdenticalSnapshotSkipped(t *testing.T) {
	b := New(8, nil)
	doc := docWith(t, 1)
	require.NoError(t, b.Push(doc))
	require.NoError(t, b.Push(doc))
	require.NoError(t, b.Push(doc))
	assert.Equal(t, 1, b.Depth(), "no-op pushes are deduplicated")
}

func TestPushDiscardsRedoStates(t *testing.T) {
	b := New(8, nil)
	require.NoError(t, b.Push(docWith(t, 0)))
	require.NoError(t, b.Push(docWith(t, 1)))
	_, ok := b.Undo()
	require.True(t, ok)
	require.True(t, b.CanRedo())

	require.NoError(t, b.Push(docWith(t, 3)))
	assert.False(t, b.CanRedo(), "a new edit forks history")
}

func TestLimitTrimsOldest(t *testing.T) {
	b := New(3, nil)
	for i := 0; i < 6; i++ {
		require.NoError(t, b.Push(docWith(t, i)))
	}
	assert.Equal(t, 3, b.Depth())

	// Walk all the way back: the oldest reachable snapshot has 3 loads.
	var last circuit.Document
	for b.CanUndo() {
		doc, ok := b.Undo()
		require.True(t, ok)
		last = doc
	}
	assert.Len(t, last.Components, 3)
}
