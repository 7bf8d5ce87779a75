// Package history keeps a bounded undo/redo buffer of serialized circuit
// documents. Snapshots are taken and restored atomically between ticks;
// restoring one must stop a running simulation first, which the sandbox
// orchestrator enforces.
package history

import (
	"github.com/cespare/xxhash/v2"

	"github.com/myteklab/CircuitSim/internal/core/circuit"
	"github.com/myteklab/CircuitSim/internal/core/observability/log"
)

// DefaultLimit bounds the undo depth when no other limit is configured.
const DefaultLimit = 64

type entry struct {
	data   []byte
	digest uint64
}

// Buffer is the snapshot stack. The newest entry in past is the current
// state; undo moves it onto the redo stack. Not safe for concurrent use,
// matching the single-tick-context execution model.
type Buffer struct {
	logger log.Log
	limit  int

	past   []entry
	future []entry
}

// New creates a buffer holding at most limit snapshots.
func New(limit int, logger log.Log) *Buffer {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Buffer{
		logger: logger.With(log.String("component", "history")),
		limit:  limit,
	}
}

// Push records a snapshot of the document. A snapshot identical to the
// current top is skipped, so callers can push unconditionally after every
// interaction; the digest comparison keeps the buffer free of no-op entries.
// Any pending redo states are discarded.
func (b *Buffer) Push(doc circuit.Document) error {
	data, err := doc.Encode()
	if err != nil {
		return err
	}
	digest := xxhash.Sum64(data)
	if n := len(b.past); n > 0 && b.past[n-1].digest == digest {
		return nil
	}

	b.past = append(b.past, entry{data: data, digest: digest})
	if len(b.past) > b.limit {
		b.past = append(b.past[:0], b.past[len(b.past)-b.limit:]...)
	}
	b.future = nil

	b.logger.Debug("snapshot recorded", log.Int("depth", len(b.past)))
	return nil
}

// CanUndo reports whether an earlier snapshot exists.
func (b *Buffer) CanUndo() bool {
	return len(b.past) > 1
}

// CanRedo reports whether an undone snapshot can be reapplied.
func (b *Buffer) CanRedo() bool {
	return len(b.future) > 0
}

// Undo steps back one snapshot and returns the document to restore.
func (b *Buffer) Undo() (circuit.Document, bool) {
	if !b.CanUndo() {
		return circuit.Document{}, false
	}
	n := len(b.past)
	b.future = append(b.future, b.past[n-1])
	b.past = b.past[:n-1]
	return b.decodeTop()
}

// Redo reapplies the most recently undone snapshot.
func (b *Buffer) Redo() (circuit.Document, bool) {
	if !b.CanRedo() {
		return circuit.Document{}, false
	}
	n := len(b.future)
	b.past = append(b.past, b.future[n-1])
	b.future = b.future[:n-1]
	return b.decodeTop()
}

func (b *Buffer) decodeTop() (circuit.Document, bool) {
	top := b.past[len(b.past)-1]
	doc, err := circuit.DecodeDocument(top.data)
	if err != nil {
		// A snapshot we encoded ourselves should never fail to decode.
		b.logger.Error("corrupt snapshot", log.Error(err))
		return circuit.Document{}, false
	}
	return doc, true
}

// Depth returns the number of retained snapshots.
func (b *Buffer) Depth() int {
	return len(b.past)
}
