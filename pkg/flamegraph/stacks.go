package flamegraph

import (
	"encoding/binary"
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/dolthub/swiss"

	"github.com/danpilch/stackcollapse/pkg/symtab"
)

const noRecord = -1

// stackRecord is one distinct stack and the number of times it was seen.
type stackRecord struct {
	ids   []symtab.ID
	count uint64
	// next chains records whose ids hash to the same value.
	next int32
}

// stackTable counts occurrences of symbol id sequences. Sequences are hashed
// with xxhash; records sharing a hash are chained and compared exactly, so
// hash collisions never merge distinct stacks.
type stackTable struct {
	heads   *swiss.Map[uint64, int32]
	records []stackRecord
	scratch []byte
}

func newStackTable(sizeHint int) *stackTable {
	if sizeHint < 1 {
		sizeHint = 1
	}
	return &stackTable{
		heads:   swiss.NewMap[uint64, int32](uint32(sizeHint)),
		records: make([]stackRecord, 0, sizeHint),
	}
}

func (t *stackTable) hash(ids []symtab.ID) uint64 {
	b := t.scratch[:0]
	for _, id := range ids {
		b = binary.LittleEndian.AppendUint32(b, uint32(id))
	}
	t.scratch = b
	return xxhash.Sum64(b)
}

// add increments the count of ids, inserting it with a count of one if it
// is new. ids is copied on insertion and may be reused by the caller.
func (t *stackTable) add(ids []symtab.ID) {
	h := t.hash(ids)
	head, ok := t.heads.Get(h)
	if !ok {
		head = noRecord
	}
	for i := head; i != noRecord; i = t.records[i].next {
		if slices.Equal(t.records[i].ids, ids) {
			t.records[i].count++
			return
		}
	}
	t.records = append(t.records, stackRecord{
		ids:   slices.Clone(ids),
		count: 1,
		next:  head,
	})
	t.heads.Put(h, int32(len(t.records)-1))
}

// len returns the number of distinct stacks.
func (t *stackTable) len() int {
	return len(t.records)
}
