package store

import (
	"fmt"

	"github.com/iov-one/onesig/errors"
)

// EmptyKVStore never holds any data, used as a base layer to test caching.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

// Get always returns nil.
func (EmptyKVStore) Get(key []byte) ([]byte, error) {
	return nil, nil
}

// Has always returns false.
func (EmptyKVStore) Has(key []byte) (bool, error) {
	return false, nil
}

// Set is a noop.
func (EmptyKVStore) Set(key, value []byte) error {
	return nil
}

// Delete is a noop.
func (EmptyKVStore) Delete(key []byte) error {
	return nil
}

// Iterator is always empty.
func (EmptyKVStore) Iterator(start, end []byte) (Iterator, error) {
	return &sliceIterator{}, nil
}

// NewBatch returns a batch that discards all writes.
func (e EmptyKVStore) NewBatch() Batch {
	return NewNonAtomicBatch(e)
}

// Item is a single key value pair.
type Item struct {
	Key   []byte
	Value []byte
}

// NewSliceIterator returns an iterator over already sorted items.
func NewSliceIterator(items []Item) Iterator {
	return &sliceIterator{data: items}
}

type sliceIterator struct {
	data []Item
	idx  int
}

func (s *sliceIterator) Next() (key, value []byte, err error) {
	if s.idx >= len(s.data) {
		return nil, nil, errors.ErrIteratorDone
	}
	it := s.data[s.idx]
	s.idx++
	return it.Key, it.Value, nil
}

func (s *sliceIterator) Release() {
	s.data = nil
}

type opKind int32

const (
	setKind opKind = iota + 1
	delKind
)

// Op is either set or delete.
type Op struct {
	kind  opKind
	key   []byte
	value []byte
}

// Apply performs the operation on given store.
func (o Op) Apply(out SetDeleter) error {
	switch o.kind {
	case setKind:
		return out.Set(o.key, o.value)
	case delKind:
		return out.Delete(o.key)
	default:
		panic(fmt.Sprintf("unknown kind: %d", o.kind))
	}
}

// NonAtomicBatch piles up ops and executes them later on the underlying
// store. Use it only for in-memory stores.
type NonAtomicBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

// NewNonAtomicBatch creates an empty batch to be later written to out.
func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, Op{kind: setKind, key: key, value: value})
	return nil
}

func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, Op{kind: delKind, key: key})
	return nil
}

// Write applies all ops in order and resets the batch.
func (b *NonAtomicBatch) Write() error {
	for _, op := range b.ops {
		if err := op.Apply(b.out); err != nil {
			return err
		}
	}
	b.ops = nil
	return nil
}
