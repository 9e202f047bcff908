package store

import (
	"bytes"

	"github.com/iov-one/onesig/errors"
)

// mergeIterator combines a snapshot of cached items with the iterator of
// the backing store. A cached item wins over a parent item with the same
// key and a cached delete hides it.
type mergeIterator struct {
	parent Iterator
	// next parent item, valid when loaded is true
	pkey, pval []byte
	loaded     bool
	pdone      bool

	cache []keyer
	idx   int
}

var _ Iterator = (*mergeIterator)(nil)

func (m *mergeIterator) peekParent() error {
	if m.loaded || m.pdone {
		return nil
	}
	key, value, err := m.parent.Next()
	switch {
	case errors.ErrIteratorDone.Is(err):
		m.pdone = true
		return nil
	case err != nil:
		return err
	}
	m.pkey, m.pval, m.loaded = key, value, true
	return nil
}

func (m *mergeIterator) Next() (key, value []byte, err error) {
	for {
		if err := m.peekParent(); err != nil {
			return nil, nil, err
		}

		if m.idx >= len(m.cache) {
			if !m.loaded {
				return nil, nil, errors.ErrIteratorDone
			}
			m.loaded = false
			return m.pkey, m.pval, nil
		}

		c := m.cache[m.idx]
		if m.loaded {
			switch cmp := bytes.Compare(c.Key(), m.pkey); {
			case cmp > 0:
				m.loaded = false
				return m.pkey, m.pval, nil
			case cmp == 0:
				// Shadowed by the cache.
				m.loaded = false
			}
		}
		m.idx++
		if s, ok := c.(setItem); ok {
			return s.key, s.value, nil
		}
	}
}

func (m *mergeIterator) Release() {
	m.parent.Release()
	m.cache = nil
}
