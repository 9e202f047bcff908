package orm

import (
	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/errors"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	onesig.Persistent
	Validate() error
}

// ModelBucket stores models of a single kind under a common key prefix.
type ModelBucket struct {
	prefix []byte
}

// NewModelBucket returns a bucket that keeps its models under the
// "<name>:" key prefix. Name must be unique in the application.
func NewModelBucket(name string) ModelBucket {
	if !isBucketName(name) {
		panic("invalid bucket name: " + name)
	}
	return ModelBucket{prefix: []byte(name + ":")}
}

// DBKey returns the full database key of given primary key.
func (mb ModelBucket) DBKey(key []byte) []byte {
	return append(append(make([]byte, 0, len(mb.prefix)+len(key)), mb.prefix...), key...)
}

// One loads the model stored under given key into dest. It returns
// ErrNotFound if the entity does not exist.
func (mb ModelBucket) One(db onesig.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(mb.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot load from the database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot unmarshal %T: %s", dest, err)
	}
	return nil
}

// Has returns true if a model is stored under given key.
func (mb ModelBucket) Has(db onesig.ReadOnlyKVStore, key []byte) (bool, error) {
	ok, err := db.Has(mb.DBKey(key))
	if err != nil {
		return false, errors.Wrap(err, "cannot query the database")
	}
	return ok, nil
}

// Put validates and saves given model under the key.
func (mb ModelBucket) Put(db onesig.KVStore, key []byte, m Model) error {
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot marshal %T: %s", m, err)
	}
	if err := db.Set(mb.DBKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

// Delete removes an entity with given key. It returns ErrNotFound if an
// entity with given key does not exist.
func (mb ModelBucket) Delete(db onesig.KVStore, key []byte) error {
	dbkey := mb.DBKey(key)
	ok, err := db.Has(dbkey)
	if err != nil {
		return errors.Wrap(err, "cannot query the database")
	}
	if !ok {
		return errors.ErrNotFound
	}
	return db.Delete(dbkey)
}

// Scan returns an iterator over all models whose key starts with given
// prefix. A nil prefix iterates the whole bucket.
func (mb ModelBucket) Scan(db onesig.ReadOnlyKVStore, prefix []byte) (*ModelIterator, error) {
	start := mb.DBKey(prefix)
	it, err := db.Iterator(start, prefixEnd(start))
	if err != nil {
		return nil, errors.Wrap(err, "cannot iterate the database")
	}
	return &ModelIterator{it: it, trim: len(mb.prefix)}, nil
}

// ModelIterator decodes models from a bucket scan.
type ModelIterator struct {
	it   onesig.Iterator
	trim int
}

// LoadNext loads the next model into dest and returns its key without the
// bucket prefix. It returns ErrIteratorDone at the end.
func (m *ModelIterator) LoadNext(dest Model) ([]byte, error) {
	key, value, err := m.it.Next()
	if err != nil {
		return nil, err
	}
	if err := dest.Unmarshal(value); err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "cannot unmarshal %T: %s", dest, err)
	}
	return key[m.trim:], nil
}

// Release releases the underlying iterator.
func (m *ModelIterator) Release() {
	m.it.Release()
}

// prefixEnd returns the smallest key that is greater than all keys with
// given prefix, or nil if there is none.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

func isBucketName(name string) bool {
	if len(name) < 3 || len(name) > 20 {
		return false
	}
	for _, c := range name {
		if (c < 'a' || c > 'z') && c != '_' {
			return false
		}
	}
	return true
}
