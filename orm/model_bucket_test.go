package orm

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/onesig/errors"
	"github.com/iov-one/onesig/store"
	"github.com/iov-one/onesig/weavetest/assert"
)

type counter struct {
	Name  string
	Count int
}

func (c *counter) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

func (c *counter) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, c)
}

func (c *counter) Validate() error {
	if c.Name == "" {
		return errors.Field("Name", errors.ErrEmpty, "required")
	}
	return nil
}

func TestModelBucket(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("counters")

	assert.Nil(t, b.Put(db, []byte("a"), &counter{Name: "a", Count: 1}))
	assert.Nil(t, b.Put(db, []byte("b"), &counter{Name: "b", Count: 2}))

	var c counter
	assert.Nil(t, b.One(db, []byte("b"), &c))
	assert.Equal(t, counter{Name: "b", Count: 2}, c)

	ok, err := b.Has(db, []byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, true, ok)

	assert.IsErr(t, errors.ErrNotFound, b.One(db, []byte("zz"), &c))
	assert.FieldError(t, b.Put(db, []byte("x"), &counter{}), "Name", errors.ErrEmpty)

	assert.Nil(t, b.Delete(db, []byte("a")))
	assert.IsErr(t, errors.ErrNotFound, b.Delete(db, []byte("a")))
}

func TestModelBucketScan(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("counters")
	other := NewModelBucket("counterz")

	for _, k := range []string{"x/1", "x/2", "y/1"} {
		assert.Nil(t, b.Put(db, []byte(k), &counter{Name: k}))
	}
	assert.Nil(t, other.Put(db, []byte("x/9"), &counter{Name: "other"}))

	it, err := b.Scan(db, []byte("x/"))
	assert.Nil(t, err)
	defer it.Release()

	var keys []string
	for {
		var c counter
		key, err := it.LoadNext(&c)
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		assert.Nil(t, err)
		assert.Equal(t, string(key), c.Name)
		keys = append(keys, string(key))
	}
	assert.Equal(t, []string{"x/1", "x/2"}, keys)
}

func TestPrefixEnd(t *testing.T) {
	assert.Equal(t, []byte("b"), prefixEnd([]byte("a")))
	assert.Equal(t, []byte{0x01}, prefixEnd([]byte{0x00, 0xff}))
	assert.Nil(t, prefixEnd([]byte{0xff, 0xff}))
}
