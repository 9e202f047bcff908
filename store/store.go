package store

import "github.com/iov-one/onesig"

// Shorter names for all storage types.
type (
	ReadOnlyKVStore  = onesig.ReadOnlyKVStore
	SetDeleter       = onesig.SetDeleter
	KVStore          = onesig.KVStore
	Batch            = onesig.Batch
	Iterator         = onesig.Iterator
	CacheableKVStore = onesig.CacheableKVStore
	KVCacheWrap      = onesig.KVCacheWrap
	CommitKVStore    = onesig.CommitKVStore
	CommitID         = onesig.CommitID
)
