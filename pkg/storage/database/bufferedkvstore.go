package database

import (
	"bytes"
	"slices"

	"github.com/iotaledger/hive.go/ds/types"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/kvstore/utils"
	"github.com/iotaledger/hive.go/lo"
	"github.com/iotaledger/hive.go/runtime/syncutils"
	"github.com/iotaledger/hive.go/serializer/v2/byteutils"
)

// BufferedKVStore is a kvstore.KVStore that keeps every mutation in memory until Commit is called.
// Reads and iterations observe the buffered mutations layered on top of the parent store.
// All realms derived from the same BufferedKVStore share one buffer.
type BufferedKVStore struct {
	buffer   *mutationBuffer
	dbPrefix kvstore.KeyPrefix
}

// NewBufferedKVStore creates a new BufferedKVStore on top of the given parent store.
func NewBufferedKVStore(parent kvstore.KVStore) *BufferedKVStore {
	return &BufferedKVStore{
		buffer:   newMutationBuffer(parent),
		dbPrefix: kvstore.EmptyPrefix,
	}
}

// Commit writes all buffered mutations of every realm to the parent store in a single batch.
func (s *BufferedKVStore) Commit() error {
	return s.buffer.commit()
}

// Discard drops all buffered mutations of every realm.
func (s *BufferedKVStore) Discard() {
	s.buffer.reset()
}

// PendingMutations returns the number of buffered set and delete operations.
func (s *BufferedKVStore) PendingMutations() int {
	s.buffer.mutex.RLock()
	defer s.buffer.mutex.RUnlock()

	return len(s.buffer.setOperations) + len(s.buffer.deleteOperations)
}

func (s *BufferedKVStore) WithRealm(realm kvstore.Realm) (kvstore.KVStore, error) {
	return &BufferedKVStore{
		buffer:   s.buffer,
		dbPrefix: utils.CopyBytes(realm),
	}, nil
}

func (s *BufferedKVStore) WithExtendedRealm(realm kvstore.Realm) (kvstore.KVStore, error) {
	return s.WithRealm(s.buildKeyPrefix(realm))
}

func (s *BufferedKVStore) Realm() kvstore.Realm {
	return utils.CopyBytes(s.dbPrefix)
}

func (s *BufferedKVStore) Iterate(prefix kvstore.KeyPrefix, kvConsumerFunc kvstore.IteratorKeyValueConsumerFunc, direction ...kvstore.IterDirection) error {
	entries, err := s.buffer.entries(s.buildKeyPrefix(prefix), kvstore.GetIterDirection(direction...))
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !kvConsumerFunc(entry.key[len(s.dbPrefix):], entry.value) {
			break
		}
	}

	return nil
}

func (s *BufferedKVStore) IterateKeys(prefix kvstore.KeyPrefix, consumerFunc kvstore.IteratorKeyConsumerFunc, direction ...kvstore.IterDirection) error {
	return s.Iterate(prefix, func(key kvstore.Key, _ kvstore.Value) bool {
		return consumerFunc(key)
	}, direction...)
}

func (s *BufferedKVStore) Clear() error {
	return s.DeletePrefix(kvstore.EmptyPrefix)
}

func (s *BufferedKVStore) Get(key kvstore.Key) (kvstore.Value, error) {
	s.buffer.mutex.RLock()
	defer s.buffer.mutex.RUnlock()

	return s.buffer.get(byteutils.ConcatBytesToString(s.dbPrefix, key))
}

func (s *BufferedKVStore) Set(key kvstore.Key, value kvstore.Value) error {
	s.buffer.mutex.Lock()
	defer s.buffer.mutex.Unlock()

	s.buffer.set(byteutils.ConcatBytesToString(s.dbPrefix, key), value)

	return nil
}

func (s *BufferedKVStore) Has(key kvstore.Key) (bool, error) {
	s.buffer.mutex.RLock()
	defer s.buffer.mutex.RUnlock()

	return s.buffer.has(byteutils.ConcatBytesToString(s.dbPrefix, key))
}

func (s *BufferedKVStore) Delete(key kvstore.Key) error {
	s.buffer.mutex.Lock()
	defer s.buffer.mutex.Unlock()

	s.buffer.delete(byteutils.ConcatBytesToString(s.dbPrefix, key))

	return nil
}

func (s *BufferedKVStore) DeletePrefix(prefix kvstore.KeyPrefix) error {
	s.buffer.mutex.Lock()
	defer s.buffer.mutex.Unlock()

	return s.buffer.deletePrefix(s.buildKeyPrefix(prefix))
}

// Flush is a no-op, buffered mutations only reach the parent store through Commit.
func (s *BufferedKVStore) Flush() error {
	return nil
}

// Close discards the buffered mutations. The parent store stays open.
func (s *BufferedKVStore) Close() error {
	s.Discard()

	return nil
}

func (s *BufferedKVStore) Batched() (kvstore.BatchedMutations, error) {
	return &bufferedKVStoreBatchedMutations{
		store:            s,
		setOperations:    make(map[string]kvstore.Value),
		deleteOperations: make(map[string]types.Empty),
	}, nil
}

// builds a key usable using the realm and the given prefix.
func (s *BufferedKVStore) buildKeyPrefix(prefix kvstore.KeyPrefix) kvstore.KeyPrefix {
	return byteutils.ConcatBytes(s.dbPrefix, prefix)
}

var _ kvstore.KVStore = &BufferedKVStore{}

// mutationBuffer holds the mutations of a BufferedKVStore keyed by their full key in the parent store.
type mutationBuffer struct {
	parent           kvstore.KVStore
	setOperations    map[string]kvstore.Value
	deleteOperations map[string]types.Empty
	mutex            syncutils.RWMutex
}

func newMutationBuffer(parent kvstore.KVStore) *mutationBuffer {
	return &mutationBuffer{
		parent:           parent,
		setOperations:    make(map[string]kvstore.Value),
		deleteOperations: make(map[string]types.Empty),
	}
}

func (b *mutationBuffer) get(key string) (kvstore.Value, error) {
	if value, exists := b.setOperations[key]; exists {
		return utils.CopyBytes(value), nil
	}

	if _, deleted := b.deleteOperations[key]; deleted {
		return nil, kvstore.ErrKeyNotFound
	}

	return b.parent.Get([]byte(key))
}

func (b *mutationBuffer) has(key string) (bool, error) {
	if _, exists := b.setOperations[key]; exists {
		return true, nil
	}

	if _, deleted := b.deleteOperations[key]; deleted {
		return false, nil
	}

	return b.parent.Has([]byte(key))
}

func (b *mutationBuffer) set(key string, value kvstore.Value) {
	delete(b.deleteOperations, key)
	b.setOperations[key] = utils.CopyBytes(value)
}

func (b *mutationBuffer) delete(key string) {
	delete(b.setOperations, key)
	b.deleteOperations[key] = types.Void
}

func (b *mutationBuffer) deletePrefix(prefix kvstore.KeyPrefix) error {
	for key := range b.setOperations {
		if bytes.HasPrefix([]byte(key), prefix) {
			delete(b.setOperations, key)
		}
	}

	if err := b.parent.IterateKeys(prefix, func(key kvstore.Key) bool {
		b.deleteOperations[string(key)] = types.Void

		return true
	}); err != nil {
		return ierrors.Wrap(err, "failed to iterate parent keys")
	}

	return nil
}

type bufferedEntry struct {
	key   kvstore.Key
	value kvstore.Value
}

// entries returns a sorted snapshot of the merged view so consumers are free to mutate the buffer while iterating.
func (b *mutationBuffer) entries(prefix kvstore.KeyPrefix, direction kvstore.IterDirection) ([]*bufferedEntry, error) {
	b.mutex.RLock()
	defer b.mutex.RUnlock()

	merged := make(map[string]kvstore.Value)
	if err := b.parent.Iterate(prefix, func(key kvstore.Key, value kvstore.Value) bool {
		if _, deleted := b.deleteOperations[string(key)]; !deleted {
			merged[string(key)] = utils.CopyBytes(value)
		}

		return true
	}); err != nil {
		return nil, ierrors.Wrap(err, "failed to iterate parent store")
	}

	for key, value := range b.setOperations {
		if bytes.HasPrefix([]byte(key), prefix) {
			merged[key] = utils.CopyBytes(value)
		}
	}

	keys := lo.Keys(merged)
	slices.Sort(keys)
	if direction == kvstore.IterDirectionBackward {
		slices.Reverse(keys)
	}

	return lo.Map(keys, func(key string) *bufferedEntry {
		return &bufferedEntry{key: []byte(key), value: merged[key]}
	}), nil
}

func (b *mutationBuffer) commit() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	batched, err := b.parent.Batched()
	if err != nil {
		return ierrors.Wrap(err, "failed to create batched mutations")
	}

	for key := range b.deleteOperations {
		if err = batched.Delete([]byte(key)); err != nil {
			batched.Cancel()

			return ierrors.Wrap(err, "failed to batch delete")
		}
	}

	for key, value := range b.setOperations {
		if err = batched.Set([]byte(key), value); err != nil {
			batched.Cancel()

			return ierrors.Wrap(err, "failed to batch set")
		}
	}

	if err = batched.Commit(); err != nil {
		return ierrors.Wrap(err, "failed to commit batched mutations")
	}

	b.clear()

	return nil
}

func (b *mutationBuffer) reset() {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.clear()
}

func (b *mutationBuffer) clear() {
	b.setOperations = make(map[string]kvstore.Value)
	b.deleteOperations = make(map[string]types.Empty)
}

type bufferedKVStoreBatchedMutations struct {
	store            *BufferedKVStore
	setOperations    map[string]kvstore.Value
	deleteOperations map[string]types.Empty
	operationsMutex  syncutils.Mutex
}

func (m *bufferedKVStoreBatchedMutations) Set(key kvstore.Key, value kvstore.Value) error {
	stringKey := byteutils.ConcatBytesToString(m.store.dbPrefix, key)

	m.operationsMutex.Lock()
	defer m.operationsMutex.Unlock()

	delete(m.deleteOperations, stringKey)
	m.setOperations[stringKey] = utils.CopyBytes(value)

	return nil
}

func (m *bufferedKVStoreBatchedMutations) Delete(key kvstore.Key) error {
	stringKey := byteutils.ConcatBytesToString(m.store.dbPrefix, key)

	m.operationsMutex.Lock()
	defer m.operationsMutex.Unlock()

	delete(m.setOperations, stringKey)
	m.deleteOperations[stringKey] = types.Void

	return nil
}

func (m *bufferedKVStoreBatchedMutations) Cancel() {
	m.operationsMutex.Lock()
	defer m.operationsMutex.Unlock()

	m.setOperations = make(map[string]kvstore.Value)
	m.deleteOperations = make(map[string]types.Empty)
}

// Commit moves the batched mutations into the buffer of the store, they are not written to the parent store.
func (m *bufferedKVStoreBatchedMutations) Commit() error {
	m.operationsMutex.Lock()
	defer m.operationsMutex.Unlock()

	m.store.buffer.mutex.Lock()
	defer m.store.buffer.mutex.Unlock()

	for key := range m.deleteOperations {
		m.store.buffer.delete(key)
	}

	for key, value := range m.setOperations {
		m.store.buffer.set(key, value)
	}

	return nil
}
