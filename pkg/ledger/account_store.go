package ledger

import (
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/kvstore"
)

// accountStore is a typed realm keyed by Address.
type accountStore[V any] struct {
	name string
	kv   *kvstore.TypedStore[Address, V]
}

func newAccountStore[V any](name string, kv kvstore.KVStore, vToBytes kvstore.ObjectToBytes[V], bytesToV kvstore.BytesToObject[V]) *accountStore[V] {
	return &accountStore[V]{
		name: name,
		kv:   kvstore.NewTypedStore(kv, Address.Bytes, AddressFromBytes, vToBytes, bytesToV),
	}
}

func (s *accountStore[V]) Load(account Address) (value V, exists bool, err error) {
	value, err = s.kv.Get(account)
	if err != nil {
		var zeroValue V
		if ierrors.Is(err, kvstore.ErrKeyNotFound) {
			return zeroValue, false, nil
		}

		return zeroValue, false, ierrors.Wrapf(err, "failed to get %s of account %s", s.name, account)
	}

	return value, true, nil
}

func (s *accountStore[V]) Store(account Address, value V) error {
	if err := s.kv.Set(account, value); err != nil {
		return ierrors.Wrapf(err, "failed to store %s of account %s", s.name, account)
	}

	return nil
}

func (s *accountStore[V]) Has(account Address) (bool, error) {
	return s.kv.Has(account)
}

func (s *accountStore[V]) Delete(account Address) error {
	if err := s.kv.Delete(account); err != nil {
		return ierrors.Wrapf(err, "failed to delete %s of account %s", s.name, account)
	}

	return nil
}

// Clear deletes every entry of the store.
func (s *accountStore[V]) Clear() error {
	if err := s.kv.KVStore().Clear(); err != nil {
		return ierrors.Wrapf(err, "failed to clear %s", s.name)
	}

	return nil
}

// Stream calls the consumer for every entry in ascending account order until it returns an error.
func (s *accountStore[V]) Stream(consumer func(account Address, value V) error) error {
	var innerErr error
	if storageErr := s.kv.Iterate(kvstore.EmptyPrefix, func(account Address, value V) (advance bool) {
		innerErr = consumer(account, value)

		return innerErr == nil
	}); storageErr != nil {
		return ierrors.Wrapf(storageErr, "failed to iterate over %s", s.name)
	}

	if innerErr != nil {
		return ierrors.Wrapf(innerErr, "failed to stream %s", s.name)
	}

	return nil
}

func (s *accountStore[V]) StreamKeys(consumer func(account Address) error) error {
	var innerErr error
	if storageErr := s.kv.IterateKeys(kvstore.EmptyPrefix, func(account Address) (advance bool) {
		innerErr = consumer(account)

		return innerErr == nil
	}); storageErr != nil {
		return ierrors.Wrapf(storageErr, "failed to iterate over keys of %s", s.name)
	}

	if innerErr != nil {
		return ierrors.Wrapf(innerErr, "failed to stream keys of %s", s.name)
	}

	return nil
}
