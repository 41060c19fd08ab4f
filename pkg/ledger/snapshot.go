package ledger

import (
	"crypto/sha256"
	"encoding/binary"
	"io"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/serializer/v2"
	"github.com/iotaledger/hive.go/serializer/v2/stream"
	"github.com/iotaledger/stake-ledger/pkg/storage/database"
)

// Export writes every committed entry of the ledger store in key order.
func (l *Ledger) Export(writer io.WriteSeeker) error {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	if err := stream.WriteCollection(writer, serializer.SeriLengthPrefixTypeAsUint32, func() (elementsCount int, err error) {
		var innerErr error
		if err = database.NewBufferedKVStore(l.store).Iterate(kvstore.EmptyPrefix, func(key kvstore.Key, value kvstore.Value) bool {
			if innerErr = stream.WriteBytesWithSize(writer, key, serializer.SeriLengthPrefixTypeAsUint32); innerErr != nil {
				return false
			}

			if innerErr = stream.WriteBytesWithSize(writer, value, serializer.SeriLengthPrefixTypeAsUint32); innerErr != nil {
				return false
			}

			elementsCount++

			return true
		}); err != nil {
			return 0, ierrors.Wrap(err, "failed to iterate ledger store")
		}

		return elementsCount, innerErr
	}); err != nil {
		return ierrors.Wrap(err, "failed to export ledger state")
	}

	return nil
}

// Import reads a snapshot written by Export into an empty ledger store.
func (l *Ledger) Import(reader io.ReadSeeker) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	empty, err := l.isEmpty()
	if err != nil {
		return err
	}

	if !empty {
		return ierrors.WithMessage(ErrAlreadyInitialized, "can not import a snapshot into a non-empty store")
	}

	buffer := database.NewBufferedKVStore(l.store)

	if err = stream.ReadCollection(reader, serializer.SeriLengthPrefixTypeAsUint32, func(i int) error {
		key, err := stream.ReadBytesWithSize(reader, serializer.SeriLengthPrefixTypeAsUint32)
		if err != nil {
			return ierrors.Wrapf(err, "failed to read key of entry %d", i)
		}

		value, err := stream.ReadBytesWithSize(reader, serializer.SeriLengthPrefixTypeAsUint32)
		if err != nil {
			return ierrors.Wrapf(err, "failed to read value of entry %d", i)
		}

		return buffer.Set(key, value)
	}); err != nil {
		buffer.Discard()

		return ierrors.Wrap(err, "failed to import ledger state")
	}

	if err = database.CheckVersion(buffer, DatabaseVersion); err != nil {
		buffer.Discard()

		return err
	}

	if _, err = newState(buffer).loadConfig(); err != nil {
		buffer.Discard()

		return ierrors.Wrap(err, "snapshot does not contain a ledger config")
	}

	if err = buffer.Commit(); err != nil {
		return ierrors.Wrap(err, "failed to commit imported ledger state")
	}

	l.LogInfo("ledger state imported")

	return nil
}

// isEmpty ignores the schema version, it is written as soon as a store is opened.
func (l *Ledger) isEmpty() (bool, error) {
	empty := true
	if err := l.store.IterateKeys(kvstore.EmptyPrefix, func(key kvstore.Key) bool {
		if database.IsVersionKey(key) {
			return true
		}

		empty = false

		return false
	}); err != nil {
		return false, ierrors.Wrap(err, "failed to iterate ledger store")
	}

	return empty, nil
}

// StateSHA256Sum hashes every committed entry in key order.
func (l *Ledger) StateSHA256Sum() ([32]byte, error) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	stateHash := sha256.New()

	if err := database.NewBufferedKVStore(l.store).Iterate(kvstore.EmptyPrefix, func(key kvstore.Key, value kvstore.Value) bool {
		stateHash.Write(binary.LittleEndian.AppendUint32(nil, uint32(len(key))))
		stateHash.Write(key)
		stateHash.Write(binary.LittleEndian.AppendUint32(nil, uint32(len(value))))
		stateHash.Write(value)

		return true
	}); err != nil {
		return [32]byte{}, ierrors.Wrap(err, "failed to iterate ledger store")
	}

	var checksum [32]byte
	copy(checksum[:], stateHash.Sum(nil))

	return checksum, nil
}
