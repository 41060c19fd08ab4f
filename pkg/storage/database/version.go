package database

import (
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/kvstore"
)

// Version is the schema version of the data persisted in a store.
type Version byte

func (v Version) Bytes() ([]byte, error) {
	return []byte{byte(v)}, nil
}

func VersionFromBytes(bytes []byte) (Version, int, error) {
	if len(bytes) == 0 {
		return 0, 0, ErrNoVersionPersisted
	}

	return Version(bytes[0]), 1, nil
}

var dbVersionKey = []byte("db_version")

func versionValue(db kvstore.KVStore) *kvstore.TypedValue[Version] {
	return kvstore.NewTypedValue(db, dbVersionKey, Version.Bytes, VersionFromBytes)
}

// CheckVersion checks whether the store is compatible with the given schema version.
// The version is written if the store does not carry one yet.
func CheckVersion(db kvstore.KVStore, version Version) error {
	storedVersion, err := versionValue(db).Get()
	if ierrors.Is(err, kvstore.ErrKeyNotFound) {
		return versionValue(db).Set(version)
	}
	if err != nil {
		return ierrors.Wrap(err, "failed to read database version")
	}

	if storedVersion != version {
		return ierrors.WithMessagef(ErrIncompatibleVersion, "supported version: %d, version of database: %d", version, storedVersion)
	}

	return nil
}

// IsVersionKey returns true if the given key is the key the schema version is stored under.
func IsVersionKey(key kvstore.Key) bool {
	return string(key) == string(dbVersionKey)
}
