package database

import "github.com/iotaledger/hive.go/ierrors"

var (
	ErrNoVersionPersisted  = ierrors.New("no database version was persisted")
	ErrIncompatibleVersion = ierrors.New("incompatible database version")
)
