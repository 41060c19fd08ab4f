package ledger

import (
	"os"

	"github.com/otiai10/copy"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/stake-ledger/pkg/ledger"
)

const backupSuffix = ".bak"

// importSnapshot loads the snapshot file into the ledger. It returns false if the file does not exist.
func importSnapshot(l *ledger.Ledger, path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, ierrors.Wrap(err, "failed to open snapshot file")
	}
	defer file.Close()

	if err = l.Import(file); err != nil {
		return false, err
	}

	return true, nil
}

// exportSnapshot writes the state into a temporary file that replaces the snapshot file once it is
// complete. The replaced file is kept as backup if requested.
func exportSnapshot(l *ledger.Ledger, path string, keepBackup bool) (err error) {
	tempPath := path + ".tmp"

	file, err := os.Create(tempPath)
	if err != nil {
		return ierrors.Wrap(err, "failed to create snapshot file")
	}

	if err = l.Export(file); err != nil {
		return ierrors.Join(err, file.Close(), os.Remove(tempPath))
	}

	if err = file.Close(); err != nil {
		return ierrors.Join(ierrors.Wrap(err, "failed to close snapshot file"), os.Remove(tempPath))
	}

	if keepBackup {
		if _, err = os.Stat(path); err == nil {
			if err = copy.Copy(path, path+backupSuffix); err != nil {
				return ierrors.Join(ierrors.Wrap(err, "failed to back up snapshot file"), os.Remove(tempPath))
			}
		}
	}

	if err = os.Rename(tempPath, path); err != nil {
		return ierrors.Wrap(err, "failed to replace snapshot file")
	}

	return nil
}
