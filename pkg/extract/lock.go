package extract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/iconpack/pkg/errors"
)

// LockFileName is created in the output directory while an extraction runs
const LockFileName = ".iconpack.lock"

type dirLock struct {
	path string
}

// acquireLock takes the output directory lock or fails with ErrLocked
func acquireLock(dir string) (*dirLock, error) {
	path := filepath.Join(dir, LockFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil, errors.New(errors.ErrLocked,
				"another extraction is writing to this output directory; remove the lock file if no extraction is running").
				WithDetail("lock", path)
		}
		return nil, errors.Wrap(err, errors.ErrFileWrite, "failed to create lock file").
			WithDetail("lock", path)
	}
	_, _ = fmt.Fprintf(f, "%d\n", os.Getpid())
	_ = f.Close()
	return &dirLock{path: path}, nil
}

func (l *dirLock) release() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to remove lock file").
			WithDetail("lock", l.path)
	}
	return nil
}
