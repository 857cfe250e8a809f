package tailr

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/pkg/errors"
)

// DefaultOpenAttempts is how often an open failing with EAGAIN is tried.
var DefaultOpenAttempts uint = 3

// FileOpenError reports an input that could not be opened. The run
// skips the file and goes on with the next one.
type FileOpenError struct {
	Path string
	Err  error
}

func (e *FileOpenError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileOpenError) Unwrap() error { return e.Err }
func (e *FileOpenError) Cause() error  { return e.Err }

type fStat struct {
	Inode uint64
	Dev   uint64
	Size  int64
}

// isTransient matches EAGAIN, which network filesystems may return from
// open. os.Open already retries EINTR.
func isTransient(err error) bool {
	return errors.Is(err, syscall.EAGAIN)
}

func openFile(filename string, attempts uint) (*os.File, *fStat, error) {
	if attempts == 0 {
		attempts = DefaultOpenAttempts
	}
	var f *os.File
	err := retry.Do(
		func() error {
			var err error
			f, err = os.Open(filename)
			return err
		},
		retry.Attempts(attempts),
		retry.RetryIf(isTransient),
		retry.DelayType(retry.FixedDelay),
		retry.Delay(10*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, nil, &FileOpenError{Path: filename, Err: reason(err)}
	}
	fstat, err := fileStat(f)
	if err != nil {
		f.Close()
		return nil, nil, &FileOpenError{Path: filename, Err: reason(err)}
	}
	return f, fstat, nil
}

func fileStat(f *os.File) (*fStat, error) {
	s, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if s.IsDir() {
		return nil, syscall.EISDIR
	}
	fstat := &fStat{Size: s.Size()}
	if s2, ok := s.Sys().(*syscall.Stat_t); ok && s2 != nil {
		fstat.Inode = s2.Ino
		fstat.Dev = uint64(s2.Dev)
	}
	return fstat, nil
}

// reason drops the op and path that *os.PathError repeats.
func reason(err error) error {
	var pe *os.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
