package tailr

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrFilesSkipped is returned by Run when at least one input could not
// be opened. Everything else was printed.
var ErrFilesSkipped = errors.New("some files could not be opened")

// Tailer prints the selected part of each file in turn.
type Tailer struct {
	Config Config
	Stdout io.Writer
	Stderr io.Writer
	Logger *zap.Logger
	// Header styles the "==> name <==" lines.
	Header *color.Color
}

// Run tails files with cfg to the standard streams.
func Run(cfg Config, files []string) error {
	t := &Tailer{
		Config: cfg,
	}
	return t.Run(files)
}

func (t *Tailer) Run(files []string) error {
	if t.Stdout == nil {
		t.Stdout = os.Stdout
	}
	if t.Stderr == nil {
		t.Stderr = os.Stderr
	}
	if t.Logger == nil {
		t.Logger = zap.NewNop()
	}
	if t.Header == nil {
		t.Header = color.New(color.Bold)
	}
	if t.Config.Lines == nil && t.Config.Bytes == nil {
		t.Config.Lines = Count(-10)
	}

	skipped := 0
	for i, filename := range files {
		err := t.tailFile(filename, i, len(files))
		var oe *FileOpenError
		if errors.As(err, &oe) {
			fmt.Fprintln(t.Stderr, oe.Error())
			t.Logger.Debug("skip file", zap.String("path", filename), zap.Error(oe.Err))
			skipped++
			continue
		}
		if err != nil {
			return err
		}
	}
	if skipped > 0 {
		return ErrFilesSkipped
	}
	return nil
}

func (t *Tailer) tailFile(filename string, num, total int) error {
	f, fstat, err := openFile(filename, t.Config.OpenAttempts)
	if err != nil {
		return err
	}
	defer f.Close()

	ext, err := Measure(f)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", filename)
	}
	if int64(ext.Bytes) != fstat.Size {
		t.Logger.Warn("file size changed while measuring",
			zap.String("path", filename),
			zap.Int64("stat_size", fstat.Size),
			zap.Uint64("bytes", ext.Bytes))
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return errors.Wrapf(err, "failed to rewind %s", filename)
	}

	if !t.Config.Quiet && total > 1 {
		if num > 0 {
			fmt.Fprintln(t.Stdout)
		}
		t.Header.Fprintf(t.Stdout, "==> %s <==", filename)
		fmt.Fprintln(t.Stdout)
	}

	if t.Config.ByteMode() {
		start := Resolve(t.Config.Bytes, ext.Bytes)
		t.Logger.Debug("extract bytes",
			zap.String("path", filename),
			zap.Uint64("inode", fstat.Inode),
			zap.Uint64("dev", fstat.Dev),
			zap.Uint64("bytes", ext.Bytes),
			zap.Stringer("offset", t.Config.Bytes),
			zap.Stringer("start", start))
		n, endPos, err := extractBytes(f, t.Stdout, start, t.Config.Raw)
		if err != nil {
			return errors.Wrapf(err, "failed to print %s", filename)
		}
		t.Logger.Debug("extract completed", zap.String("path", filename),
			zap.Int64("written", n), zap.Int64("end_pos", endPos))
		return nil
	}

	start := Resolve(t.Config.Lines, ext.Lines)
	t.Logger.Debug("extract lines",
		zap.String("path", filename),
		zap.Uint64("inode", fstat.Inode),
		zap.Uint64("dev", fstat.Dev),
		zap.Uint64("lines", ext.Lines),
		zap.Stringer("offset", t.Config.Lines),
		zap.Stringer("start", start))
	n, err := ExtractLines(f, t.Stdout, start)
	if err != nil {
		return errors.Wrapf(err, "failed to print %s", filename)
	}
	t.Logger.Debug("extract completed", zap.String("path", filename), zap.Int64("written", n))
	return nil
}
