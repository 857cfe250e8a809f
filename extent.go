package tailr

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
)

// initialBufSize for the measuring and extracting passes
var initialBufSize = 64 * 1024

var eol = []byte{'\n'}

// Extent is the size of a file in lines and in bytes.
type Extent struct {
	Lines uint64
	Bytes uint64
}

// Measure reads r to the end and counts its lines and bytes. A trailing
// fragment without a newline counts as a line.
func Measure(r io.Reader) (Extent, error) {
	var ext Extent
	buf := make([]byte, initialBufSize)
	last := byte('\n')
	for {
		n, err := r.Read(buf)
		if n > 0 {
			ext.Bytes += uint64(n)
			ext.Lines += uint64(bytes.Count(buf[:n], eol))
			last = buf[n-1]
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return ext, err
		}
	}
	if last != '\n' {
		ext.Lines++
	}
	return ext, nil
}

// MeasureFile opens filename and measures it.
func MeasureFile(filename string) (Extent, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Extent{}, err
	}
	defer f.Close()
	ext, err := Measure(f)
	if err != nil {
		return ext, errors.Wrapf(err, "failed to measure %s", filename)
	}
	return ext, nil
}
