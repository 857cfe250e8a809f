package tailr

import (
	"bufio"
	"io"
	"math"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ExtractLines skips start.Index lines of r and copies the rest to w with
// line endings untouched. Lines may be of any length.
func ExtractLines(r io.Reader, w io.Writer, start Start) (int64, error) {
	if !start.Valid {
		return 0, nil
	}
	br := bufio.NewReaderSize(r, initialBufSize)
	var line uint64
	for line < start.Index {
		_, err := br.ReadSlice('\n')
		switch err {
		case nil:
			line++
		case bufio.ErrBufferFull:
			// still inside the same line
		case io.EOF:
			return 0, nil
		default:
			return 0, err
		}
	}
	return io.Copy(w, br)
}

// ExtractBytes seeks rs to start.Index and copies the rest to w.
// Malformed UTF-8 is written as U+FFFD.
func ExtractBytes(rs io.ReadSeeker, w io.Writer, start Start) (int64, error) {
	n, _, err := extractBytes(rs, w, start, false)
	return n, err
}

// ExtractRawBytes is ExtractBytes without any decoding.
func ExtractRawBytes(rs io.ReadSeeker, w io.Writer, start Start) (int64, error) {
	n, _, err := extractBytes(rs, w, start, true)
	return n, err
}

// extractBytes returns the bytes written and the end offset in rs.
func extractBytes(rs io.ReadSeeker, w io.Writer, start Start, raw bool) (int64, int64, error) {
	if !start.Valid {
		return 0, 0, nil
	}
	if start.Index > math.MaxInt64 {
		return 0, 0, errors.Errorf("offset %d out of range", start.Index)
	}
	fpr, err := newReader(rs, int64(start.Index))
	if err != nil {
		return 0, 0, errors.Wrap(err, "failed to seek")
	}
	var src io.Reader = fpr
	if !raw {
		src = transform.NewReader(fpr, unicode.UTF8.NewDecoder())
	}
	n, err := io.Copy(w, src)
	return n, fpr.Pos, err
}
