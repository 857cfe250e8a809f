package tailr

import "io"

// reader starts at an absolute offset of a file and keeps Pos at the
// offset of the next byte to be read.
type reader struct {
	Pos int64
	rs  io.ReadSeeker
}

func newReader(rs io.ReadSeeker, pos int64) (*reader, error) {
	if _, err := rs.Seek(pos, io.SeekStart); err != nil {
		return nil, err
	}
	return &reader{Pos: pos, rs: rs}, nil
}

func (r *reader) Read(p []byte) (int, error) {
	n, err := r.rs.Read(p)
	r.Pos += int64(n)
	return n, err
}
