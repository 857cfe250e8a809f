package tailr

import "fmt"

// Start is the zero based line or byte index where output begins.
// The zero value means nothing is printed.
type Start struct {
	Index uint64
	Valid bool
}

// None prints nothing.
func None() Start { return Start{} }

// At begins output at index i.
func At(i uint64) Start { return Start{Index: i, Valid: true} }

func (s Start) String() string {
	if !s.Valid {
		return "none"
	}
	return fmt.Sprintf("%d", s.Index)
}

// Resolve maps an offset onto a file holding total lines or bytes.
func Resolve(off Offset, total uint64) Start {
	switch o := off.(type) {
	case FromStart:
		if total == 0 {
			return None()
		}
		return At(0)
	case Count:
		n := int64(o)
		if n == 0 || total == 0 {
			return None()
		}
		// two's complement keeps MinInt64 exact
		mag := uint64(n)
		if n < 0 {
			mag = uint64(-n)
		}
		if n > 0 {
			if mag > total {
				return None()
			}
			return At(mag - 1)
		}
		if mag >= total {
			return At(0)
		}
		return At(total - mag)
	default:
		panic(fmt.Sprintf("tailr: unknown offset %T", off))
	}
}
