package tailr

import (
	"fmt"
	"strconv"
	"strings"
)

// Offset is where output begins. It is either FromStart or Count.
type Offset interface {
	isOffset()
	String() string
}

// FromStart prints the whole file. Only the literal "+0" produces it.
type FromStart struct{}

// Count anchors at the n-th item from the front when n > 0 and takes the
// last -n items when n <= 0. Count(0) prints nothing, unlike FromStart.
type Count int64

func (FromStart) isOffset() {}
func (Count) isOffset()     {}

func (FromStart) String() string { return "+0" }

func (c Count) String() string {
	if c > 0 {
		return "+" + strconv.FormatInt(int64(c), 10)
	}
	return strconv.FormatInt(int64(c), 10)
}

// ParseError reports an offset token that is not a number.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("illegal offset -- %s: Invalid argument", e.Input)
}

// ParseOffset parses a tail style offset. A bare number means "last N",
// a leading '+' anchors at the front.
func ParseOffset(s string) (Offset, error) {
	if s == "+0" {
		return FromStart{}, nil
	}
	num, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, &ParseError{Input: s}
	}
	if strings.HasPrefix(s, "+") || num < 0 {
		return Count(num), nil
	}
	return Count(-num), nil
}
