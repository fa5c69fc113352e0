package types

import (
	"errors"
	"fmt"
	"math"

	"fortio.org/safecast"
)

// ErrTooWide means a member's bit range ends past the largest integer AIS
// can hold, so its offset cannot be emitted.
var ErrTooWide = errors.New("bitfield is wider than an AIS integer")

// BitfieldMember is one named bit range; members are laid out in
// declaration order starting at bit 0.
type BitfieldMember struct {
	Name   string
	Length uint
}

type Bitfield struct {
	Name    string
	Members []BitfieldMember
}

// LookupError reports a member missing from a bitfield.
type LookupError struct {
	Bitfield string
	Member   string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("bitfield %s has no member %q", e.Bitfield, e.Member)
}

// MemberLimits returns (offset, length) of member, where offset is the sum
// of all preceding lengths. Members are checked in order, so a range that
// overflows before member is reached fails with ErrTooWide.
func (b *Bitfield) MemberLimits(member string) (offset, length uint, err error) {
	var off int64
	for _, m := range b.Members {
		n, err := b.span(off, m)
		if err != nil {
			return 0, 0, err
		}
		if m.Name == member {
			return uint(off), m.Length, nil
		}
		off += n
	}
	return 0, 0, &LookupError{Bitfield: b.Name, Member: member}
}

// Width is the total number of bits used by all members.
func (b *Bitfield) Width() (uint, error) {
	var w int64
	for _, m := range b.Members {
		n, err := b.span(w, m)
		if err != nil {
			return 0, err
		}
		w += n
	}
	return uint(w), nil
}

// span converts the length of m, placed at bit off, checking that the range
// still ends inside an AIS integer.
func (b *Bitfield) span(off int64, m BitfieldMember) (int64, error) {
	n, err := safecast.Conv[int64](m.Length)
	if err != nil || off > math.MaxInt64-n {
		return 0, fmt.Errorf("%s.%s: %w", b.Name, m.Name, ErrTooWide)
	}
	return n, nil
}
