package types

import (
	"errors"
	"math"
	"testing"
)

func TestBitfieldMemberLimits(t *testing.T) {
	b := &Bitfield{Name: "A", Members: []BitfieldMember{{"x", 12}, {"y", 12}, {"z", 8}}}
	cases := []struct {
		member         string
		offset, length uint
	}{
		{"x", 0, 12},
		{"y", 12, 12},
		{"z", 24, 8},
	}
	for _, tc := range cases {
		off, ln, err := b.MemberLimits(tc.member)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.member, err)
		}
		if off != tc.offset || ln != tc.length {
			t.Fatalf("%s: got (%d,%d), want (%d,%d)", tc.member, off, ln, tc.offset, tc.length)
		}
	}
	_, _, err := b.MemberLimits("w")
	var le *LookupError
	if !errors.As(err, &le) || le.Member != "w" {
		t.Fatalf("expected lookup error for w, got %v", err)
	}
	if w, err := b.Width(); err != nil || w != 32 {
		t.Fatalf("unexpected width %d, %v", w, err)
	}
}

func TestBitfieldTooWide(t *testing.T) {
	b := &Bitfield{Name: "B", Members: []BitfieldMember{
		{"lo", 1},
		{"huge", uint(math.MaxInt64)},
		{"hi", 4},
	}}
	if off, _, err := b.MemberLimits("huge"); !errors.Is(err, ErrTooWide) {
		t.Fatalf("huge at %d: expected ErrTooWide, got %v", off, err)
	}
	if _, _, err := b.MemberLimits("lo"); err != nil {
		t.Fatalf("lo precedes the overflow: %v", err)
	}
	if _, err := b.Width(); !errors.Is(err, ErrTooWide) {
		t.Fatalf("expected ErrTooWide from Width, got %v", err)
	}
	b = &Bitfield{Name: "C", Members: []BitfieldMember{{"x", ^uint(0)}}}
	if _, _, err := b.MemberLimits("x"); !errors.Is(err, ErrTooWide) {
		t.Fatalf("a length past int64 must be rejected, got %v", err)
	}
}

func TestEnumImplicitValues(t *testing.T) {
	e, err := NewEnum("X", []EnumSpec{{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, m := range e.Members {
		if m.Value != int64(i) {
			t.Fatalf("member %s: got %d, want %d", m.Name, m.Value, i)
		}
	}
}

func TestEnumExplicitValues(t *testing.T) {
	e, err := NewEnum("X", []EnumSpec{{Name: "a", Value: 1, Explicit: true}, {Name: "b"}, {Name: "c", Value: 10, Explicit: true}, {Name: "d"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]int64{"a": 1, "b": 2, "c": 10, "d": 11}
	for name, v := range want {
		if got, ok := e.Member(name); !ok || got != v {
			t.Fatalf("%s: got %d (ok=%v), want %d", name, got, ok, v)
		}
	}
}

func TestEnumRejectsNonIncreasing(t *testing.T) {
	_, err := NewEnum("X", []EnumSpec{{Name: "a"}, {Name: "b"}, {Name: "c", Value: 1, Explicit: true}})
	var oe *OrderError
	if !errors.As(err, &oe) || oe.Member != "c" || oe.Counter != 1 {
		t.Fatalf("expected order error on c, got %v", err)
	}
	if _, err := NewEnum("Y", []EnumSpec{{Name: "a", Value: -1, Explicit: true}}); err == nil {
		t.Fatalf("-1 is not greater than the initial counter")
	}
}

func TestAssignable(t *testing.T) {
	bfA := BitfieldOf(&Bitfield{Name: "A"})
	bfB := BitfieldOf(&Bitfield{Name: "B"})
	cases := []struct {
		dst, src Type
		ok       bool
	}{
		{Int, Float, true},
		{Float, Int, true},
		{Int, String, false},
		{String, Int, false},
		{String, String, true},
		{Object, Object, true},
		{Object, Int, false},
		{Int, Object, false},
		{bfA, Int, true},
		{Int, bfA, true},
		{bfA, bfA, true},
		{bfA, bfB, false},
		{bfA, Float, false},
		{Int, Void, false},
	}
	for _, tc := range cases {
		if got := Assignable(tc.dst, tc.src); got != tc.ok {
			t.Fatalf("Assignable(%s, %s) = %v, want %v", tc.dst, tc.src, got, tc.ok)
		}
	}
}

func TestCommonArithmetic(t *testing.T) {
	if CommonArithmetic(Int, Int) != Int {
		t.Fatalf("int op int must be int")
	}
	if CommonArithmetic(Int, Float) != Float || CommonArithmetic(Float, Int) != Float {
		t.Fatalf("mixed operands must be float")
	}
}

func TestStorageName(t *testing.T) {
	if n, _ := BitfieldOf(&Bitfield{Name: "A"}).StorageName(); n != "int" {
		t.Fatalf("bitfield stored as %q", n)
	}
	if _, ok := String.StorageName(); ok {
		t.Fatalf("strings have no storage")
	}
}
