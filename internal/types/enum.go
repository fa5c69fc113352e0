package types

import "fmt"

type EnumMember struct {
	Name  string
	Value int64
}

type Enum struct {
	Name    string
	Members []EnumMember
}

// EnumSpec is a member as written in source: Explicit is false when no
// "= value" was given.
type EnumSpec struct {
	Name     string
	Value    int64
	Explicit bool
}

// OrderError is returned when an explicit value does not exceed the running counter.
type OrderError struct {
	Member  string
	Value   int64
	Counter int64
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("enum member %s = %d must be greater than %d", e.Member, e.Value, e.Counter)
}

// NewEnum computes member values: an implicit member is the previous value
// plus one (the first one is 0), an explicit one must be strictly greater than
// the running counter. On error the members computed so far are kept.
func NewEnum(name string, specs []EnumSpec) (*Enum, error) {
	e := &Enum{Name: name, Members: make([]EnumMember, 0, len(specs))}
	counter := int64(-1)
	for _, s := range specs {
		if !s.Explicit {
			counter++
		} else {
			if s.Value <= counter {
				return e, &OrderError{Member: s.Name, Value: s.Value, Counter: counter}
			}
			counter = s.Value
		}
		e.Members = append(e.Members, EnumMember{Name: s.Name, Value: counter})
	}
	return e, nil
}

// Member returns the computed value of a member.
func (e *Enum) Member(name string) (int64, bool) {
	for _, m := range e.Members {
		if m.Name == name {
			return m.Value, true
		}
	}
	return 0, false
}
