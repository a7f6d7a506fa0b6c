package testparams

import (
	"strings"

	"git.home.luguber.info/inful/buildforge/internal/util/sets"
)

// Option is a single testing behavior flag.
type Option string

const (
	// Parallelizable allows test targets to run in parallel.
	Parallelizable Option = "parallelizable"

	// RandomExecutionOrdering shuffles test execution order.
	RandomExecutionOrdering Option = "random_execution_ordering"
)

// Options is a combinable set of testing flags. The zero value is the empty
// set. Union is commutative, associative, and idempotent; Options carries no
// payload beyond flag membership.
type Options struct {
	flags sets.Set[Option]
}

// NewOptions builds an option set from zero or more flags.
func NewOptions(opts ...Option) Options {
	return Options{flags: sets.New(opts...)}
}

// Union returns the combination of both sets. Neither operand is modified.
func (o Options) Union(other Options) Options {
	if o.flags == nil {
		return Options{flags: other.flags.Clone()}
	}
	return Options{flags: o.flags.Union(other.flags)}
}

// Contains reports whether the flag is a member.
func (o Options) Contains(opt Option) bool {
	return o.flags.Has(opt)
}

// Equal reports whether both sets contain exactly the same flags.
func (o Options) Equal(other Options) bool {
	if o.flags == nil {
		return len(other.flags) == 0
	}
	if other.flags == nil {
		return len(o.flags) == 0
	}
	return o.flags.Equal(other.flags)
}

// String returns the sorted flag list for diagnostics.
func (o Options) String() string {
	names := make(sets.Set[string], len(o.flags))
	for f := range o.flags {
		names.Add(string(f))
	}
	return strings.Join(sets.SortedStrings(names), "|")
}
