package testparams

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionsUnion(t *testing.T) {
	par := NewOptions(Parallelizable)
	rnd := NewOptions(RandomExecutionOrdering)

	both := par.Union(rnd)
	assert.True(t, both.Contains(Parallelizable))
	assert.True(t, both.Contains(RandomExecutionOrdering))

	// Commutative
	assert.True(t, both.Equal(rnd.Union(par)))

	// Idempotent: combining again with either operand changes nothing.
	assert.True(t, both.Equal(both.Union(par)))
	assert.True(t, both.Equal(both.Union(rnd)))
	assert.True(t, both.Equal(both.Union(both)))
}

func TestOptionsUnionAssociative(t *testing.T) {
	a := NewOptions(Parallelizable)
	b := NewOptions(RandomExecutionOrdering)
	c := NewOptions()

	assert.True(t, a.Union(b).Union(c).Equal(a.Union(b.Union(c))))
}

func TestOptionsZeroValue(t *testing.T) {
	var zero Options
	assert.False(t, zero.Contains(Parallelizable))
	assert.True(t, zero.Equal(NewOptions()))

	withFlag := zero.Union(NewOptions(Parallelizable))
	assert.True(t, withFlag.Contains(Parallelizable))
	assert.False(t, zero.Contains(Parallelizable), "union must not mutate the zero value")
}

func TestCoverageModeEquality(t *testing.T) {
	assert.True(t, CoverageAll().Equal(CoverageAll()))
	assert.True(t, CoverageRelevant().Equal(CoverageRelevant()))
	assert.False(t, CoverageAll().Equal(CoverageRelevant()))

	// Empty target list is its own state, not collapsed into All/Relevant.
	empty := CoverageTargets()
	assert.False(t, empty.Equal(CoverageAll()))
	assert.False(t, empty.Equal(CoverageRelevant()))
	assert.True(t, empty.Equal(CoverageTargets()))
}

func TestCoverageTargetsOrderSensitive(t *testing.T) {
	ab := CoverageTargets("a", "b")
	ba := CoverageTargets("b", "a")
	assert.True(t, ab.Equal(CoverageTargets("a", "b")))
	assert.False(t, ab.Equal(ba))
}

func TestCoverageTargetsCopiesPayload(t *testing.T) {
	in := []string{"a", "b"}
	m := CoverageTargets(in...)
	in[0] = "mutated"

	got, ok := m.Targets()
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, got)

	got[1] = "mutated"
	again, _ := m.Targets()
	assert.Equal(t, []string{"a", "b"}, again)
}

func TestCoverageModeString(t *testing.T) {
	assert.Equal(t, "all", CoverageAll().String())
	assert.Equal(t, "relevant", CoverageRelevant().String())
	assert.Equal(t, "targets(a, b)", CoverageTargets("a", "b").String())
	assert.Equal(t, "targets()", CoverageTargets().String())
}
