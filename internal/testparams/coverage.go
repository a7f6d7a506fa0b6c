// Package testparams holds the plain value types shared between the build
// orchestrator and the test-execution subsystem: the code coverage mode and
// the testing option flags.
package testparams

// CoverageMode selects which modules are instrumented for code coverage.
// It is a closed variant: exactly All, Relevant, or an explicit target list.
type CoverageMode struct {
	kind    coverageKind
	targets []string
}

type coverageKind uint8

const (
	coverageAll coverageKind = iota
	coverageRelevant
	coverageTargets
)

// CoverageAll covers every module, external dependencies included.
func CoverageAll() CoverageMode {
	return CoverageMode{kind: coverageAll}
}

// CoverageRelevant covers modules owned by the workspace, excluding external
// dependencies.
func CoverageRelevant() CoverageMode {
	return CoverageMode{kind: coverageRelevant}
}

// CoverageTargets covers exactly the referenced targets. An empty list is a
// valid state meaning "no coverage" and is distinct from All and Relevant.
func CoverageTargets(targets ...string) CoverageMode {
	ts := make([]string, len(targets))
	copy(ts, targets)
	return CoverageMode{kind: coverageTargets, targets: ts}
}

// IsAll reports whether the mode is CoverageAll.
func (m CoverageMode) IsAll() bool { return m.kind == coverageAll }

// IsRelevant reports whether the mode is CoverageRelevant.
func (m CoverageMode) IsRelevant() bool { return m.kind == coverageRelevant }

// Targets returns the explicit target list and true when the mode is
// CoverageTargets, nil and false otherwise.
func (m CoverageMode) Targets() ([]string, bool) {
	if m.kind != coverageTargets {
		return nil, false
	}
	out := make([]string, len(m.targets))
	copy(out, m.targets)
	return out, true
}

// Equal compares tag and payload. The targets payload is compared by value
// and is order-sensitive: Targets("a","b") differs from Targets("b","a").
func (m CoverageMode) Equal(other CoverageMode) bool {
	if m.kind != other.kind {
		return false
	}
	if m.kind != coverageTargets {
		return true
	}
	if len(m.targets) != len(other.targets) {
		return false
	}
	for i := range m.targets {
		if m.targets[i] != other.targets[i] {
			return false
		}
	}
	return true
}

// String returns a diagnostic representation.
func (m CoverageMode) String() string {
	switch m.kind {
	case coverageAll:
		return "all"
	case coverageRelevant:
		return "relevant"
	default:
		s := "targets("
		for i, t := range m.targets {
			if i > 0 {
				s += ", "
			}
			s += t
		}
		return s + ")"
	}
}
