package layout

// state enumerates the serializer's nesting states. Transitions are
// driven by per-word membership changes; every transition closes and
// opens markup so that nesting stays well-formed.
type state int

const (
	stateFlow state = iota
	stateInTableNoRow
	stateInTableInRow
	stateInTableInCell
)

// counters are the per-role element counters used for ids. Owned by one
// page's cursor, incremented at each open tag, never shared.
type counters struct {
	block int
	para  int
	line  int
	table int
	row   int
	cell  int
}

// cursor tracks the open markup while one page is serialized. It is
// mutated strictly in reading order and never shared across pages.
type cursor struct {
	st    state
	table int // open table index, -1 in flow
	row   int
	col   int

	blockOpen bool
	paraOpen  bool
	lineOpen  bool

	// Paragraph and line context captured from the most recent
	// first-in-paragraph / first-in-line word, so nesting can be
	// reopened after a table interrupts a paragraph.
	paraLTR  bool
	paraLang string
	paraBox  Box
	lineBox  Box
	baseline *Baseline

	n counters
}

func newCursor() cursor {
	return cursor{st: stateFlow, table: -1, paraLTR: true}
}
