package layout

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/language"

	"github.com/MeKo-Tech/lattice/internal/lattice"
)

// Config holds serialization toggles.
type Config struct {
	// FontInfo includes the recognizer's font name on word spans.
	FontInfo bool `mapstructure:"font_info" yaml:"font_info" json:"font_info"`
	// CharBoxes enables per-character boxes. Accepted for compatibility,
	// currently unused downstream.
	CharBoxes bool `mapstructure:"char_boxes" yaml:"char_boxes" json:"char_boxes"`
	// Debug traces row/column assignment decisions at debug level.
	Debug bool `mapstructure:"debug" yaml:"debug" json:"debug"`
}

// DefaultConfig returns the default serializer configuration.
func DefaultConfig() Config { return Config{} }

// Serializer walks recognized words in reading order and emits the nested
// page markup, re-routing words inside detected tables into
// table/tbody/tr/td nesting while the rest flows through
// block/paragraph/line nesting.
type Serializer struct {
	cfg Config
	loc *lattice.Locator
}

// NewSerializer creates a serializer. loc may be nil when table detection
// was skipped or failed; every word then takes the flow path.
func NewSerializer(cfg Config, loc *lattice.Locator) *Serializer {
	return &Serializer{cfg: cfg, loc: loc}
}

// Page serializes one page's word stream into markup. Words must be in
// the recognizer's reading order. An empty stream yields the minimal
// page wrapper.
func (s *Serializer) Page(page Page, words []Word) string {
	pw := &pageWriter{cfg: s.cfg, loc: s.loc, page: page, cur: newCursor()}
	pw.openPage()
	for _, w := range words {
		pw.processWord(w)
	}
	pw.closeDanglingNesting()
	pw.closeBlock()
	pw.b.WriteString("  </div>\n")
	return pw.b.String()
}

// pageWriter owns the builder and cursor for one page. Single-threaded
// by contract: membership queries and emission happen in reading order.
type pageWriter struct {
	cfg  Config
	loc  *lattice.Locator
	page Page
	b    strings.Builder
	cur  cursor
}

func (pw *pageWriter) processWord(w Word) {
	if strings.TrimSpace(w.Text) == "" {
		return
	}
	if w.FirstInPara {
		pw.cur.paraLTR = w.ParaLTR
		pw.cur.paraLang = w.Language
		pw.cur.paraBox = w.ParaBox
	}
	if w.FirstInLine {
		pw.cur.lineBox = w.LineBox
		pw.cur.baseline = w.LineBaseline
	}
	if !pw.cur.blockOpen {
		pw.openBlock(w.BlockBox)
	}

	cx, cy := w.Box.Center()
	addr := pw.locate(cx, cy)
	if pw.cfg.Debug {
		slog.Debug("cell assignment",
			"text", w.Text, "x", cx, "y", cy,
			"table", addr.Table, "row", addr.Row, "col", addr.Col)
	}

	if addr.Table != pw.cur.table {
		pw.leaveTable()
		if addr.InTable() {
			// Flow bookkeeping is suspended inside tables.
			pw.closeLine()
			pw.closePara()
			pw.enterTable(addr.Table)
		}
	}

	if addr.InTable() {
		pw.advanceCell(addr)
		pw.emitWord(w)
	} else {
		if !pw.cur.paraOpen {
			pw.openPara()
		}
		if !pw.cur.lineOpen {
			pw.openLine()
		}
		pw.emitWord(w)
	}

	if pw.cur.st == stateFlow {
		if w.LastInLine {
			pw.closeLine()
		}
		if w.LastInPara {
			// A paragraph end implies a line end even when the recognizer
			// forgot the line flag.
			pw.closeLine()
			pw.closePara()
			pw.cur.paraLTR = true
		}
	}
	if w.LastInBlock {
		pw.closeDanglingNesting()
		pw.closeBlock()
	}
}

func (pw *pageWriter) locate(x, y int) lattice.CellAddress {
	if pw.loc == nil {
		return lattice.NoCell
	}
	return pw.loc.Locate(x, y)
}

// advanceCell moves the cursor to the word's cell, opening and closing
// row/cell markup as indices advance. Indices are expected to be
// monotonically non-decreasing in reading order; a decrease (out-of-order
// input) keeps the current row or cell rather than reopening earlier
// ones, preserving well-formedness.
func (pw *pageWriter) advanceCell(addr lattice.CellAddress) {
	if pw.cur.st == stateInTableNoRow {
		pw.openRow(addr)
		pw.openCell(addr)
		return
	}
	if addr.Row > pw.cur.row {
		pw.closeCell()
		pw.closeRow()
		pw.openRow(addr)
		pw.openCell(addr)
		return
	}
	if addr.Col > pw.cur.col {
		pw.closeCell()
		pw.openCell(addr)
	}
}

// --- open/close helpers; counters are bumped at each open tag ---

func (pw *pageWriter) openPage() {
	fmt.Fprintf(&pw.b, "  <div class='page' id='page_%d' filename='%s' left='0' top='0' width='%d' height='%d' ppageno='%d'>\n",
		pw.page.Number, escape(pw.page.ImagePath), pw.page.Width, pw.page.Height, pw.page.Number-1)
}

func (pw *pageWriter) openBlock(box Box) {
	pw.cur.n.block++
	fmt.Fprintf(&pw.b, "   <div class='block' id='block_%d_%d' %s>",
		pw.page.Number, pw.cur.n.block, boxAttrs(box))
	pw.cur.blockOpen = true
}

func (pw *pageWriter) closeBlock() {
	if !pw.cur.blockOpen {
		return
	}
	pw.b.WriteString("\n   </div>\n")
	pw.cur.blockOpen = false
}

func (pw *pageWriter) enterTable(table int) {
	pw.cur.n.table++
	region := pw.loc.Region(table)
	box := Box{
		Left:   int(region.Box.MinX),
		Top:    int(region.Box.MinY),
		Right:  int(region.Box.MaxX),
		Bottom: int(region.Box.MaxY),
	}
	fmt.Fprintf(&pw.b, "\n    <table id='table_%d_%d' %s>\n     <tbody>",
		pw.page.Number, pw.cur.n.table, boxAttrs(box))
	pw.cur.table = table
	pw.cur.row = -1
	pw.cur.col = -1
	pw.cur.st = stateInTableNoRow
}

// leaveTable closes any open cell, row, and table markup, innermost
// first, and returns the cursor to flow state.
func (pw *pageWriter) leaveTable() {
	if pw.cur.table < 0 {
		return
	}
	pw.closeCell()
	pw.closeRow()
	pw.b.WriteString("\n     </tbody>\n    </table>")
	pw.cur.table = -1
	pw.cur.row = -1
	pw.cur.col = -1
	pw.cur.st = stateFlow
}

func (pw *pageWriter) openRow(addr lattice.CellAddress) {
	pw.cur.n.row++
	g := pw.loc.Grid(addr.Table)
	box := Box{
		Left:   g.Cols[0],
		Top:    g.Rows[addr.Row],
		Right:  g.Cols[len(g.Cols)-1],
		Bottom: g.Rows[addr.Row+1],
	}
	fmt.Fprintf(&pw.b, "\n      <tr id='row_%d_%d' %s>", pw.page.Number, pw.cur.n.row, boxAttrs(box))
	pw.cur.row = addr.Row
	pw.cur.st = stateInTableInRow
}

func (pw *pageWriter) closeRow() {
	if pw.cur.st != stateInTableInRow {
		return
	}
	pw.b.WriteString("\n      </tr>")
	pw.cur.st = stateInTableNoRow
}

func (pw *pageWriter) openCell(addr lattice.CellAddress) {
	pw.cur.n.cell++
	g := pw.loc.Grid(addr.Table)
	box := Box{
		Left:   g.Cols[addr.Col],
		Top:    g.Rows[pw.cur.row],
		Right:  g.Cols[addr.Col+1],
		Bottom: g.Rows[pw.cur.row+1],
	}
	fmt.Fprintf(&pw.b, "\n       <td id='cell_%d_%d' %s>", pw.page.Number, pw.cur.n.cell, boxAttrs(box))
	pw.cur.col = addr.Col
	pw.cur.st = stateInTableInCell
}

func (pw *pageWriter) closeCell() {
	if pw.cur.st != stateInTableInCell {
		return
	}
	pw.b.WriteString("\n       </td>")
	pw.cur.st = stateInTableInRow
}

func (pw *pageWriter) openPara() {
	pw.cur.n.para++
	pw.b.WriteString("\n    <p class='paragraph'")
	if !pw.cur.paraLTR {
		pw.b.WriteString(" dir='rtl'")
	}
	fmt.Fprintf(&pw.b, " id='par_%d_%d'", pw.page.Number, pw.cur.n.para)
	if pw.cur.paraLang != "" {
		fmt.Fprintf(&pw.b, " lang='%s'", escape(normalizeLang(pw.cur.paraLang)))
	}
	fmt.Fprintf(&pw.b, " %s>", boxAttrs(pw.cur.paraBox))
	pw.cur.paraOpen = true
}

func (pw *pageWriter) closePara() {
	if !pw.cur.paraOpen {
		return
	}
	pw.b.WriteString("\n    </p>")
	pw.cur.paraOpen = false
}

func (pw *pageWriter) openLine() {
	pw.cur.n.line++
	fmt.Fprintf(&pw.b, "\n     <span class='line' id='line_%d_%d' %s",
		pw.page.Number, pw.cur.n.line, boxAttrs(pw.cur.lineBox))
	if pw.cur.baseline != nil {
		if p1, p0, ok := FitBaseline(*pw.cur.baseline, pw.cur.lineBox); ok {
			fmt.Fprintf(&pw.b, " baseline='%g %g'", p1, p0)
		}
	}
	pw.b.WriteString(">")
	pw.cur.lineOpen = true
}

func (pw *pageWriter) closeLine() {
	if !pw.cur.lineOpen {
		return
	}
	pw.b.WriteString("\n     </span>")
	pw.cur.lineOpen = false
}

// closeDanglingNesting closes everything still open below block level,
// innermost first.
func (pw *pageWriter) closeDanglingNesting() {
	pw.leaveTable()
	pw.closeLine()
	pw.closePara()
}

func (pw *pageWriter) emitWord(w Word) {
	fmt.Fprintf(&pw.b, "\n        <span class='word' wordconfidence='%d' %s wordfirst='%d'",
		w.Confidence, boxAttrs(w.Box), boolAttr(w.FirstInLine))
	if w.Language != "" {
		if lang := normalizeLang(w.Language); lang != normalizeLang(pw.cur.paraLang) {
			fmt.Fprintf(&pw.b, " lang='%s'", escape(lang))
		}
	}
	fmt.Fprintf(&pw.b, " wordfromdictionary='%d' wordnumeric='%d'",
		boolAttr(w.FromDictionary), boolAttr(w.Numeric))
	if pw.cfg.FontInfo && w.Font.Name != "" {
		fmt.Fprintf(&pw.b, " font_name='%s'", escape(w.Font.Name))
	}
	fmt.Fprintf(&pw.b, " fontsize='%d'", w.Font.PointSize)

	// Direction marker only when the word diverges from the paragraph
	// default.
	switch w.Direction {
	case DirLeftToRight:
		if !pw.cur.paraLTR {
			pw.b.WriteString(" dir='ltr'")
		}
	case DirRightToLeft:
		if pw.cur.paraLTR {
			pw.b.WriteString(" dir='rtl'")
		}
	case DirNeutral, DirMix:
	}
	pw.b.WriteString(">")

	if w.Font.Bold {
		pw.b.WriteString("<strong>")
	}
	if w.Font.Italic {
		pw.b.WriteString("<em>")
	}
	pw.b.WriteString(escape(w.Text))
	if w.Font.Italic {
		pw.b.WriteString("</em>")
	}
	if w.Font.Bold {
		pw.b.WriteString("</strong>")
	}
	pw.b.WriteString("</span>")
}

func boxAttrs(b Box) string {
	return fmt.Sprintf("left='%d' top='%d' right='%d' bottom='%d'", b.Left, b.Top, b.Right, b.Bottom)
}

func boolAttr(v bool) int {
	if v {
		return 1
	}
	return 0
}

// normalizeLang canonicalizes a recognizer language tag via BCP 47
// parsing; unparseable tags pass through unchanged.
func normalizeLang(lang string) string {
	if lang == "" {
		return ""
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return lang
	}
	return tag.String()
}
