package layout

// Box is a word or element bounding box in page pixel coordinates.
type Box struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// Center returns the midpoint of the box.
func (b Box) Center() (x, y int) {
	return (b.Left + b.Right) / 2, (b.Top + b.Bottom) / 2
}

// Direction is a word's writing direction as reported by the recognizer.
type Direction int

const (
	DirNeutral Direction = iota
	DirLeftToRight
	DirRightToLeft
	DirMix
)

// FontAttrs carries the recognizer's font attributes for one word.
type FontAttrs struct {
	Bold       bool   `json:"bold,omitempty"`
	Italic     bool   `json:"italic,omitempty"`
	Underlined bool   `json:"underlined,omitempty"`
	Monospace  bool   `json:"monospace,omitempty"`
	Serif      bool   `json:"serif,omitempty"`
	SmallCaps  bool   `json:"smallcaps,omitempty"`
	PointSize  int    `json:"pointsize"`
	Name       string `json:"name,omitempty"`
}

// Baseline is a fitted text baseline given by its two endpoints in page
// coordinates.
type Baseline struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Word is one recognized word in reading order, decoupled from any live
// recognizer: everything the serializer needs is carried on the value.
// Boundary flags mark the word's position in the enclosing line,
// paragraph, and block; the enclosing element boxes are valid on the
// first word of each.
type Word struct {
	Text       string    `json:"text"`
	Box        Box       `json:"box"`
	Confidence int       `json:"confidence"` // 0-100
	Font       FontAttrs `json:"font"`
	Language   string    `json:"language,omitempty"`
	Direction  Direction `json:"direction,omitempty"`

	FromDictionary bool `json:"from_dictionary,omitempty"`
	Numeric        bool `json:"numeric,omitempty"`

	FirstInLine  bool `json:"first_in_line,omitempty"`
	FirstInPara  bool `json:"first_in_para,omitempty"`
	FirstInBlock bool `json:"first_in_block,omitempty"`
	LastInLine   bool `json:"last_in_line,omitempty"`
	LastInPara   bool `json:"last_in_para,omitempty"`
	LastInBlock  bool `json:"last_in_block,omitempty"`

	// Valid on the first word of the respective element.
	LineBox  Box `json:"line_box,omitempty"`
	ParaBox  Box `json:"para_box,omitempty"`
	BlockBox Box `json:"block_box,omitempty"`

	// ParaLTR is the paragraph's default direction, valid on the first
	// word of a paragraph.
	ParaLTR bool `json:"para_ltr,omitempty"`

	// LineBaseline is the fitted baseline of the enclosing line, valid on
	// the first word of a line; nil when the recognizer supplied none.
	LineBaseline *Baseline `json:"line_baseline,omitempty"`
}

// Page describes one page of recognizer output.
type Page struct {
	Number    int    `json:"number"` // 1-based
	ImagePath string `json:"image_path,omitempty"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}
