package testutil

import "github.com/MeKo-Tech/lattice/internal/layout"

// WordSpec is one word of a synthetic recognizer stream: just its text
// and bounding box, with everything else defaulted to a confident
// left-to-right dictionary word.
type WordSpec struct {
	Text string
	Box  layout.Box
}

// LineSpec groups words sharing a line.
type LineSpec struct {
	Words []WordSpec
}

// ParaSpec groups lines sharing a paragraph.
type ParaSpec struct {
	Lines []LineSpec
	RTL   bool
	Lang  string
}

// BlockSpec groups paragraphs sharing a block.
type BlockSpec struct {
	Paras []ParaSpec
}

// Line is a convenience constructor for a single-line spec.
func Line(words ...WordSpec) LineSpec { return LineSpec{Words: words} }

// Para is a convenience constructor for a paragraph spec.
func Para(lines ...LineSpec) ParaSpec { return ParaSpec{Lines: lines} }

// Block is a convenience constructor for a block spec.
func Block(paras ...ParaSpec) BlockSpec { return BlockSpec{Paras: paras} }

// W builds a WordSpec from text and box corners.
func W(text string, left, top, right, bottom int) WordSpec {
	return WordSpec{Text: text, Box: layout.Box{Left: left, Top: top, Right: right, Bottom: bottom}}
}

// BuildWords flattens block specs into a reading-order word stream with
// boundary flags and enclosing element boxes derived from the word
// boxes, the way a recognizer frontend would emit them.
func BuildWords(blocks ...BlockSpec) []layout.Word {
	words := []layout.Word{}
	for _, blk := range blocks {
		blockBox := unionBox(blockWords(blk))
		for pi, para := range blk.Paras {
			paraBox := unionBox(paraWords(para))
			for li, line := range para.Lines {
				lineBox := unionBox(line.Words)
				for wi, ws := range line.Words {
					w := layout.Word{
						Text:           ws.Text,
						Box:            ws.Box,
						Confidence:     95,
						Language:       para.Lang,
						Direction:      layout.DirLeftToRight,
						FromDictionary: true,
					}
					if wi == 0 {
						w.FirstInLine = true
						w.LineBox = lineBox
					}
					if wi == len(line.Words)-1 {
						w.LastInLine = true
					}
					if li == 0 && wi == 0 {
						w.FirstInPara = true
						w.ParaBox = paraBox
						w.ParaLTR = !para.RTL
					}
					if li == len(para.Lines)-1 && wi == len(line.Words)-1 {
						w.LastInPara = true
					}
					if pi == 0 && li == 0 && wi == 0 {
						w.FirstInBlock = true
						w.BlockBox = blockBox
					}
					if pi == len(blk.Paras)-1 && li == len(para.Lines)-1 && wi == len(line.Words)-1 {
						w.LastInBlock = true
					}
					words = append(words, w)
				}
			}
		}
	}
	return words
}

func paraWords(p ParaSpec) []WordSpec {
	var ws []WordSpec
	for _, l := range p.Lines {
		ws = append(ws, l.Words...)
	}
	return ws
}

func blockWords(b BlockSpec) []WordSpec {
	var ws []WordSpec
	for _, p := range b.Paras {
		ws = append(ws, paraWords(p)...)
	}
	return ws
}

func unionBox(ws []WordSpec) layout.Box {
	if len(ws) == 0 {
		return layout.Box{}
	}
	u := ws[0].Box
	for _, w := range ws[1:] {
		if w.Box.Left < u.Left {
			u.Left = w.Box.Left
		}
		if w.Box.Top < u.Top {
			u.Top = w.Box.Top
		}
		if w.Box.Right > u.Right {
			u.Right = w.Box.Right
		}
		if w.Box.Bottom > u.Bottom {
			u.Bottom = w.Box.Bottom
		}
	}
	return u
}
