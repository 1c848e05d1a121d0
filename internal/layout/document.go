package layout

import (
	"fmt"
	"io"

	"github.com/MeKo-Tech/lattice/internal/version"
)

// Document wraps serialized pages in the XHTML document boilerplate:
// header with OCR capability metadata, one page div per AddPage call,
// and the closing footer on Close.
type Document struct {
	w      io.Writer
	title  string
	closed bool
}

// NewDocument writes the document header and returns a writer for pages.
func NewDocument(w io.Writer, title string, cfg Config) (*Document, error) {
	d := &Document{w: w, title: title}
	capabilities := "ocr_page ocr_carea ocr_par ocr_line ocrx_word ocrp_wconf"
	if cfg.FontInfo {
		capabilities += " ocrp_lang ocrp_dir ocrp_font ocrp_fsize"
	}
	_, err := fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN"
    "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd">
<html xmlns="http://www.w3.org/1999/xhtml" xml:lang="en" lang="en">
 <head>
  <title>%s</title>
  <meta http-equiv="Content-Type" content="text/html;charset=utf-8"/>
  <meta name='ocr-system' content='lattice %s' />
  <meta name='ocr-capabilities' content='%s'/>
 </head>
 <body>
`, escape(title), version.Version, capabilities)
	return d, err
}

// AddPage appends one serialized page.
func (d *Document) AddPage(markup string) error {
	_, err := io.WriteString(d.w, markup)
	return err
}

// Close writes the document footer.
func (d *Document) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	_, err := io.WriteString(d.w, " </body>\n</html>\n")
	return err
}
