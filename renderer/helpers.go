package renderer

import (
	"bytes"
	"io"
)

// SectionPrinter emits a section header and footer only when at least one
// row lands between them, so reports with nothing to say stay silent.
type SectionPrinter struct {
	header  func(io.Writer)
	footer  func(io.Writer)
	printed bool
}

// Header starts a SectionPrinter with the function that writes the header.
func Header(f func(io.Writer)) *SectionPrinter {
	return &SectionPrinter{header: f}
}

// Footer sets the function that writes the footer.
func (p *SectionPrinter) Footer(f func(io.Writer)) *SectionPrinter {
	p.footer = f
	return p
}

// PrintHeader writes the header once, on the first call. Call it right
// before each row.
func (p *SectionPrinter) PrintHeader(w io.Writer) {
	if p.printed {
		return
	}
	p.printed = true
	if p.header != nil {
		p.header(w)
	}
}

// PrintFooter writes the footer, but only if a header was ever written.
func (p *SectionPrinter) PrintFooter(w io.Writer) {
	if p.printed && p.footer != nil {
		p.footer(w)
	}
}

// ConditionalBlock buffers everything block writes and copies it to w only
// when block returns true.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	var buf bytes.Buffer
	if block(&buf) {
		io.Copy(w, &buf)
	}
}
