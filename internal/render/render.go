// Package render writes contact book transcripts as plain or styled text.
package render

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Renderer receives a transcript as titled sections of lines.
type Renderer interface {
	// Section starts a new titled section. Sections after the first are
	// separated by a blank line.
	Section(title string)
	// Line writes one line of the current section.
	Line(text string)
}

// Options configures renderer creation.
type Options struct {
	Writer     io.Writer // Output destination (default: os.Stdout).
	ForcePlain bool      // Force plain text even if TTY.
}

// New returns a styled renderer when the writer is a TTY, or a plain one
// otherwise. ForcePlain overrides TTY detection.
func New(opts Options) Renderer {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.ForcePlain || !IsTTY(opts.Writer) {
		return NewPlain(opts.Writer)
	}
	return NewStyled(opts.Writer)
}

// IsTTY reports whether w is connected to a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Plain writes sections and lines verbatim.
type Plain struct {
	w        io.Writer
	sections int
}

// NewPlain returns a Plain renderer writing to w.
func NewPlain(w io.Writer) *Plain {
	return &Plain{w: w}
}

func (p *Plain) Section(title string) {
	if p.sections > 0 {
		_, _ = fmt.Fprintln(p.w)
	}
	p.sections++
	_, _ = fmt.Fprintln(p.w, title)
}

func (p *Plain) Line(text string) {
	_, _ = fmt.Fprintln(p.w, text)
}

// Styled writes headings and lines with lipgloss styles.
type Styled struct {
	w        io.Writer
	sections int
	heading  lipgloss.Style
	line     lipgloss.Style
}

// NewStyled returns a Styled renderer writing to w.
func NewStyled(w io.Writer) *Styled {
	return &Styled{
		w:       w,
		heading: HeadingStyle(),
		line:    lipgloss.NewStyle().PaddingLeft(2),
	}
}

func (s *Styled) Section(title string) {
	if s.sections > 0 {
		_, _ = fmt.Fprintln(s.w)
	}
	s.sections++
	_, _ = fmt.Fprintln(s.w, s.heading.Render(title))
}

func (s *Styled) Line(text string) {
	_, _ = fmt.Fprintln(s.w, s.line.Render(text))
}

// HeadingStyle returns the bold accent style used for section titles.
func HeadingStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})
}
