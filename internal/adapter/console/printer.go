package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var rule = strings.Repeat("=", 60)

// printer remembers the first write error so renderers can print line by line and check once.
type printer struct {
	w      io.Writer
	banner *color.Color
	err    error
}

func newPrinter(w io.Writer, colored bool) *printer {
	banner := color.New(color.FgCyan, color.Bold)
	if !colored {
		banner.DisableColor()
	}
	return &printer{w: w, banner: banner}
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) println(s string) {
	p.printf("%s\n", s)
}

// section prints a blank line and the title framed by rules.
func (p *printer) section(title string) {
	p.println("")
	for _, line := range []string{rule, title, rule} {
		if p.err != nil {
			return
		}
		_, p.err = p.banner.Fprintln(p.w, line)
	}
}

func (p *printer) flush() error {
	err := p.err
	p.err = nil
	return err
}
