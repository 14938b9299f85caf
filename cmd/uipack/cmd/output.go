package cmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// styler adds ANSI emphasis when the output is a terminal.
type styler struct {
	color bool
}

func newStyler(w io.Writer) styler {
	f, ok := w.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != "" {
		return styler{}
	}
	fd := f.Fd()
	return styler{color: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)}
}

func (s styler) wrap(code, text string) string {
	if !s.color {
		return text
	}
	return "\x1b[" + code + "m" + text + "\x1b[0m"
}

func (s styler) bold(text string) string  { return s.wrap("1", text) }
func (s styler) dim(text string) string   { return s.wrap("2", text) }
func (s styler) green(text string) string { return s.wrap("32", text) }

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
