// Package output renders CLI output in text, markdown, or JSON form.
//
// Text mode is styled for terminals; markdown is the non-TTY default
// so piped output stays readable; JSON is for scripting.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"github.com/mattn/go-isatty"
)

// Mode selects the rendering style.
type Mode string

const (
	// ModeAuto picks text on a TTY and markdown otherwise.
	ModeAuto Mode = "auto"
	// ModeText renders styled terminal output.
	ModeText Mode = "text"
	// ModeMarkdown renders plain markdown.
	ModeMarkdown Mode = "markdown"
	// ModeJSON renders machine-readable JSON.
	ModeJSON Mode = "json"
)

// Styles groups the lipgloss styles used by text rendering.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

func defaultStyles() Styles {
	return Styles{
		Header1: lipgloss.NewStyle().Bold(true),
		Header2: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		Bold:    lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// Renderer writes CLI output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
	styles Styles
}

// NewRenderer creates a renderer, detecting TTY state from out.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	isTTY := false
	if f, ok := out.(*os.File); ok {
		isTTY = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return NewRendererWithTTY(out, errOut, isTTY, mode)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
		styles: defaultStyles(),
	}
}

// EffectiveMode resolves ModeAuto to a concrete mode.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// Styles returns the style set for custom text rendering.
func (r *Renderer) Styles() Styles { return r.styles }

// Println writes a line to standard output.
func (r *Renderer) Println(s string) {
	_, _ = fmt.Fprintln(r.out, s)
}

// Printf writes formatted output to standard output.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// Success reports a completed operation.
func (r *Renderer) Success(s string) {
	if r.EffectiveMode() == ModeText {
		r.Println(r.styles.Success.Render("✓ " + s))
		return
	}
	r.Println("**" + s + "**")
}

// Warning reports a non-fatal problem.
func (r *Renderer) Warning(s string) {
	if r.EffectiveMode() == ModeText {
		r.Println(r.styles.Warning.Render("! " + s))
		return
	}
	r.Println("**Warning:** " + s)
}

// Error reports a failure to the error stream.
func (r *Renderer) Error(s string) {
	if r.EffectiveMode() == ModeText {
		_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render("✗ "+s))
		return
	}
	_, _ = fmt.Fprintln(r.errOut, "**Error:** "+s)
}

// StatusLine renders one per-item status entry. Status is one of
// "success", "failed", or "skip".
func (r *Renderer) StatusLine(name, status, detail string) {
	if r.EffectiveMode() == ModeText {
		icon := r.styles.Success.Render("✓")
		switch status {
		case "failed":
			icon = r.styles.Error.Render("✗")
		case "skip":
			icon = r.styles.Muted.Render("-")
		}
		line := "  " + icon + " " + name
		if detail != "" {
			line += "  " + r.styles.Muted.Render(detail)
		}
		r.Println(line)
		return
	}

	line := "- " + name
	if status != "success" {
		line = "- [" + status + "] " + name
	}
	if detail != "" {
		line += ": " + detail
	}
	r.Println(line)
}

// Header renders a section header at the given level.
func (r *Renderer) Header(level int, text string) {
	if r.EffectiveMode() == ModeText {
		style := r.styles.Header1
		if level > 1 {
			style = r.styles.Header2
		}
		r.Println(style.Render(text))
		return
	}
	prefix := ""
	for i := 0; i < level; i++ {
		prefix += "#"
	}
	r.Println(prefix + " " + text)
}

// JSON writes v as 2-space-indented JSON to standard output.
func (r *Renderer) JSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	_, _ = fmt.Fprintln(r.out, string(data))
	return nil
}
