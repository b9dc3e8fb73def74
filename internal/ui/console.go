// Package ui renders medley's terminal output: styled status lines,
// search result listings, installed-package tables, and the interactive
// package picker. The JSON debug log lives in internal/logging; this
// package is only what the user sees.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/medley-sh/medley/internal/dispatch"
	"github.com/medley-sh/medley/internal/provider"
)

// fallbackWidth is used when the output is not a terminal.
const fallbackWidth = 100

// Console writes styled status and listing output.
type Console struct {
	out   io.Writer
	width int
	// plain suppresses lipgloss styling ("never" color mode or
	// non-terminal output)
	plain bool
}

// NewConsole creates a Console writing to stdout, sized to the
// terminal. colorMode is one of "auto", "always", "never".
func NewConsole(colorMode string) *Console {
	width := fallbackWidth
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	if isTTY {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
	}

	plain := colorMode == "never" || (colorMode != "always" && !isTTY)
	return &Console{out: os.Stdout, width: width, plain: plain}
}

// NewConsoleWithWriter creates a Console with an explicit writer and
// width, for tests.
func NewConsoleWithWriter(out io.Writer, width int, plain bool) *Console {
	return &Console{out: out, width: width, plain: plain}
}

func (c *Console) render(s lipgloss.Style, text string) string {
	if c.plain {
		return text
	}
	return s.Render(text)
}

func (c *Console) line(style lipgloss.Style, glyph, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(c.out, c.render(style, glyph+" "+msg))
}

// Successf prints a success line.
func (c *Console) Successf(format string, args ...any) {
	c.line(Secondary, glyphSuccess, format, args...)
}

// Errorf prints an error line.
func (c *Console) Errorf(format string, args ...any) {
	c.line(Error, glyphError, format, args...)
}

// Warnf prints a warning line.
func (c *Console) Warnf(format string, args ...any) {
	c.line(Warning, glyphWarn, format, args...)
}

// Infof prints an informational line.
func (c *Console) Infof(format string, args ...any) {
	c.line(Muted, glyphInfo, format, args...)
}

// Taskf prints a line announcing an operation about to run.
func (c *Console) Taskf(format string, args ...any) {
	c.line(Info, glyphTask, format, args...)
}

// Echo prints an external command line before it runs.
func (c *Console) Echo(cmdline string) {
	fmt.Fprintln(c.out, c.render(CommandEcho, "$ "+cmdline))
}

// Printf prints unstyled text.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// PackageList prints search results as a numbered list, one package
// per line, with provider badge, version and truncated description.
func (c *Console) PackageList(pkgs []provider.Package) {
	if len(pkgs) == 0 {
		c.Infof("no packages found")
		return
	}

	nameWidth := 0
	for _, p := range pkgs {
		if len(p.Name) > nameWidth {
			nameWidth = len(p.Name)
		}
	}

	for i, p := range pkgs {
		idx := c.render(Index, fmt.Sprintf("%3d)", i+1))
		badge := c.render(ProviderBadge, fmt.Sprintf("[%s]", p.Provider))
		name := c.render(PackageName, fmt.Sprintf("%-*s", nameWidth, p.Name))

		parts := []string{idx, badge, name}
		if p.Version != "" {
			parts = append(parts, c.render(PackageVersion, p.Version))
		}
		if p.Installed {
			parts = append(parts, c.render(InstalledMark, "(installed)"))
		}

		head := strings.Join(parts, " ")
		if p.Description != "" {
			desc := truncate(p.Description, c.width-visibleLen(head)-3)
			if desc != "" {
				head += " " + c.render(Muted, "- "+desc)
			}
		}
		fmt.Fprintln(c.out, head)
	}
}

// InstalledTable prints installed packages grouped by provider.
func (c *Console) InstalledTable(pkgs []provider.Package) {
	if len(pkgs) == 0 {
		c.Infof("no packages installed")
		return
	}

	byProvider := map[string][]provider.Package{}
	var order []string
	for _, p := range pkgs {
		if _, seen := byProvider[p.Provider]; !seen {
			order = append(order, p.Provider)
		}
		byProvider[p.Provider] = append(byProvider[p.Provider], p)
	}

	for _, name := range order {
		group := byProvider[name]
		fmt.Fprintln(c.out, c.render(Title, fmt.Sprintf("%s (%d)", name, len(group))))
		for _, p := range group {
			row := "  " + c.render(PackageName, p.Name)
			if p.Version != "" {
				row += " " + c.render(PackageVersion, p.Version)
			}
			fmt.Fprintln(c.out, row)
		}
	}
}

// Results prints per-provider operation outcomes followed by the
// summary line.
func (c *Console) Results(results []dispatch.Result, summary dispatch.Summary) {
	for _, r := range results {
		if r.OK {
			c.Successf("%s: %s", r.Name, r.Message)
		} else {
			c.Errorf("%s: %s", r.Name, r.Message)
		}
	}
	if summary.OK() {
		c.Successf("%s", summary.Message)
	} else {
		c.Warnf("%s", summary.Message)
	}
}

// truncate shortens s to at most max runes, appending an ellipsis.
// Returns empty when max leaves no room for content.
func truncate(s string, max int) string {
	if max < 4 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// visibleLen approximates the printed width of a styled string.
func visibleLen(s string) int {
	return lipgloss.Width(s)
}
