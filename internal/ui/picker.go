package ui

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/medley-sh/medley/internal/errors"
	"github.com/medley-sh/medley/internal/provider"
)

// selection is the parsed form of a picker reply.
type selection struct {
	indices []int // zero-based, in input order, deduplicated
	all     bool
	skip    bool
}

// parseSelection interprets a picker reply against n listed packages.
// Accepted forms: "3", "1,3,4", "a"/"all", "s"/"skip"/"q" or empty to
// skip. Indices are one-based in the input.
func parseSelection(input string, n int) (selection, error) {
	input = strings.TrimSpace(strings.ToLower(input))

	switch input {
	case "", "s", "skip", "q", "quit":
		return selection{skip: true}, nil
	case "a", "all":
		return selection{all: true}, nil
	}

	seen := make(map[int]bool)
	var indices []int
	for _, field := range strings.Split(input, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		i, err := strconv.Atoi(field)
		if err != nil {
			return selection{}, fmt.Errorf("not a number: %q", field)
		}
		if i < 1 || i > n {
			return selection{}, fmt.Errorf("%d is out of range 1-%d", i, n)
		}
		if seen[i] {
			continue
		}
		seen[i] = true
		indices = append(indices, i-1)
	}
	if len(indices) == 0 {
		return selection{skip: true}, nil
	}
	return selection{indices: indices}, nil
}

// apply resolves a selection to concrete packages.
func (s selection) apply(pkgs []provider.Package) []provider.Package {
	if s.all {
		return pkgs
	}
	out := make([]provider.Package, 0, len(s.indices))
	for _, i := range s.indices {
		out = append(out, pkgs[i])
	}
	return out
}

// pickerModel is the bubbletea model behind the package prompt.
type pickerModel struct {
	console *Console
	pkgs    []provider.Package
	input   textinput.Model
	errMsg  string
	result  selection
	done    bool
}

func newPickerModel(c *Console, pkgs []provider.Package) pickerModel {
	ti := textinput.New()
	ti.Placeholder = "1,2 / a=all / s=skip"
	ti.Prompt = "> "
	ti.PromptStyle = PromptStyle
	ti.CharLimit = 64
	ti.Focus()

	return pickerModel{console: c, pkgs: pkgs, input: ti}
}

func (m pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.result = selection{skip: true}
			m.done = true
			return m, tea.Quit
		case tea.KeyEnter:
			sel, err := parseSelection(m.input.Value(), len(m.pkgs))
			if err != nil {
				m.errMsg = err.Error()
				m.input.SetValue("")
				return m, nil
			}
			m.result = sel
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	if m.done {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.console.render(Title, fmt.Sprintf("Select packages to install (1-%d):", len(m.pkgs))))
	sb.WriteString("\n")
	if m.errMsg != "" {
		sb.WriteString(m.console.render(Error, glyphError+" "+m.errMsg))
		sb.WriteString("\n")
	}
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	return sb.String()
}

// PickPackages lists candidates and prompts the user to choose which
// to install. Returns ErrNoSelection when the user skips. Not a
// terminal is the caller's problem: check Interactive first.
func (c *Console) PickPackages(pkgs []provider.Package) ([]provider.Package, error) {
	c.PackageList(pkgs)

	p := tea.NewProgram(newPickerModel(c, pkgs))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("package prompt: %w", err)
	}

	m := final.(pickerModel)
	if m.result.skip {
		return nil, errors.ErrNoSelection
	}
	return m.result.apply(pkgs), nil
}

// Confirm asks a yes/no question, defaulting to no.
func (c *Console) Confirm(question string) bool {
	fmt.Fprint(c.out, c.render(PromptStyle, question+" [y/N] "))
	var reply string
	fmt.Scanln(&reply)
	reply = strings.ToLower(strings.TrimSpace(reply))
	return reply == "y" || reply == "yes"
}

// Interactive reports whether stdin and stdout are both terminals, so
// prompting is possible.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
