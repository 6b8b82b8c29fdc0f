package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treelayout/pkg/render/text"
	"github.com/matzehuels/treelayout/pkg/tree"
	"github.com/matzehuels/treelayout/pkg/treelayout"
)

const (
	previewCols = 80
	previewRows = 20

	// previewChrome is the number of terminal lines used by the status bar.
	previewChrome = 3
)

// previewCommand creates the preview command for browsing a layout.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		noCache bool
		flags   layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "preview [tree.json]",
		Short: "Browse a tree layout in the terminal",
		Long: `Compute a layout and draw it in the terminal.

Keys: ↑/k parent, ↓/j first child, ←/h and →/l siblings, q quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := cfg.PipelineOptions()
			flags.apply(cmd, &opts)

			t, err := tree.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("load tree %s: %w", args[0], err)
			}
			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			l, err := runner.Layout(cmd.Context(), t, opts)
			if err != nil {
				return fmt.Errorf("compute layout: %w", err)
			}
			return runPreview(cmd.Context(), newPreviewModel(t, l))
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.register(cmd)

	return cmd
}

func runPreview(ctx context.Context, m previewModel) error {
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if pm, ok := final.(previewModel); ok && pm.err != nil {
		return pm.err
	}
	return nil
}

// =============================================================================
// previewModel - Interactive layout viewer
// =============================================================================

// previewModel is the bubbletea model for the preview command.
type previewModel struct {
	tree   *tree.Tree
	layout *treelayout.Layout
	grid   *text.Grid
	cursor int
	err    error
}

func newPreviewModel(t *tree.Tree, l *treelayout.Layout) previewModel {
	m := previewModel{tree: t, layout: l}
	m.resize(previewCols, previewRows+previewChrome)
	if roots := t.Roots(); len(roots) > 0 {
		m.cursor = roots[0]
	}
	return m
}

func (m *previewModel) resize(width, height int) {
	cols, rows := max(width, 1), max(height-previewChrome, 1)
	g, err := text.Build(m.layout, m.tree, cols, rows)
	if err != nil {
		m.err = err
		return
	}
	m.grid = g
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if p := m.tree.Parent(m.cursor); p != tree.NoParent {
				m.cursor = p
			}
		case "down", "j":
			if kids := m.tree.Children(m.cursor); len(kids) > 0 {
				m.cursor = kids[0]
			}
		case "left", "h":
			m.cursor = m.sibling(-1)
		case "right", "l":
			m.cursor = m.sibling(1)
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		if m.err != nil {
			return m, tea.Quit
		}
	}
	return m, nil
}

// sibling returns the vertex step positions away from the cursor among its
// siblings (roots count as siblings of each other), clamped to the ends.
func (m previewModel) sibling(step int) int {
	var group []int
	if p := m.tree.Parent(m.cursor); p != tree.NoParent {
		group = m.tree.Children(p)
	} else {
		group = m.tree.Roots()
	}
	i := slices.Index(group, m.cursor)
	if i < 0 {
		return m.cursor
	}
	i = min(max(i+step, 0), len(group)-1)
	return group[i]
}

func (m previewModel) View() string {
	if m.tree.Size() == 0 {
		return StyleDim.Render("empty tree") + "\n"
	}
	if m.grid == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.grid.Highlight(m.cursor, StyleHighlight.Bold(true)))
	b.WriteString("\n")

	p := m.layout.Vertex(m.cursor)
	b.WriteString(StyleHighlight.Render(m.tree.Label(m.cursor)))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  depth %g · offset %g · %d children",
		p.Depth(), p.Offset(), len(m.tree.Children(m.cursor)))))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ parent/child  ←/→ siblings  q quit"))
	return b.String()
}
