package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/strandlab/strandplot/pkg/core/loops"
	"github.com/strandlab/strandplot/pkg/errors"
	"github.com/strandlab/strandplot/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the inspect command, an interactive browser
// for the loop decomposition of a structure.
func (c *CLI) inspectCommand() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "inspect [notation]",
		Short: "Interactively browse the loop decomposition",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notation, err := readNotation(args, input)
			if err != nil {
				return err
			}
			if err := errors.ValidateNotation(notation); err != nil {
				printError("%s", errors.UserMessage(err))
				return err
			}

			pt, err := pipeline.Parse(cmd.Context(), notation)
			if err != nil {
				printError("%s", errors.UserMessage(err))
				return err
			}
			infos := loops.Decompose(pt)
			if infos == nil {
				printWarning("No pairs, nothing to decompose")
				return nil
			}

			model := newLoopListModel(notation, infos)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "read notation from file")
	return cmd
}

// loopListModel is the bubbletea model for browsing loops.
type loopListModel struct {
	notation string
	infos    []loops.LoopInfo
	cursor   int
	height   int
	offset   int
}

func newLoopListModel(notation string, infos []loops.LoopInfo) loopListModel {
	return loopListModel{
		notation: notation,
		infos:    infos,
		height:   15,
	}
}

func (m loopListModel) Init() tea.Cmd {
	return nil
}

func (m loopListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.infos)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 10
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m loopListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Loop Decomposition"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(m.notation))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.infos) {
		end = len(m.infos)
	}

	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		l := &m.infos[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		rows = append(rows, []string{
			cursor,
			loopName(l),
			fmt.Sprintf("%d", l.NumBonds()),
			fmt.Sprintf("%d", len(l.Unpaired)),
			fmt.Sprintf("%d", len(l.Nicks)),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Loop", "Bonds", "Unpaired", "Nicks").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.offset+row == m.cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(m.detailView())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.infos))))

	return b.String()
}

// detailView shows the selected loop's members.
func (m loopListModel) detailView() string {
	l := &m.infos[m.cursor]
	var parts []string

	if l.Parent != nil {
		parts = append(parts, fmt.Sprintf("closed by (%d, %d)", l.Parent.I, l.Parent.J))
	}
	if len(l.Children) > 0 {
		childs := make([]string, len(l.Children))
		for i, c := range l.Children {
			childs[i] = fmt.Sprintf("(%d, %d)", c.I, c.J)
		}
		parts = append(parts, "children "+strings.Join(childs, " "))
	}
	if len(l.Unpaired) > 0 {
		parts = append(parts, fmt.Sprintf("unpaired %v", l.Unpaired))
	}
	if len(l.Nicks) > 0 {
		parts = append(parts, fmt.Sprintf("nicks %v", l.Nicks))
	}
	if len(parts) == 0 {
		return listDimStyle.Render("  (empty loop)")
	}
	return listDimStyle.Render("  " + strings.Join(parts, "  ·  "))
}

func loopName(l *loops.LoopInfo) string {
	if l.Parent == nil {
		return "exterior"
	}
	return fmt.Sprintf("loop (%d, %d)", l.Parent.I, l.Parent.J)
}
