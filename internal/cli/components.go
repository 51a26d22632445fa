package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/rfgds/rfgds/pkg/generate"
)

// componentsCommand creates the components command: a catalog of the
// supported generators, either as a static table, a per-type detail
// view, or an interactive browser.
func (c *CLI) componentsCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "components [type]",
		Short: "List supported component generators",
		Long: `List the component generators the convert pipeline supports.

Without arguments, prints a table of all types. With a type argument,
prints that generator's parameters (with defaults) and ports. With
--interactive, opens a browsable catalog.

Examples:
  rfgds components
  rfgds components spiral_inductor
  rfgds components -i`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				return runComponentBrowser()
			}
			if len(args) == 1 {
				return printComponentDetail(args[0])
			}
			printComponentTable()
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse the catalog interactively")

	return cmd
}

// printComponentTable renders the full generator catalog as a table.
func printComponentTable() {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := [][]string{}
	for _, g := range generate.All() {
		rows = append(rows, []string{g.Type, g.Desc, strings.Join(g.Ports, ", ")})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Type", "Description", "Ports").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle()
		})

	fmt.Println(t.Render())
	printDetail("%d component types · rfgds components <type> for parameters", len(rows))
}

// printComponentDetail prints one generator's contract.
func printComponentDetail(typ string) error {
	g, err := generate.Lookup(typ)
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render(g.Type))
	fmt.Println(StyleDim.Render(g.Desc))
	printNewline()

	fmt.Println(StyleValue.Render("Parameters"))
	for _, p := range g.Params {
		def := "required"
		if p.Default != nil {
			def = fmt.Sprintf("default %v", p.Default)
		}
		fmt.Printf("  %-18s %s %s\n", p.Name, StyleDim.Render(p.Desc), StyleDim.Render("("+def+")"))
	}

	printNewline()
	fmt.Println(StyleValue.Render("Ports"))
	fmt.Printf("  %s\n", strings.Join(g.Ports, ", "))
	return nil
}

// runComponentBrowser opens the interactive catalog.
func runComponentBrowser() error {
	model := NewComponentListModel(generate.All())
	_, err := tea.NewProgram(model).Run()
	return err
}
