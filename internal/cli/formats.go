package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/cgalab/format-converter/pkg/formats"
	"github.com/cgalab/format-converter/pkg/formats/registry"
)

// formatsCommand lists the registered formats.
func (c *CLI) formatsCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List supported file formats",
		Long: `List every supported format with its extensions and whether it can be
read, written or both. The format name or any extension can be passed to
convert's --from and --to flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if plain {
				return printFormatsPlain(cmd.OutOrStdout(), registry.All)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderFormats(registry.All))
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print tab-separated rows without styling")
	return cmd
}

func formatRow(f *formats.Format) []string {
	return []string{f.Name, strings.Join(f.Extensions, " "), yesNo(f.CanLoad()), yesNo(f.CanWrite()), f.Description}
}

// renderFormats returns the format table.
func renderFormats(all []*formats.Format) string {
	rows := make([][]string, len(all))
	for i, f := range all {
		rows[i] = formatRow(f)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Format", "Extensions", "Read", "Write", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cell.Foreground(colorCyan)
			case col == 4:
				return cell.Foreground(colorGray)
			}
			return cell
		})
	return StyleTitle.Render("Formats") + "\n" + t.String()
}

func printFormatsPlain(w io.Writer, all []*formats.Format) error {
	for _, f := range all {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%t\t%t\n", f.Name, strings.Join(f.Extensions, ","), f.CanLoad(), f.CanWrite()); err != nil {
			return err
		}
	}
	return nil
}
