package maple

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var packsCmd = &cobra.Command{
	Use:   "packs [title-id]",
	Short: "List graphic packs for a title",
	Long:  "Display the Cemu graphic packs known for a title in a table",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		controller := startController(cmd.Context())
		defer controller.Close()

		packs := controller.FindGraphicPacks(args[0])
		if len(packs) == 0 {
			fmt.Println("No graphic packs found.")
			return
		}

		var (
			orange = lipgloss.Color("208")

			headerStyle = lipgloss.NewStyle().Foreground(orange).Bold(true).Align(lipgloss.Center)
			cellStyle   = lipgloss.NewStyle().Padding(0, 1)
		)

		t := table.New().
			Border(lipgloss.HiddenBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(orange)).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return headerStyle
				default:
					return cellStyle
				}
			}).
			Headers("#", "Name", "Folder", "Description")

		for i, pack := range packs {
			t.Row(fmt.Sprintf("%d", i+1), truncateString(pack.Name, 40), pack.Folder, truncateString(pack.Description, 50))
		}

		fmt.Println(t)
	},
}
