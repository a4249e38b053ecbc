package maple

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/mapleseed/pkg/data"
	"github.com/spf13/cobra"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage your owned titles",
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all titles in your library",
	Long:  "Display all titles in your library in a formatted table",
	Run: func(cmd *cobra.Command, args []string) {
		controller := startController(cmd.Context())
		defer controller.Close()

		titles := controller.Library()
		if len(titles) == 0 {
			fmt.Println("🎮 No titles in library. Use 'maple library add' to add one.")
			return
		}

		columns := []table.Column{
			{Title: "ID", Width: 18},
			{Title: "Name", Width: 40},
			{Title: "Region", Width: 8},
			{Title: "Product", Width: 12},
			{Title: "Packs", Width: 6},
		}

		rows := []table.Row{}
		for _, title := range titles {
			rows = append(rows, table.Row{
				title.ID,
				truncateString(title.Name, 38),
				title.Region,
				title.ProductCode,
				fmt.Sprintf("%d", len(controller.FindGraphicPacks(title.ID))),
			})
		}

		t := table.New(
			table.WithColumns(columns),
			table.WithRows(rows),
			table.WithFocused(false),
			table.WithHeight(len(rows)),
		)

		s := table.DefaultStyles()
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
		s.Selected = s.Selected.
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("166")).
			Bold(false)
		t.SetStyles(s)

		fmt.Printf("\n🎮 Library (%d titles)\n\n", len(titles))
		fmt.Println(t.View())
	},
}

var libraryAddCmd = &cobra.Command{
	Use:   "add [title-id]",
	Short: "Add a title to your library",
	Long:  "Add a title to your library. Details missing from the flags are filled in from the catalog",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name, _ := cmd.Flags().GetString("name")
		region, _ := cmd.Flags().GetString("region")

		controller := startController(cmd.Context())
		defer controller.Close()

		title := data.Title{ID: args[0]}
		found, err := controller.FindTitle(cmd.Context(), args[0])
		if err != nil {
			fmt.Printf("⚠️  Catalog lookup failed: %v\n", err)
		} else if found != nil {
			title = *found
		}
		if name != "" {
			title.Name = name
		}
		if region != "" {
			title.Region = region
		}

		if err := controller.AddOwnedTitle(title); err != nil {
			cobra.CheckErr(fmt.Errorf("failed to add title: %w", err))
		}

		fmt.Printf("✅ Added %s to library\n", data.NormalizeID(title.ID))
	},
}

func init() {
	libraryAddCmd.Flags().StringP("name", "n", "", "Title name")
	libraryAddCmd.Flags().StringP("region", "r", "", "Title region (e.g., USA, EUR, JPN)")

	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryAddCmd)
}
