package maple

import (
	"fmt"

	"github.com/spf13/cobra"
)

var titleCmd = &cobra.Command{
	Use:   "title [title-id]",
	Short: "Look up a title",
	Long:  "Resolve a title id against your library first and the online catalog second",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		controller := startController(cmd.Context())
		defer controller.Close()

		title, err := controller.FindTitle(cmd.Context(), args[0])
		if err != nil {
			cobra.CheckErr(fmt.Errorf("lookup failed: %w", err))
		}
		if title == nil {
			fmt.Println("❌ Title not found.")
			return
		}

		fmt.Printf("🎮 %s\n", title.Name)
		fmt.Printf("   ID:      %s\n", title.ID)
		fmt.Printf("   Region:  %s\n", title.Region)
		fmt.Printf("   Product: %s\n", title.ProductCode)
		if title.Version != "" {
			fmt.Printf("   Version: %s\n", title.Version)
		}
	},
}
