package maple

import (
	"fmt"

	"github.com/spf13/cobra"
)

var keyCmd = &cobra.Command{
	Use:   "key [title-id]",
	Short: "Look up a title key",
	Long:  "Fetch the title key database (or the bundled snapshot when offline) and print the key for a title",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		controller := openController()
		defer controller.Close()

		key, err := controller.FindTitleKey(cmd.Context(), args[0])
		if err != nil {
			cobra.CheckErr(fmt.Errorf("key lookup failed: %w", err))
		}
		if key == nil {
			fmt.Println("❌ No key found.")
			return
		}

		fmt.Printf("🔑 %s  %s\n", key.TitleID, key.Key)
		if key.Name != "" {
			fmt.Printf("   %s (%s)\n", key.Name, key.Region)
		}
	},
}
