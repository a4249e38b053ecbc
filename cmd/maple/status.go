package maple

import (
	"fmt"
	"strings"

	"github.com/kerbaras/mapleseed/pkg/app"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Wait for the databases to load",
	Long:  "Start the title library and graphic pack index and report once both are ready",
	Run: func(cmd *cobra.Command, args []string) {
		controller := openController()
		defer controller.Close()

		a := app.NewApp(controller)
		if err := a.WaitReady(cmd.Context()); err != nil {
			cobra.CheckErr(err)
		}
		if !controller.Ready() {
			return
		}

		components := make([]string, 0)
		for _, c := range controller.Components() {
			components = append(components, string(c))
		}
		fmt.Printf("✅ Ready: %s\n", strings.Join(components, ", "))
		summary := controller.Summary()
		fmt.Printf("🗄️  Store: %s\n", summary.Driver)
		fmt.Printf("🎮 %d owned titles\n", summary.OwnedTitles)
		fmt.Printf("🎨 Graphic packs for %d titles\n", summary.PackTitles)
	},
}
