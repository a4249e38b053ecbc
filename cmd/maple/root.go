package maple

import (
	"context"
	"os"

	"github.com/kerbaras/mapleseed/pkg/app"
	"github.com/kerbaras/mapleseed/pkg/config"
	"github.com/kerbaras/mapleseed/pkg/services"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "maple",
	Short: "Wii U title library, key and graphic pack manager",
	Long:  "Look up Wii U titles, their keys and Cemu graphic packs, manage your library and queue downloads",
	Run: func(cmd *cobra.Command, args []string) {
		controller := openController()
		defer controller.Close()

		// Launch TUI by default
		a := app.NewApp(controller)
		if err := a.Run(cmd.Context()); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(titleCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(packsCmd)
	rootCmd.AddCommand(libraryCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(downloadCmd)
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// openController loads the settings and opens the store. Failures are fatal.
func openController() *services.Controller {
	settings, err := config.Load()
	cobra.CheckErr(err)

	controller, err := services.NewController(settings)
	cobra.CheckErr(err)
	return controller
}

// startController opens the controller and blocks until its databases are
// loaded.
func startController(ctx context.Context) *services.Controller {
	controller := openController()
	controller.Start(ctx)
	if err := controller.Wait(ctx); err != nil {
		controller.Close()
		cobra.CheckErr(err)
	}
	return controller
}

// truncateString shortens s to at most max runes, ending in "..." when
// there is room for it.
func truncateString(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 0 {
		return ""
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
