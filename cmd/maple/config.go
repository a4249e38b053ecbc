package maple

import (
	"fmt"

	"github.com/kerbaras/mapleseed/pkg/data"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change your preferences",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored configuration",
	Run: func(cmd *cobra.Command, args []string) {
		controller := openController()
		defer controller.Close()

		cfg, err := controller.Config()
		cobra.CheckErr(err)
		printConfig(cfg)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the stored configuration",
	Long:  "Update one or more preferences. Flags that are not given keep their stored value",
	Run: func(cmd *cobra.Command, args []string) {
		controller := openController()
		defer controller.Close()

		cfg, err := controller.Config()
		cobra.CheckErr(err)

		flags := cmd.Flags()
		if flags.Changed("title-dir") {
			cfg.TitleDirectory, _ = flags.GetString("title-dir")
		}
		if flags.Changed("cemu-dir") {
			cfg.CemuDirectory, _ = flags.GetString("cemu-dir")
		}
		if flags.Changed("language") {
			cfg.Language, _ = flags.GetString("language")
		}
		if flags.Changed("workers") {
			workers, _ := flags.GetInt("workers")
			if workers < 1 {
				cobra.CheckErr(fmt.Errorf("workers must be at least 1, got %d", workers))
			}
			cfg.MaxParallelDownloads = workers
		}

		cfg, err = controller.SaveConfig(cfg)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("failed to save config: %w", err))
		}

		fmt.Println("✅ Configuration saved")
		printConfig(cfg)
	},
}

func printConfig(cfg *data.Config) {
	fmt.Printf("Index:           %s\n", cfg.Index)
	fmt.Printf("Title directory: %s\n", cfg.TitleDirectory)
	fmt.Printf("Cemu directory:  %s\n", cfg.CemuDirectory)
	fmt.Printf("Language:        %s\n", cfg.Language)
	fmt.Printf("Max downloads:   %d\n", cfg.MaxParallelDownloads)
	if cfg.LastTitleID != "" {
		fmt.Printf("Last title:      %s\n", cfg.LastTitleID)
	}
}

func init() {
	configSetCmd.Flags().String("title-dir", "", "Directory downloads are written to")
	configSetCmd.Flags().String("cemu-dir", "", "Cemu installation directory")
	configSetCmd.Flags().StringP("language", "l", "", "Preferred language code (e.g., en, ja)")
	configSetCmd.Flags().IntP("workers", "w", 0, "Maximum parallel downloads")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
