package maple

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/kerbaras/mapleseed/pkg/data"
	"github.com/spf13/cobra"
)

var downloadCmd = &cobra.Command{
	Use:   "download [title-id]",
	Short: "Download title content",
	Long:  "Queue a download of a title's game, update or dlc content and wait for it to finish",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dest, _ := cmd.Flags().GetString("dest")
		contentType, _ := cmd.Flags().GetString("type")
		version, _ := cmd.Flags().GetString("version")

		controller := startController(cmd.Context())
		defer controller.Close()

		progress := controller.Progress()
		submitted := controller.DownloadTitleAsync(cmd.Context(), args[0], dest, contentType, version)

		id := data.NormalizeID(args[0])
		fmt.Printf("📥 Downloading %s (%s)\n", id, contentType)

		for {
			select {
			case err := <-submitted:
				if err != nil {
					cobra.CheckErr(fmt.Errorf("download failed: %w", err))
				}
				submitted = nil
			case p, ok := <-progress:
				if !ok {
					cobra.CheckErr(fmt.Errorf("download queue closed"))
				}
				if p.TitleID != id {
					continue
				}
				switch p.Status {
				case "downloading":
					fmt.Println("  downloading...")
				case "complete":
					fmt.Printf("\n✅ Download complete: %s (%s)\n", p.Path, humanize.Bytes(uint64(p.Bytes)))
					return
				case "error":
					cobra.CheckErr(fmt.Errorf("download failed: %w", p.Error))
				}
			case <-cmd.Context().Done():
				cobra.CheckErr(cmd.Context().Err())
			}
		}
	},
}

func init() {
	downloadCmd.Flags().StringP("dest", "d", "", "Destination directory (defaults to the configured title directory)")
	downloadCmd.Flags().StringP("type", "t", "game", "Content type (game, update, dlc)")
	downloadCmd.Flags().StringP("version", "v", "", "Content version")
}
