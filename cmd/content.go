package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"particle-wui/core/config"
	"particle-wui/core/storage"
	"particle-wui/feature/content"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootFlag string
var pruneFlag bool

// contentCmd represents the content command
var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Inspect and publish the diagnostics content root",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// contentCheckCmd represents the content check command
var contentCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report on the content root",
	Long:  `Prints whether index.html exists and which files fall back to text/plain.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer logg.Sync()

		report, err := content.Check(resolveRoot(cfg))
		if err != nil {
			return err
		}
		if err := printJSON(report); err != nil {
			return err
		}
		if !report.IndexPresent {
			return fmt.Errorf("index.html missing from %s", report.Root)
		}
		return nil
	},
}

// contentPullCmd represents the content pull command
var contentPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download the content root from object storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		syncer, cfg, logg, err := newSyncer(cmd)
		if err != nil {
			return err
		}
		defer logg.Sync()

		result, err := syncer.Pull(cmd.Context(), resolveRoot(cfg))
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

// contentPushCmd represents the content push command
var contentPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload the content root to object storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		syncer, cfg, logg, err := newSyncer(cmd)
		if err != nil {
			return err
		}
		defer logg.Sync()

		result, err := syncer.Push(cmd.Context(), resolveRoot(cfg), pruneFlag)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

func newSyncer(cmd *cobra.Command) (*content.Syncer, *config.Config, *zap.Logger, error) {
	cfg, logg, err := bootstrap(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, nil, nil, err
	}
	return content.NewSyncer(client, cfg.Storage.Bucket, cfg.Storage.Prefix, logg), cfg, logg, nil
}

func resolveRoot(cfg *config.Config) string {
	if rootFlag != "" {
		return rootFlag
	}
	return contentRoot(cfg)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	contentCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "content root (defaults to <executable dir>/<server.content_root>)")
	contentPushCmd.Flags().BoolVar(&pruneFlag, "prune", false, "remove remote files missing locally")

	contentCmd.AddCommand(contentCheckCmd)
	contentCmd.AddCommand(contentPullCmd)
	contentCmd.AddCommand(contentPushCmd)
	RootCmd.AddCommand(contentCmd)
}
