package commands

import (
	"github.com/spf13/cobra"
)

// NewCacheCommand creates the cache command.
func NewCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the lint result cache",
		Long: `Lint results are cached by file content and configuration, so unchanged
files are not re-linted. Fix runs never use the cache.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "dir",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			dir, err := cacheDir(cc.Cfg)
			if err != nil {
				return err
			}
			cc.Renderer.Println(dir)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			dc, err := openCache(cc.Cfg, cc.Logger)
			if err != nil {
				return err
			}
			if err := dc.DropAll(); err != nil {
				return err
			}
			cc.Renderer.Status("Cache cleared.")
			return nil
		},
	})

	return cmd
}
