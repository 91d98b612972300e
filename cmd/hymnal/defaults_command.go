package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukaji3/hymnal-go/pkg/hymnal/library"
	"github.com/ukaji3/hymnal-go/pkg/hymnal/source"
)

func newDefaultsCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Load the bundled hymn and Bible spreadsheets",
		Long: `Reads the hymn and Bible files configured under [paths], relative to
base_path. An empty library is filled; a non-empty one is left alone
unless --force is given, in which case the bundled data is merged in.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig(cmd)
			if err != nil {
				return err
			}
			return ctx.withLibrary(cmd, func(lib *library.Library) error {
				out := cmd.OutOrStdout()
				existing, err := lib.Songbooks(cmd.Context())
				if err != nil {
					return err
				}
				if len(existing) > 0 && !force {
					fmt.Fprintf(out, "Library already holds %d songbook(s); use --force to merge the bundled data\n", len(existing))
					return nil
				}

				hymnsLocation := source.Resolve(cfg.Paths.BasePath, cfg.Paths.HymnsFile)
				songbooks, err := readSongbooks(cmd.Context(), hymnsLocation, ctx.decodeOptions())
				if err != nil {
					return fmt.Errorf("load default hymns: %w", err)
				}
				bibleLocation := source.Resolve(cfg.Paths.BasePath, cfg.Paths.BibleFile)
				collections, err := readBible(cmd.Context(), bibleLocation, ctx.decodeOptions())
				if err != nil {
					return fmt.Errorf("load default bible: %w", err)
				}

				songResult, err := lib.MergeSongbooks(cmd.Context(), songbooks)
				if err != nil {
					return err
				}
				bibleResult, err := lib.MergeBibles(cmd.Context(), collections)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Loaded %d songbook(s) (%d added, %d replaced) and %d Bible collection(s) (%d added, %d replaced)\n",
					len(songbooks), songResult.Added, songResult.Replaced,
					len(collections), bibleResult.Added, bibleResult.Replaced)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Merge bundled data into a non-empty library")
	return cmd
}
