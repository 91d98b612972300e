package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ukaji3/hymnal-go/pkg/hymnal"
	"github.com/ukaji3/hymnal-go/pkg/hymnal/library"
	"github.com/ukaji3/hymnal-go/pkg/hymnal/models"
	"github.com/ukaji3/hymnal-go/pkg/hymnal/source"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "import <file|url>...",
		Short: "Import hymn spreadsheets into the library",
		Long: `Each sheet becomes a songbook titled after the sheet. A stored songbook
with the same title is replaced; other titles are added.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(cmd, func(lib *library.Library) error {
				opts := ctx.decodeOptions()
				opts.Sheet = strings.TrimSpace(sheet)

				var imported []models.Songbook
				for _, location := range args {
					songbooks, err := readSongbooks(cmd.Context(), location, opts)
					if err != nil {
						return err
					}
					imported = append(imported, songbooks...)
				}

				result, err := lib.MergeSongbooks(cmd.Context(), imported)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, songbookTable(imported))
				fmt.Fprintf(out, "Imported %d songbook(s): %d added, %d replaced\n",
					len(imported), result.Added, result.Replaced)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Import only the named sheet")
	return cmd
}

func readSongbooks(ctx context.Context, location string, opts hymnal.Options) ([]models.Songbook, error) {
	data, err := source.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	if opts.Sheet != "" {
		sb, err := hymnal.ReadSongbook(data, location, opts)
		if err != nil {
			return nil, fmt.Errorf("import %s: %w", location, err)
		}
		return []models.Songbook{*sb}, nil
	}
	songbooks, err := hymnal.ReadSongbooks(data, location, opts)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", location, err)
	}
	return songbooks, nil
}

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored songbooks and Bible collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(cmd, func(lib *library.Library) error {
				songbooks, err := lib.Songbooks(cmd.Context())
				if err != nil {
					return err
				}
				bibles, err := lib.Bibles(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(songbooks) == 0 && len(bibles) == 0 {
					fmt.Fprintln(out, "Library is empty. Import a spreadsheet or run `hymnal defaults`.")
					return nil
				}
				if len(songbooks) > 0 {
					fmt.Fprintln(out, songbookTable(songbooks))
				}
				if len(bibles) > 0 {
					fmt.Fprintln(out, bibleTable(bibles))
				}
				return nil
			})
		},
	}
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "search <songbook> [query]",
		Short: "Search a songbook by number, name, title or lyrics",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(cmd, func(lib *library.Library) error {
				sb, err := lib.FindSongbook(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				var query string
				if len(args) > 1 {
					query = args[1]
				}

				hymns := sb.Search(query)
				out := cmd.OutOrStdout()
				if len(hymns) == 0 {
					fmt.Fprintf(out, "No hymns in %s match %q\n", sb.Title, query)
					return nil
				}
				fmt.Fprintln(out, hymnTable(hymns))
				return nil
			})
		},
	}
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <songbook> <number>",
		Short: "Print one hymn",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseSongNumber(args[1])
			if err != nil {
				return err
			}
			return ctx.withLibrary(cmd, func(lib *library.Library) error {
				sb, err := lib.FindSongbook(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				h, ok := sb.Hymn(number)
				if !ok {
					return fmt.Errorf("hymn %d not found in %s", number, sb.Title)
				}
				writeHymn(cmd.OutOrStdout(), h)
				return nil
			})
		},
	}
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var edited bool

	cmd := &cobra.Command{
		Use:   "export <songbook>",
		Short: "Write a songbook to an xlsx file",
		Long: `Writes the songbook as a one-sheet workbook with the columns
Song Number, Global Name, Title, Stanzas and Choruses. The default file
name is the songbook title; --edited appends "_updated". Use -o - for
stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(cmd, func(lib *library.Library) error {
				sb, err := lib.FindSongbook(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				if sheet := hymnal.ExportSheetName(sb.Title); sheet != sb.Title {
					fmt.Fprintf(cmd.ErrOrStderr(),
						"warning: sheet saved as %q; importing the file adds a new songbook instead of replacing %q\n",
						sheet, sb.Title)
				}
				if outputPath == "-" {
					return hymnal.WriteSongbook(cmd.OutOrStdout(), sb)
				}
				target := outputPath
				if target == "" {
					target = hymnal.ExportFileName(sb.Title, edited)
				}
				data, err := hymnal.EncodeSongbook(sb)
				if err != nil {
					return err
				}
				if err := os.WriteFile(target, data, 0o644); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d hymn(s) to %s\n", len(sb.Hymns), target)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: <title>.xlsx in the current directory)")
	cmd.Flags().BoolVar(&edited, "edited", false, "Name the default output <title>_updated.xlsx")
	return cmd
}



func writeHymn(w io.Writer, h models.Hymn) {
	heading := fmt.Sprintf("%d. %s", h.SongNumber, h.Title)
	if h.GlobalName != "" && h.GlobalName != h.Title {
		heading += " (" + h.GlobalName + ")"
	}
	fmt.Fprintln(w, heading)
	for i, stanza := range h.Stanzas {
		fmt.Fprintf(w, "\n%d\n%s\n", i+1, stanza)
	}
	if chorus := h.ChorusText(); chorus != "" {
		fmt.Fprintf(w, "\nChorus\n%s\n", chorus)
	}
}
