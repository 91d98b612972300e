package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ukaji3/hymnal-go/pkg/hymnal"
	"github.com/ukaji3/hymnal-go/pkg/hymnal/library"
	"github.com/ukaji3/hymnal-go/pkg/hymnal/models"
	"github.com/ukaji3/hymnal-go/pkg/hymnal/source"
)

func newBibleCommand(ctx *commandContext) *cobra.Command {
	bibleCmd := &cobra.Command{
		Use:   "bible",
		Short: "Import and read Bible spreadsheets",
	}

	bibleCmd.AddCommand(newBibleImportCommand(ctx))
	bibleCmd.AddCommand(newBibleShowCommand(ctx))

	return bibleCmd
}

func newBibleImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|url>...",
		Short: "Import Bible spreadsheets",
		Long: `Each sheet with at least one verse becomes a collection. Only a summary
of each collection (id, title, book count) is kept in the library.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(cmd, func(lib *library.Library) error {
				var imported []models.BibleCollection
				for _, location := range args {
					collections, err := readBible(cmd.Context(), location, ctx.decodeOptions())
					if err != nil {
						return err
					}
					imported = append(imported, collections...)
				}

				result, err := lib.MergeBibles(cmd.Context(), imported)
				if err != nil {
					return err
				}
				metadata := make([]models.BibleMetadata, len(imported))
				for i, c := range imported {
					metadata[i] = c.Metadata()
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, bibleTable(metadata))
				fmt.Fprintf(out, "Imported %d collection(s): %d added, %d replaced\n",
					len(imported), result.Added, result.Replaced)
				return nil
			})
		},
	}
}

func newBibleShowCommand(ctx *commandContext) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "show <book> [chapter]",
		Short: "Print a chapter, or list a book's chapters",
		Long: `Verse text is not stored in the library, so the Bible spreadsheet is read
on every call. Without --file the bundled Bible is used.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig(cmd)
			if err != nil {
				return err
			}
			location := strings.TrimSpace(file)
			if location == "" {
				location = source.Resolve(cfg.Paths.BasePath, cfg.Paths.BibleFile)
			}
			collections, err := readBible(cmd.Context(), location, ctx.decodeOptions())
			if err != nil {
				return err
			}

			book, ok := findBook(collections, args[0])
			if !ok {
				return fmt.Errorf("book %q not found in %s", args[0], location)
			}
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				writeChapters(out, book)
				return nil
			}

			chapter, err := strconv.Atoi(args[1])
			if err != nil || chapter < 1 {
				return fmt.Errorf("invalid chapter %q", args[1])
			}
			verses := book.Chapter(chapter)
			if len(verses) == 0 {
				return fmt.Errorf("%s has no chapter %d", book.Name, chapter)
			}
			fmt.Fprintf(out, "%s %d\n\n", book.Name, chapter)
			for _, v := range verses {
				fmt.Fprintf(out, "%d %s\n", v.Verse, v.Text)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Bible spreadsheet path or URL")
	return cmd
}

func readBible(ctx context.Context, location string, opts hymnal.Options) ([]models.BibleCollection, error) {
	data, err := source.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	collections, err := hymnal.ReadBible(data, location, opts)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", location, err)
	}
	return collections, nil
}

func findBook(collections []models.BibleCollection, name string) (models.BibleBook, bool) {
	for _, c := range collections {
		if book, ok := c.Book(name); ok {
			return book, true
		}
	}
	for _, c := range collections {
		for _, book := range c.Books {
			if strings.EqualFold(book.Name, name) {
				return book, true
			}
		}
	}
	return models.BibleBook{}, false
}

func writeChapters(w io.Writer, book models.BibleBook) {
	chapters := book.Chapters()
	parts := make([]string, len(chapters))
	for i, c := range chapters {
		parts[i] = strconv.Itoa(c)
	}
	fmt.Fprintf(w, "%s: %d chapter(s)\n%s\n", book.Name, len(chapters), strings.Join(parts, " "))
}
