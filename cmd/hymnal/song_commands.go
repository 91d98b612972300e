package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ukaji3/hymnal-go/pkg/hymnal/library"
	"github.com/ukaji3/hymnal-go/pkg/hymnal/models"
	"github.com/ukaji3/hymnal-go/pkg/hymnal/parser"
)

func newSongCommand(ctx *commandContext) *cobra.Command {
	songCmd := &cobra.Command{
		Use:   "song",
		Short: "Edit hymns inside a stored songbook",
	}

	songCmd.AddCommand(newSongPutCommand(ctx))
	songCmd.AddCommand(newSongDeleteCommand(ctx))

	return songCmd
}

type songFlags struct {
	number      int
	original    int
	globalName  string
	title       string
	stanzas     string
	stanzasFile string
	chorus      string
}

func newSongPutCommand(ctx *commandContext) *cobra.Command {
	var flags songFlags

	cmd := &cobra.Command{
		Use:   "put <songbook>",
		Short: "Add a hymn, or replace one with --original",
		Long: `Stanzas are given as plain text with stanzas separated by a line holding
"---". Without --original the hymn is added and the songbook re-sorted;
with --original every hymn with that number is replaced in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := flags.hymn(cmd.InOrStdin())
			if err != nil {
				return err
			}
			return ctx.withLibrary(cmd, func(lib *library.Library) error {
				sb, err := lib.FindSongbook(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				var original *int
				if cmd.Flags().Changed("original") {
					if _, ok := sb.Hymn(flags.original); !ok {
						return fmt.Errorf("hymn %d not found in %s", flags.original, sb.Title)
					}
					original = &flags.original
				}

				if err := lib.PutSongbook(cmd.Context(), sb.PutHymn(h, original)); err != nil {
					return err
				}
				verb := "Added"
				if original != nil {
					verb = "Updated"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s hymn %d in %s\n", verb, h.SongNumber, sb.Title)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&flags.number, "number", "n", 0, "Song number")
	cmd.Flags().IntVar(&flags.original, "original", 0, "Number of the hymn being replaced")
	cmd.Flags().StringVar(&flags.globalName, "global-name", "", "Global name")
	cmd.Flags().StringVarP(&flags.title, "title", "t", "", "Title")
	cmd.Flags().StringVar(&flags.stanzas, "stanzas", "", "Stanza text, stanzas separated by ---")
	cmd.Flags().StringVar(&flags.stanzasFile, "stanzas-file", "", "Read stanza text from a file (- for stdin)")
	cmd.Flags().StringVar(&flags.chorus, "chorus", "", "Chorus text")
	_ = cmd.MarkFlagRequired("number")
	_ = cmd.MarkFlagRequired("title")
	cmd.MarkFlagsMutuallyExclusive("stanzas", "stanzas-file")
	return cmd
}

func (f songFlags) hymn(stdin io.Reader) (models.Hymn, error) {
	if f.number < 0 {
		return models.Hymn{}, fmt.Errorf("invalid song number %d", f.number)
	}
	title := strings.TrimSpace(f.title)
	if title == "" {
		return models.Hymn{}, errors.New("title must not be empty")
	}

	text := f.stanzas
	switch f.stanzasFile {
	case "":
	case "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return models.Hymn{}, fmt.Errorf("read stanzas: %w", err)
		}
		text = string(data)
	default:
		data, err := os.ReadFile(f.stanzasFile)
		if err != nil {
			return models.Hymn{}, fmt.Errorf("read stanzas: %w", err)
		}
		text = string(data)
	}

	return models.Hymn{
		SongNumber: f.number,
		GlobalName: strings.TrimSpace(f.globalName),
		Title:      title,
		Stanzas:    parser.ParseEditorStanzas(text),
		Chorus:     parser.ParseEditorChorus(f.chorus),
	}, nil
}

func newSongDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <songbook> <number>",
		Short: "Remove every hymn with the given number",
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
				if _, ok := sb.Hymn(number); !ok {
					return fmt.Errorf("hymn %d not found in %s", number, sb.Title)
				}
				if err := lib.PutSongbook(cmd.Context(), sb.DeleteHymn(number)); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted hymn %d from %s\n", number, sb.Title)
				return nil
			})
		},
	}
}
