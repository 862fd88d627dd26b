package main

import (
	"fmt"
	"io"
	"strconv"

	"langportal/internal/domain"
	"langportal/internal/repository/sqlstore"
	"langportal/internal/service"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newWordService(e *env) *service.WordService {
	return service.NewWordService(sqlstore.NewWordRepo(e.db), sqlstore.NewGroupRepo(e.db), e.logger)
}

func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s id %q", what, arg)
	}
	return id, nil
}

func newWordsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "List and maintain vocabulary words",
	}

	cmd.AddCommand(newWordsListCommand())
	cmd.AddCommand(newWordsEditCommand())
	cmd.AddCommand(newWordsDeleteCommand())
	return cmd
}

func newWordsListCommand() *cobra.Command {
	var q domain.WordQuery

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print a page of words with their review counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			page, err := newWordService(e).ListWords(cmd.Context(), q)
			if err != nil {
				return err
			}
			printWordPage(cmd.OutOrStdout(), page)
			return nil
		},
	}

	cmd.Flags().StringVar(&q.Search, "search", "", "Filter by text, transliteration or meaning")
	cmd.Flags().StringVar(&q.SortBy, "sort", "word_id", "Sort column")
	cmd.Flags().StringVar(&q.SortOrder, "order", "asc", "Sort order (asc or desc)")
	cmd.Flags().IntVar(&q.Page, "page", 1, "Page number")
	cmd.Flags().IntVar(&q.PageSize, "page-size", 10, "Words per page")

	return cmd
}

func printWordPage(w io.Writer, page *domain.WordPage) {
	if len(page.Items) == 0 {
		fmt.Fprintln(w, "No words found")
		return
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	for _, item := range page.Items {
		fmt.Fprintf(w, "%4d  %-16s %-16s %-20s ", item.ID, item.Text, item.Transliteration, item.Meaning)
		green.Fprintf(w, "%3d", item.CorrectCount)
		fmt.Fprint(w, " / ")
		red.Fprintf(w, "%-3d", item.WrongCount)
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Page %d of %d (%d words)\n", page.Page, page.TotalPages, page.Total)
}

func newWordsEditCommand() *cobra.Command {
	var text, transliteration, meaning, partOfSpeech string

	cmd := &cobra.Command{
		Use:   "edit <word-id>",
		Short: "Change fields of a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "word")
			if err != nil {
				return err
			}

			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			words := newWordService(e)
			word, err := words.GetWord(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("word %d: %w", id, err)
			}

			flags := cmd.Flags()
			if flags.Changed("text") {
				word.Text = text
			}
			if flags.Changed("transliteration") {
				word.Transliteration = transliteration
			}
			if flags.Changed("meaning") {
				word.Meaning = meaning
			}
			if flags.Changed("part-of-speech") {
				word.PartOfSpeech = partOfSpeech
			}

			if err := words.UpdateWord(cmd.Context(), word); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Word %d updated: %s - %s\n", word.ID, word.Text, word.Meaning)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Word text")
	cmd.Flags().StringVar(&transliteration, "transliteration", "", "Transliteration")
	cmd.Flags().StringVar(&meaning, "meaning", "", "Meaning")
	cmd.Flags().StringVar(&partOfSpeech, "part-of-speech", "", "Part of speech")

	return cmd
}

func newWordsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <word-id>",
		Short: "Delete a word with its reviews and group links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "word")
			if err != nil {
				return err
			}

			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			if err := newWordService(e).DeleteWord(cmd.Context(), id); err != nil {
				return fmt.Errorf("word %d: %w", id, err)
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Word %d deleted\n", id)
			return nil
		},
	}
}
