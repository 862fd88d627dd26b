package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newGroupsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "List groups and their words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			groups, err := newWordService(e).ListGroups(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(groups) == 0 {
				fmt.Fprintln(out, "No groups")
				return nil
			}
			for _, g := range groups {
				fmt.Fprintf(out, "%4d  %s\n", g.ID, g.Name)
			}
			return nil
		},
	}

	cmd.AddCommand(newGroupWordsCommand())
	cmd.AddCommand(newGroupRemoveCommand())
	return cmd
}

func newGroupWordsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "words <group-name>",
		Short: "List the words of a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			words := newWordService(e)
			group, err := words.FindGroup(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("group %q: %w", args[0], err)
			}

			list, err := words.GroupWords(cmd.Context(), group.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			color.New(color.Bold).Fprintln(out, group.Name)
			for _, w := range list {
				fmt.Fprintf(out, "%4d  %-16s %-16s %s\n", w.ID, w.Text, w.Transliteration, w.Meaning)
			}
			return nil
		},
	}
}

func newGroupRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <group-name> <word-id>",
		Short: "Remove a word from a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1], "word")
			if err != nil {
				return err
			}

			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			if err := newWordService(e).RemoveFromGroup(cmd.Context(), id, args[0]); err != nil {
				return fmt.Errorf("remove word %d from %q: %w", id, args[0], err)
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Word %d removed from %s\n", id, args[0])
			return nil
		},
	}
}
