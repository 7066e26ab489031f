package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBreakDownCommand(s *session) *cobra.Command {
	var accept bool

	cmd := &cobra.Command{
		Use:   "breakdown <task>",
		Short: "Ask the AI to split a complex task into sub-tasks",
		Example: `  # Preview suggestions
  taskctl breakdown "Launch the new website"

  # Add every suggestion as a task
  taskctl breakdown "Launch the new website" --accept`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.open(cmd)
			if err != nil {
				return err
			}

			suggestions, err := a.Assistant.BreakDown(cmd.Context(), args[0])
			if err != nil {
				return assistantError(err)
			}

			out := cmd.OutOrStdout()
			if len(suggestions) == 0 {
				fmt.Fprintln(out, "No sub-tasks suggested.")
				return nil
			}
			for i, suggestion := range suggestions {
				fmt.Fprintf(out, "%2d. %s [%s, due %s]\n", i+1, suggestion.Title, suggestion.Priority, suggestion.DueDate)
				if suggestion.Description != "" {
					fmt.Fprintf(out, "    %s\n", suggestion.Description)
				}
			}

			if !accept {
				fmt.Fprintln(out, "\nRe-run with --accept to add these tasks.")
				return nil
			}

			created, err := a.Assistant.AcceptSuggestions(cmd.Context(), suggestions)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nAdded %d tasks.\n", len(created))
			return nil
		},
	}

	cmd.Flags().BoolVar(&accept, "accept", false, "Add all suggestions as tasks")
	return cmd
}

func newDescribeCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <title>",
		Short: "Ask the AI for a short description of a task title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.open(cmd)
			if err != nil {
				return err
			}

			description, err := a.Assistant.DraftDescription(cmd.Context(), args[0])
			if err != nil {
				return assistantError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), description)
			return nil
		},
	}
}
