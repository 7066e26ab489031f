package cli

import (
	"fmt"
	"io"

	"github.com/BharadwajDivyanshu/Task-Manager/internal/models"
	"github.com/spf13/cobra"
)

func newListCommand(s *session) *cobra.Command {
	var search, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Example: `  # List all tasks
  taskctl list

  # Pending tasks mentioning "report"
  taskctl list --search report --status pending`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := models.ParseStatusFilter(status)
			if err != nil {
				return err
			}
			a, err := s.open(cmd)
			if err != nil {
				return err
			}

			tasks := a.Tasks.FilteredView(search, filter)
			printTasks(cmd.OutOrStdout(), tasks)

			stats := a.Tasks.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d shown, %d total (%d pending, %d completed)\n",
				len(tasks), stats.Total, stats.Pending, stats.Completed)
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Match title or description (case-insensitive)")
	cmd.Flags().StringVar(&status, "status", "all", "Filter by status (all|pending|completed)")
	return cmd
}

func newAddCommand(s *session) *cobra.Command {
	var description, due, priority string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.open(cmd)
			if err != nil {
				return err
			}

			task, err := a.Tasks.Add(cmd.Context(), models.TaskDraft{
				Title:       args[0],
				Description: description,
				DueDate:     models.DueDate(due),
				Priority:    models.Priority(priority),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", task.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD or TBD)")
	cmd.Flags().StringVar(&priority, "priority", string(models.PriorityMedium), "Priority (low|medium|high)")
	return cmd
}

func newEditCommand(s *session) *cobra.Command {
	var title, description, due, priority string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit the fields of a task",
		Long:  "Only the flags given are changed. Use 'taskctl done' to change completion.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.open(cmd)
			if err != nil {
				return err
			}

			task, ok := a.Tasks.Get(args[0])
			if !ok {
				return fmt.Errorf("task %s not found", args[0])
			}
			flags := cmd.Flags()
			if flags.Changed("title") {
				task.Title = title
			}
			if flags.Changed("description") {
				task.Description = description
			}
			if flags.Changed("due") {
				task.DueDate = models.DueDate(due)
			}
			if flags.Changed("priority") {
				task.Priority = models.Priority(priority)
			}

			updated, found, err := a.Tasks.Update(cmd.Context(), task)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("task %s not found", args[0])
			}
			printTasks(cmd.OutOrStdout(), []models.Task{updated})
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&due, "due", "", "New due date (YYYY-MM-DD, TBD, or empty)")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority (low|medium|high)")
	return cmd
}

func newDoneCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task between pending and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.open(cmd)
			if err != nil {
				return err
			}

			task, found, err := a.Tasks.ToggleCompletion(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("task %s not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", task.ID, statusLabel(task))
			return nil
		},
	}
}

func newDeleteCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.open(cmd)
			if err != nil {
				return err
			}

			found, err := a.Tasks.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("task %s not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func statusLabel(task models.Task) string {
	if task.IsCompleted {
		return string(models.StatusCompleted)
	}
	return string(models.StatusPending)
}

func printTasks(w io.Writer, tasks []models.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return
	}

	fmt.Fprintf(w, "%-36s %-9s %-8s %-10s %s\n", "ID", "STATUS", "PRIORITY", "DUE", "TITLE")
	for _, task := range tasks {
		due := string(task.DueDate)
		if due == "" {
			due = "-"
		}
		fmt.Fprintf(w, "%-36s %-9s %-8s %-10s %s\n",
			task.ID,
			statusLabel(task),
			task.Priority,
			due,
			truncateString(task.Title, 50),
		)
	}
}

func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
