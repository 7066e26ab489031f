package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/BharadwajDivyanshu/Task-Manager/internal/app"
	"github.com/BharadwajDivyanshu/Task-Manager/internal/services"
	"github.com/spf13/cobra"
)

// Builder creates the application the commands operate on
type Builder func(ctx context.Context) (*app.App, error)

type session struct {
	build Builder
	app   *app.App
}

func (s *session) open(cmd *cobra.Command) (*app.App, error) {
	if s.app != nil {
		return s.app, nil
	}
	a, err := s.build(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to start: %w", err)
	}
	s.app = a
	return a, nil
}

func (s *session) close() error {
	if s.app == nil {
		return nil
	}
	err := s.app.Close()
	s.app = nil
	return err
}

// Execute runs taskctl with args, writing to out, and releases the
// application afterwards.
func Execute(ctx context.Context, build Builder, args []string, out io.Writer) error {
	s := &session{build: build}
	defer func() {
		if err := s.close(); err != nil {
			log.Printf("Failed to close store: %v", err)
		}
	}()

	root := newRootCmd(s)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(out)
	return root.ExecuteContext(ctx)
}

func newRootCmd(s *session) *cobra.Command {
	root := &cobra.Command{
		Use:   "taskctl",
		Short: "Manage tasks from the command line",
		Long: `taskctl reads and writes the same task store as the API server.
AI commands need GEMINI_API_KEY (or OPENAI_API_KEY with ASSISTANT_PROVIDER=openai).`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newListCommand(s),
		newAddCommand(s),
		newEditCommand(s),
		newDoneCommand(s),
		newDeleteCommand(s),
		newBreakDownCommand(s),
		newDescribeCommand(s),
	)
	return root
}

// assistantError turns an assistant failure into the message the user sees
func assistantError(err error) error {
	if message, ok := services.FailureMessage(err); ok {
		return errors.New(message)
	}
	return err
}
