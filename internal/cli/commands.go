package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"todolists/internal/core/domain"
	"todolists/internal/core/port"
	"todolists/internal/core/util"
)

func NewListsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lists",
		Short: "Show all lists, unfinished first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, opts, func(ctx context.Context, svc port.TodoListService) error {
				lists := svc.Lists(ctx)

				if len(lists) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "You have no lists.")
					return nil
				}

				for _, list := range lists {
					fmt.Fprintln(cmd.OutOrStdout(), formatList(list, svc.Summary(list)))
				}

				return nil
			})
		},
	}
}

func NewShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <list-id>",
		Short: "Show one list and its todos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, opts, func(ctx context.Context, svc port.TodoListService) error {
				list, err := svc.List(ctx, args[0])

				if err != nil {
					return classify("cannot show list", err)
				}

				fmt.Fprintln(cmd.OutOrStdout(), formatList(list, svc.Summary(list)))

				for _, todo := range list.Todos {
					fmt.Fprintln(cmd.OutOrStdout(), formatTodo(todo))
				}

				return nil
			})
		},
	}
}

func NewCreateListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "create-list <title>",
		Short: "Create a new list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, opts, func(ctx context.Context, svc port.TodoListService) error {
				if err := svc.CreateList(ctx, args[0]); err != nil {
					return classify("cannot create list", err)
				}

				fmt.Fprintln(cmd.OutOrStdout(), "The list has been created.")
				return nil
			})
		},
	}
}

func NewRenameListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rename-list <list-id> <title>",
		Short: "Rename a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, opts, func(ctx context.Context, svc port.TodoListService) error {
				if err := svc.RenameList(ctx, args[0], args[1]); err != nil {
					return classify("cannot rename list", err)
				}

				fmt.Fprintln(cmd.OutOrStdout(), "The list title has been updated.")
				return nil
			})
		},
	}
}

func NewDeleteListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-list <list-id>",
		Short: "Delete a list and all of its todos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, opts, func(ctx context.Context, svc port.TodoListService) error {
				title, err := svc.DeleteList(ctx, args[0])

				if err != nil {
					return classify("cannot delete list", err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "The list %q has been deleted.\n", title)
				return nil
			})
		},
	}
}

func NewAddTodoCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add-todo <list-id> <title>",
		Short: "Add a todo to a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, opts, func(ctx context.Context, svc port.TodoListService) error {
				if err := svc.CreateTodo(ctx, args[0], args[1]); err != nil {
					return classify("cannot add todo", err)
				}

				fmt.Fprintln(cmd.OutOrStdout(), "The todo has been created.")
				return nil
			})
		},
	}
}

func NewToggleCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <list-id> <todo-id> <true|false>",
		Short: "Mark a todo completed or not completed",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			completed, err := strconv.ParseBool(args[2])

			if err != nil {
				return WrapExitError(ExitFailure, "completed must be true or false", err)
			}

			return withService(cmd, opts, func(ctx context.Context, svc port.TodoListService) error {
				if err := svc.ToggleTodo(ctx, args[0], args[1], completed); err != nil {
					return classify("cannot update todo", err)
				}

				fmt.Fprintln(cmd.OutOrStdout(), "The todo has been updated.")
				return nil
			})
		},
	}
}

func NewDeleteTodoCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-todo <list-id> <todo-id>",
		Short: "Delete a todo",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, opts, func(ctx context.Context, svc port.TodoListService) error {
				if err := svc.DeleteTodo(ctx, args[0], args[1]); err != nil {
					return classify("cannot delete todo", err)
				}

				fmt.Fprintln(cmd.OutOrStdout(), "The todo has been deleted.")
				return nil
			})
		},
	}
}

func NewCompleteAllCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "complete-all <list-id>",
		Short: "Mark every todo in a list completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, opts, func(ctx context.Context, svc port.TodoListService) error {
				if err := svc.CompleteAll(ctx, args[0]); err != nil {
					return classify("cannot complete todos", err)
				}

				fmt.Fprintln(cmd.OutOrStdout(), "The todos have been updated.")
				return nil
			})
		},
	}
}

func formatList(list domain.List, summary domain.ListSummary) string {
	line := fmt.Sprintf("%s\t%s\t%d/%d", list.ID, list.Title, summary.Remaining, summary.Total)

	if summary.Completed {
		line += "\tdone"
	}

	return line
}

func formatTodo(todo domain.Todo) string {
	mark := " "

	if util.IsTodoCompleted(todo) {
		mark = "x"
	}

	return fmt.Sprintf("  [%s] %s\t%s", mark, todo.ID, todo.Title)
}
