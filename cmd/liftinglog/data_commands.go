package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// authedApp builds the app, resolves the stored session and returns a
// fresh access token, or a friendly error when nobody is logged in.
func authedApp(ctx context.Context) (*app, string, error) {
	a, err := newApp()
	if err != nil {
		return nil, "", err
	}
	a.manager.Resolve(ctx)
	if _, err := a.gate.Require(ctx); err != nil {
		return nil, "", notLoggedIn(err)
	}
	accessToken, err := a.manager.AccessToken(ctx)
	if err != nil {
		return nil, "", notLoggedIn(err)
	}
	return a, accessToken, nil
}

func newTemplatesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage workout templates",
	}
	cmd.AddCommand(newTemplatesListCommand(), newTemplatesShowCommand(), newTemplatesDeleteCommand())
	return cmd
}

func newTemplatesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your workout templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, accessToken, err := authedApp(ctx)
			if err != nil {
				return err
			}
			templates, err := a.client.Templates(ctx, accessToken)
			if err != nil {
				return err
			}
			if len(templates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No templates")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEXERCISES")
			for _, t := range templates {
				id := ""
				if t.ID != nil {
					id = strconv.Itoa(*t.ID)
				}
				fmt.Fprintf(w, "%s\t%s\t%d\n", id, t.Name, len(t.ExerciseTemplates))
			}
			return w.Flush()
		},
	}
}

func newTemplatesShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one workout template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid template id %q", args[0])
			}
			ctx := cmd.Context()
			a, accessToken, err := authedApp(ctx)
			if err != nil {
				return err
			}
			t, err := a.client.Template(ctx, accessToken, id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", t.Name)
			for _, e := range t.ExerciseTemplates {
				fmt.Fprintf(out, "  %s (%d sets)\n", e.ExerciseName, len(e.SetTemplates))
				for i, s := range e.SetTemplates {
					fmt.Fprintf(out, "    set %d: %s\n", i+1, describeSet(s.Reps, s.RepRangeStart, s.RepRangeEnd, s.TimeRangeStart, s.TimeRangeEnd))
				}
			}
			return nil
		},
	}
}

func describeSet(reps, repStart, repEnd, timeStart, timeEnd *int) string {
	switch {
	case reps != nil:
		return fmt.Sprintf("%d reps", *reps)
	case repStart != nil && repEnd != nil:
		return fmt.Sprintf("%d-%d reps", *repStart, *repEnd)
	case timeStart != nil && timeEnd != nil:
		return fmt.Sprintf("%ds-%ds", *timeStart, *timeEnd)
	default:
		return "unspecified"
	}
}

func newTemplatesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a workout template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid template id %q", args[0])
			}
			ctx := cmd.Context()
			a, accessToken, err := authedApp(ctx)
			if err != nil {
				return err
			}
			if err := a.client.DeleteTemplate(ctx, accessToken, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Template %d deleted\n", id)
			return nil
		},
	}
}

func newExercisesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exercises",
		Short: "Manage exercises",
	}
	cmd.AddCommand(newExercisesListCommand(), newExercisesDefaultsCommand(), newExercisesDeleteCommand())
	return cmd
}

func newExercisesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a custom exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid exercise id %q", args[0])
			}
			ctx := cmd.Context()
			a, accessToken, err := authedApp(ctx)
			if err != nil {
				return err
			}
			if err := a.client.DeleteExercise(ctx, accessToken, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exercise %d deleted\n", id)
			return nil
		},
	}
}

func newExercisesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your custom exercises",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, accessToken, err := authedApp(ctx)
			if err != nil {
				return err
			}
			exercises, err := a.client.Exercises(ctx, accessToken)
			if err != nil {
				return err
			}
			if len(exercises) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No custom exercises")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPRIMARY\tSECONDARY")
			for _, e := range exercises {
				id := ""
				if e.ID != nil {
					id = strconv.Itoa(*e.ID)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", id, e.Name,
					strings.Join(e.Primary, ","), strings.Join(e.Secondary, ","))
			}
			return w.Flush()
		},
	}
}

func newExercisesDefaultsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "List the built-in exercises",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp()
			if err != nil {
				return err
			}
			exercises, err := a.client.DefaultExercises(ctx)
			if err != nil {
				return err
			}
			for _, e := range exercises {
				fmt.Fprintln(cmd.OutOrStdout(), e.Name)
			}
			return nil
		},
	}
}

func newMusclesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "muscles",
		Short: "List the muscle groups exercises can target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			muscles, err := a.client.DefaultMuscles(cmd.Context())
			if err != nil {
				return err
			}
			for _, m := range muscles {
				fmt.Fprintln(cmd.OutOrStdout(), m)
			}
			return nil
		},
	}
}
