package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/DrewAMSD/lifting-log/api"
	"github.com/spf13/cobra"
)

func newWorkoutsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workouts",
		Short: "Record workouts",
	}
	cmd.AddCommand(newWorkoutsLogCommand())
	return cmd
}

func newWorkoutsLogCommand() *cobra.Command {
	var name string
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "log <template-id>",
		Short: "Record a workout from a template's prescription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			templateID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid template id %q", args[0])
			}
			ctx := cmd.Context()
			a, accessToken, err := authedApp(ctx)
			if err != nil {
				return err
			}
			template, err := a.client.Template(ctx, accessToken, templateID)
			if err != nil {
				return err
			}

			if name == "" {
				name = template.Name
			}
			now := time.Now()
			workout := api.Workout{
				Name:            name,
				Date:            now.Format(time.DateOnly),
				StartTime:       now.Add(-duration).Format(time.TimeOnly),
				Duration:        int(duration.Seconds()),
				ExerciseEntries: entriesFromTemplate(template.ExerciseTemplates),
			}
			created, err := a.client.CreateWorkout(ctx, accessToken, workout)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %q with %d exercises\n", created.Name, len(created.ExerciseEntries))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "workout name (defaults to the template name)")
	cmd.Flags().DurationVar(&duration, "duration", time.Hour, "how long the workout took")
	return cmd
}

// entriesFromTemplate turns a template's prescription into performed
// entries. Ranges collapse to their lower bound; the user edits the
// details afterwards in the web client.
func entriesFromTemplate(templates []api.ExerciseTemplate) []api.ExerciseEntry {
	entries := make([]api.ExerciseEntry, 0, len(templates))
	for _, et := range templates {
		entry := api.ExerciseEntry{
			ExerciseID:   et.ExerciseID,
			ExerciseName: et.ExerciseName,
			SetEntries:   make([]api.SetEntry, 0, len(et.SetTemplates)),
		}
		for _, st := range et.SetTemplates {
			var set api.SetEntry
			switch {
			case st.Reps != nil:
				reps := *st.Reps
				set.Reps = &reps
			case st.RepRangeStart != nil:
				reps := *st.RepRangeStart
				set.Reps = &reps
			case st.TimeRangeStart != nil:
				clock := secondsToClock(*st.TimeRangeStart)
				set.Time = &clock
			}
			entry.SetEntries = append(entry.SetEntries, set)
		}
		entries = append(entries, entry)
	}
	return entries
}

func secondsToClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}
