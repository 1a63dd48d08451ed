package main

import (
	"fmt"

	"github.com/DrewAMSD/lifting-log/internal/config"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "liftinglog",
		Short:        "Client for the lifting-log workout tracking service",
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, _ []string) {
			figure.NewFigure(config.New().GetAppName(), "cybermedium", true).Print()
			fmt.Println()
			_ = cmd.Help()
		},
	}

	root.AddCommand(
		newLoginCommand(),
		newLogoutCommand(),
		newWhoamiCommand(),
		newSignupCommand(),
		newDeleteAccountCommand(),
		newTemplatesCommand(),
		newExercisesCommand(),
		newMusclesCommand(),
		newWorkoutsCommand(),
	)
	return root
}
