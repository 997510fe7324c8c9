package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/LianHaeming/weightlog/models"
)

var (
	aboveGoal = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	atGoal    = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
)

func statusStyle(status string) lipgloss.Style {
	if strings.Contains(status, "+") {
		return aboveGoal
	}
	return atGoal
}

func newGoalCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "goal [weight]",
		Short: "Show or set the goal weight",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, closeStore, err := e.open()
			if err != nil {
				return err
			}
			defer closeStore()

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				if _, err := app.SaveGoal(args[0]); err != nil {
					return err
				}
			}
			goal, ok := app.Goal()
			if !ok {
				fmt.Fprintln(out, "no goal set")
				return nil
			}
			fmt.Fprintf(out, "goal: %s kg\n", models.FormatGoal(goal))
			printStatus(out, app.Status())
			return nil
		},
	}
}

func newStatusCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Compare the latest record with the goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, closeStore, err := e.open()
			if err != nil {
				return err
			}
			defer closeStore()

			printStatus(cmd.OutOrStdout(), app.UpdateGoalStatus())
			return nil
		},
	}
}
