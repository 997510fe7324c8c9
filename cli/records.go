package cli

import (
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/LianHaeming/weightlog/models"
)

func newAddCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a weight record",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, _ := cmd.Flags().GetString("date")
			weight, _ := cmd.Flags().GetString("weight")

			app, closeStore, err := e.open()
			if err != nil {
				return err
			}
			defer closeStore()

			rec, err := app.AddEntry(date, weight)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "added %s %s kg\n", rec.Date, models.FormatFixed1(rec.Weight))
			printStatus(out, app.Status())
			return nil
		},
	}
	cmd.Flags().String("date", time.Now().Format("2006-01-02"), "measurement date")
	cmd.Flags().String("weight", "", "weight in kg")
	return cmd
}

func newListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List records in the order they were added",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, closeStore, err := e.open()
			if err != nil {
				return err
			}
			defer closeStore()

			page := app.Page()
			out := cmd.OutOrStdout()
			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"#", "ID", "Date", "Weight (kg)"})
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			for _, row := range page.Rows {
				table.Append([]string{fmt.Sprint(row.Index), shortID(row.ID), row.Date, row.Weight})
			}
			table.Render()
			printStatus(out, page.Status)
			return nil
		},
	}
}

func newDeleteCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a record by position or id",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetString("id")
			index, _ := cmd.Flags().GetInt("index")
			if id == "" && !cmd.Flags().Changed("index") {
				return fmt.Errorf("one of --id or --index is required")
			}

			app, closeStore, err := e.open()
			if err != nil {
				return err
			}
			defer closeStore()

			var deleted bool
			if id != "" {
				deleted, err = app.DeleteRecord(id)
			} else {
				deleted, err = app.DeleteEntry(index)
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !deleted {
				fmt.Fprintln(out, "no such record")
				return nil
			}
			fmt.Fprintln(out, "deleted")
			printStatus(out, app.Status())
			return nil
		},
	}
	cmd.Flags().String("id", "", "record id")
	cmd.Flags().Int("index", -1, "zero-based position in the list")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
