package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/maheshrc27/autopost/internal/api"
	"github.com/maheshrc27/autopost/internal/models"
)

func newTickCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tick",
		Short: "Run one scheduler pass over the due schedules",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(cmd.Context(), func(s api.Services) error {
				result, err := s.Scheduler.Tick(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Due: %d  Processed: %d  Skipped: %d  Failed: %d\n",
					result.Due, result.Processed, result.Skipped, result.Failed)
				return nil
			})
		},
	}
}

func newDueCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "due",
		Short: "List the schedules the next pass would run",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(cmd.Context(), func(s api.Services) error {
				schedules, err := s.Scheduler.Due(cmd.Context())
				if err != nil {
					return err
				}
				if len(schedules) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No schedules are due")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "User", "Setting", "Type", "Time", "Next run"},
					dueRows(schedules),
					1, 2, 3,
				))
				return nil
			})
		},
	}
}

func dueRows(schedules []*models.Schedule) [][]string {
	rows := make([][]string, 0, len(schedules))
	for _, s := range schedules {
		next := "-"
		if s.NextRunAt != nil {
			next = s.NextRunAt.Local().Format(time.DateTime)
		}
		rows = append(rows, []string{
			strconv.FormatInt(s.ID, 10),
			strconv.FormatInt(s.UserID, 10),
			strconv.FormatInt(s.ContentSettingID, 10),
			s.ScheduleType,
			s.ScheduleTime,
			next,
		})
	}
	return rows
}
