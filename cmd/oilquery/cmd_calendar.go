package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func calendarCmd() *cobra.Command {
	var addDate string
	var prune bool

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show known price adjustment dates",
		Long: `Shows the known and predicted price-adjustment dates from today onward.
Past dates stay in the calendar file unless --prune is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger()
			eng := newEngine(logger)

			if addDate != "" {
				if err := eng.AddCalendarDate(addDate); err != nil {
					return err
				}
			}
			if prune {
				if err := eng.PruneCalendar(); err != nil {
					return err
				}
			}

			dates := eng.Calendar()
			fmt.Println("油价调整日历")
			if len(dates) == 0 {
				fmt.Println("暂无未来油价调整计划")
				return nil
			}
			for _, d := range dates {
				fmt.Println(d)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addDate, "add", "", "Add an adjustment date (YYYY-MM-DD) and save")
	cmd.Flags().BoolVar(&prune, "prune", false, "Drop past dates from the calendar file")

	return cmd
}
