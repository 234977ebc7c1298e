package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	var limit int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past queries",
		Long:  "Lists stored query records, most recent first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger()
			eng := newEngine(logger)

			records := eng.ListHistory(limit)
			if len(records) == 0 {
				fmt.Println("暂无查询历史")
				return nil
			}

			for _, rec := range records {
				location := rec.Province
				if rec.City != "" {
					location += " " + rec.City
				}
				fmt.Printf("%s  %s  (%s)\n",
					rec.QueriedAt.Format("2006-01-02 15:04:05"),
					location,
					rec.SourceID.DisplayName())
				if verbose {
					for _, item := range rec.Quote.Items {
						fmt.Printf("    %s: %s 元/升\n", item.Grade, item.Price)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of records to show")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Show prices for each record")

	return cmd
}
