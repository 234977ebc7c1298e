package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oilprice-cn/oilquery/internal/errs"
)

func noticesCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "notices",
		Short: "Fetch the latest fuel price notices",
		Long:  "Fetches the Sichuan DRC announcement list and shows fuel price notices, newest first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger()
			eng := newEngine(logger)

			if limit <= 0 {
				limit = cfg.NoticeLimit
			}

			notices, err := eng.FetchNotices(context.Background(), limit)
			if err != nil {
				var none *errs.NoNoticesError
				if errors.As(err, &none) {
					fmt.Println("未找到四川发改委成品油价格通知")
					return nil
				}
				return err
			}

			for _, n := range notices {
				fmt.Printf("%s  %s\n    %s\n", n.Date.Format("2006-01-02"), n.Title, n.URL)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of notices (default from config)")

	return cmd
}
