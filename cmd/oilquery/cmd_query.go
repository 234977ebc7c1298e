package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oilprice-cn/oilquery/internal/errs"
	"github.com/oilprice-cn/oilquery/internal/models"
)

func queryCmd() *cobra.Command {
	var sourceName string
	var province string
	var city string

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query current fuel prices for a province or city",
		Long: `Queries the selected source for current retail fuel prices. The city may
be omitted for a province-level query. Successful queries are appended to
the history file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger()

			src, err := resolveSource(sourceName)
			if err != nil {
				return err
			}

			eng := newEngine(logger)

			quote, err := eng.QueryPrice(context.Background(), src, province, city)
			if err != nil {
				var nf *errs.NotFoundError
				if errors.As(err, &nf) {
					fmt.Printf("未找到 %s%s 的油价数据\n", province, city)
					return nil
				}
				return err
			}

			printQuote(province, city, quote)
			return nil
		},
	}

	cmd.Flags().StringVar(&sourceName, "source", string(models.SourceJuhe), "Data source (juhe, youjia10260)")
	cmd.Flags().StringVar(&province, "province", "四川省", "Province to query")
	cmd.Flags().StringVar(&city, "city", "广元市", "City to query (empty for a province-level query)")

	return cmd
}

// resolveSource accepts a source identifier or its display name.
func resolveSource(name string) (models.SourceID, error) {
	name = strings.TrimSpace(name)
	for _, id := range models.AllSources() {
		if name == string(id) || name == id.DisplayName() {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown source %q (known: juhe, youjia10260)", name)
}

func printQuote(province, city string, quote models.PriceQuote) {
	location := province
	if city != "" {
		location += " " + city
	}
	fmt.Printf("%s 最新油价（%s）\n", location, quote.Source.DisplayName())
	fmt.Printf("更新时间: %s\n\n", quote.UpdatedAt.Format("2006-01-02 15:04"))
	for _, item := range quote.Items {
		fmt.Printf("  %s: %6s 元/升\n", item.Grade, item.Price)
	}
	if quote.Note != "" {
		fmt.Printf("\n%s\n", quote.Note)
	}
	fmt.Println("数据仅供参考，实际价格以当地加油站为准")
}
