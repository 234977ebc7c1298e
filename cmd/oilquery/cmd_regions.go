package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oilprice-cn/oilquery/internal/region"
)

func regionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regions [province]",
		Short: "List known provinces or the cities of a province",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, p := range region.Provinces() {
					fmt.Println(p)
				}
				return nil
			}

			province := args[0]
			if !region.IsKnownProvince(province) {
				return fmt.Errorf("unknown province %q", province)
			}
			for _, c := range region.Cities(province) {
				fmt.Println(c)
			}
			return nil
		},
	}
}
