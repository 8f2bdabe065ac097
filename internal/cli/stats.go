package cli

import (
	"fmt"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	summary, err := ctx.Stats.Compute()
	if err != nil {
		return err
	}

	fmt.Printf("Completed trackers: %d\n", summary.CompletedTrackers)
	fmt.Printf("Best streak:        %d\n", summary.BestStreak)
	fmt.Printf("Perfect days:       %d\n", summary.PerfectDays)
	fmt.Printf("Average:            %d\n", summary.Average)
	return nil
}
