package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
)

func (a *App) runPairRate(ctx context.Context, s *serviceSet, args []string) error {
	if len(args) < 1 {
		return usageErrorf("pair:rate requires <pairID>")
	}
	pairID := args[0]

	fs := flag.NewFlagSet("pair:rate", flag.ContinueOnError)
	date := fs.String("date", "", `date filter: a day, a timestamp, or "all" (underscores stand in for spaces)`)
	toDate := fs.String("to-date", "", "end of an inclusive date range")
	if err := fs.Parse(args[1:]); err != nil {
		return usageErrorf("pair:rate: %v", err)
	}

	result, err := s.query.GetPairRates(ctx, pairID, *date, *toDate)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, result.Count)
	for _, rate := range result.Rates {
		rows = append(rows, []string{
			rate.ExchangeRateID,
			rate.RateDate.Format("2006-01-02 15:04:05"),
			rate.Rate.String(),
			result.Pair.Label(),
		})
	}

	renderTable(os.Stdout, result.Title, []string{"ID", "Date", "Rate", "Pair"}, rows, result.Summary())
	return nil
}

func (a *App) runRateFetch(ctx context.Context, s *serviceSet, args []string) error {
	if len(args) != 1 {
		return usageErrorf("rate:fetch requires <pairID>")
	}

	result, err := s.fetch.FetchRate(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Println("Successfully fetched and stored exchange rate.")
	fmt.Println(result.Details)
	return nil
}
