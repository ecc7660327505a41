package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
)

func (a *App) runPairCreate(ctx context.Context, s *serviceSet, args []string) error {
	if len(args) < 2 {
		return usageErrorf("pair:create requires <FROM> and <TO> currency codes")
	}
	fromCode, toCode := args[0], args[1]

	fs := flag.NewFlagSet("pair:create", flag.ContinueOnError)
	observe := fs.Bool("observe", true, "observe this pair for automatic rate updates")
	if err := fs.Parse(args[2:]); err != nil {
		return usageErrorf("pair:create: %v", err)
	}

	result, err := s.pairs.CreatePair(ctx, fromCode, toCode, *observe)
	if err != nil {
		return err
	}

	if !result.Success {
		return fmt.Errorf("%s", result.Message)
	}

	fmt.Println(result.Message)
	fmt.Printf("ID: %s, observe: %t\n", result.Pair.PairID, result.Pair.Observe)
	return nil
}

func (a *App) runPairList(ctx context.Context, s *serviceSet, args []string) error {
	fs := flag.NewFlagSet("pair:list", flag.ContinueOnError)
	filterCode := fs.String("currency", "", "only pairs involving this currency code")
	if err := fs.Parse(args); err != nil {
		return usageErrorf("pair:list: %v", err)
	}

	result, err := s.pairs.ListPairs(ctx, *filterCode)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, result.Count)
	for _, pair := range result.Pairs {
		rows = append(rows, []string{
			pair.PairID, pair.FromCurrencyCode, pair.ToCurrencyCode, strconv.FormatBool(pair.Observe),
		})
	}

	summary := fmt.Sprintf("Found %d currency pair(s)", result.Count)
	if result.Count == 0 {
		if result.FilterCode != "" {
			summary = fmt.Sprintf("No currency pairs found involving %s", result.FilterCode)
		} else {
			summary = "No currency pairs found in the database"
		}
	}
	renderTable(os.Stdout, result.Title, []string{"ID", "From", "To", "Observe"}, rows, summary)
	return nil
}

func (a *App) runPairObserve(ctx context.Context, s *serviceSet, args []string) error {
	if len(args) != 2 {
		return usageErrorf("pair:observe requires <pairID> and <on|off>")
	}

	pair, err := s.pairs.SetObserveStatus(ctx, args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Printf("Pair %s (%s) observe set to %t\n", pair.PairID, pair.Label(), pair.Observe)
	return nil
}
