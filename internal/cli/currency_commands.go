package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

func (a *App) runCurrencyFetch(ctx context.Context, s *serviceSet, args []string) error {
	result, err := s.currencies.FetchCurrencies(ctx, args)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(result.Currencies))
	for _, c := range result.Currencies {
		rows = append(rows, []string{c.CurrencyCode, c.Name, c.Symbol, c.Type})
	}

	summary := fmt.Sprintf("Fetched %d currencies (%d added, %d updated)",
		len(result.Currencies), len(result.Added), len(result.Updated))
	renderTable(os.Stdout, "Fetched currencies", []string{"Code", "Name", "Symbol", "Type"}, rows, summary)
	return nil
}

func (a *App) runCurrencyList(ctx context.Context, s *serviceSet) error {
	currencies, err := s.currencies.ListCurrencies(ctx)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(currencies))
	for _, c := range currencies {
		rows = append(rows, []string{
			c.CurrencyCode, c.Name, c.Symbol, strconv.Itoa(c.DecimalDigits), c.Type,
		})
	}

	summary := fmt.Sprintf("Found %d currenc%s", len(currencies), pluralY(len(currencies)))
	if len(currencies) == 0 {
		summary = "No currencies found. Fetch them first with the currency:fetch command."
	}
	renderTable(os.Stdout, "Available currencies",
		[]string{"Code", "Name", "Symbol", "Digits", "Type"}, rows, summary)
	return nil
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
