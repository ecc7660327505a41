package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/fxwatch/fxwatch/internal/apperrors"
)

// FilterKind discriminates the rate filter variants.
type FilterKind int

const (
	// FilterLatest selects only the newest record for the pair.
	FilterLatest FilterKind = iota
	// FilterAll selects the full history, newest first.
	FilterAll
	// FilterDayBucket selects the half-open 24-hour window [day, day+1).
	FilterDayBucket
	// FilterExactTimestamp selects records whose timestamp equals From exactly.
	FilterExactTimestamp
	// FilterRange selects the inclusive window [From, To].
	FilterRange
)

// RateFilter is a parsed date filter for exchange-rate lookups. From and To
// are only meaningful for the kinds that carry bounds: DayBucket uses
// [From, To) with To exclusive, Range uses [From, To] inclusive, and
// ExactTimestamp matches From with strict equality.
type RateFilter struct {
	Kind FilterKind
	From time.Time
	To   time.Time
}

// dateLayouts are the accepted input formats, most specific first.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseRateFilter turns the raw date tokens from the command line into a
// concrete filter.
//
// Underscores in the input stand in for spaces, so shells don't need quoting
// ("2023-01-01_14:30"). A lone date with a zero time-of-day becomes a day
// bucket; a lone date with a nonzero time component matches stored timestamps
// by strict equality. The equality branch rarely matches anything on a time
// series populated by independent fetch events, but that is the contract
// callers rely on.
func ParseRateFilter(rawDate, rawToDate string) (RateFilter, error) {
	if rawDate == "" && rawToDate == "" {
		return RateFilter{Kind: FilterLatest}, nil
	}
	if rawDate == "" {
		return RateFilter{}, apperrors.NewValidationError("an end date requires a start date")
	}

	if strings.EqualFold(rawDate, "all") {
		return RateFilter{Kind: FilterAll}, nil
	}

	from, err := parseDateToken(rawDate)
	if err != nil {
		return RateFilter{}, err
	}

	if rawToDate != "" {
		to, err := parseDateToken(rawToDate)
		if err != nil {
			return RateFilter{}, err
		}
		if to.Before(from) {
			return RateFilter{}, fmt.Errorf("%w: end date must be after start date", apperrors.ErrInvalidRange)
		}
		return RateFilter{Kind: FilterRange, From: from, To: to}, nil
	}

	if from.Hour() == 0 && from.Minute() == 0 && from.Second() == 0 && from.Nanosecond() == 0 {
		return RateFilter{Kind: FilterDayBucket, From: from, To: from.Add(24 * time.Hour)}, nil
	}

	return RateFilter{Kind: FilterExactTimestamp, From: from}, nil
}

func parseDateToken(raw string) (time.Time, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, "_", " "))
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, cleaned, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidDate, raw)
}

// Description returns the human-readable form used in result titles and
// summaries.
func (f RateFilter) Description() string {
	switch f.Kind {
	case FilterAll:
		return "all available dates"
	case FilterDayBucket:
		return "on " + f.From.Format("2006-01-02")
	case FilterExactTimestamp:
		return "at " + f.From.Format("2006-01-02 15:04:05")
	case FilterRange:
		return fmt.Sprintf("from %s to %s", f.From.Format("2006-01-02 15:04"), f.To.Format("2006-01-02 15:04"))
	default:
		return "latest"
	}
}
