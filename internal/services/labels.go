package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"pieceJobBack/internal/models"
)

// timeAgo renders t relative to now the way listings display it.
func timeAgo(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute") + " ago"
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour") + " ago"
	default:
		return plural(int(d/(24*time.Hour)), "day") + " ago"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// parseAmount reads a monetary string such as "R950" or "R1 200.50".
// A leading currency code or symbol and thousands separators are ignored.
func parseAmount(s string) (float64, error) {
	v := strings.TrimLeftFunc(strings.TrimSpace(s), func(r rune) bool {
		return unicode.IsLetter(r) || unicode.Is(unicode.Sc, r) || unicode.IsSpace(r)
	})
	v = strings.NewReplacer(",", "", " ", "", "\u00a0", "").Replace(v)
	if v == "" {
		return 0, models.Invalid("amount", "must be a number")
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, models.Invalid("amount", "must be a number")
	}
	if f <= 0 {
		return 0, models.Invalid("amount", "must be positive")
	}
	return f, nil
}

func labelJob(job *models.Job, now time.Time) {
	job.TimePosted = timeAgo(job.PostedAt, now)
	for i := range job.Bids {
		job.Bids[i].TimeSubmitted = timeAgo(job.Bids[i].SubmittedAt, now)
	}
}

func clock(now func() time.Time) time.Time {
	if now != nil {
		return now()
	}
	return time.Now()
}
