package summary

import (
	"slices"

	"github.com/shopspring/decimal"
)

// DefaultLimit is the leaderboard length used by the dashboard.
const DefaultLimit = 10

// Entry is one row of a top-N ranking.
type Entry struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// RankBy groups items by key, sums value per group and returns the groups
// sorted by descending total. Ties keep first-seen order. Empty keys are
// skipped; limit <= 0 disables truncation.
func RankBy[T any](items []T, key func(T) string, value func(T) decimal.Decimal, limit int) []Entry {
	index := make(map[string]int)
	entries := []Entry{}

	for _, it := range items {
		k := key(it)
		if k == "" {
			continue
		}
		i, ok := index[k]
		if !ok {
			i = len(entries)
			index[k] = i
			entries = append(entries, Entry{Name: k, Value: decimal.Zero})
		}
		entries[i].Value = entries[i].Value.Add(value(it))
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		return b.Value.Cmp(a.Value)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// contribution is one (key, value) pair flattened out of a ticket.
type contribution struct {
	key   string
	value decimal.Decimal
}

func contributionKey(c contribution) string            { return c.key }
func contributionValue(c contribution) decimal.Decimal { return c.value }

func rankContributions(cs []contribution, limit int) []Entry {
	return RankBy(cs, contributionKey, contributionValue, limit)
}

// renamed replaces id keys with display names after ranking so that two
// records sharing a name are never merged.
func renamed(entries []Entry, name func(string) string) []Entry {
	for i := range entries {
		entries[i].Name = name(entries[i].Name)
	}
	return entries
}
