package basket

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// Miner enumerates frequent itemsets with the Apriori level-wise search.
type Miner struct {
	logger *slog.Logger
}

// NewMiner creates a new frequent itemset miner
func NewMiner(logger *slog.Logger) *Miner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Miner{logger: logger}
}

// Mine returns every itemset whose support meets minSupport (inclusive).
// Candidates at level k are generated only by extending surviving (k-1)
// itemsets, so no superset of a pruned itemset is ever counted; the
// anti-monotonicity of support makes that safe. Support comparisons use
// exact rationals; the float Support on each result is for display only.
//
// A threshold outside (0,1] is a ThresholdError. A threshold too high
// for even the singletons yields an empty result, which is a valid
// outcome rather than an error.
func (m *Miner) Mine(ctx context.Context, b *Basket, minSupport float64) ([]Itemset, error) {
	if err := validateThreshold("min support", minSupport); err != nil {
		return nil, err
	}

	start := time.Now()
	total := b.NumOrders()
	m.logger.InfoContext(ctx, "starting frequent itemset mining",
		"orders", total,
		"items", b.NumItems(),
		"min_support", minSupport,
	)

	if total == 0 || b.NumItems() == 0 {
		return nil, nil
	}

	minRat := new(big.Rat).SetFloat64(minSupport)
	meets := func(count int) bool {
		return new(big.Rat).SetFrac64(int64(count), int64(total)).Cmp(minRat) >= 0
	}

	var result []Itemset
	frequent := make(map[string]bool)

	// Level 1: singleton itemsets over every column.
	var level [][]int
	for col := 0; col < b.NumItems(); col++ {
		count := m.countSupport(b, []int{col})
		if meets(count) {
			cols := []int{col}
			level = append(level, cols)
			frequent[colsKey(cols)] = true
			result = append(result, m.toItemset(b, cols, count, total))
		}
	}

	size := 1
	for len(level) > 0 {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("itemset mining cancelled at level %d: %w", size, ctx.Err())
		default:
		}

		m.logger.DebugContext(ctx, "mined itemset level",
			"size", size,
			"survivors", len(level),
		)

		size++
		var next [][]int
		for i := 0; i < len(level); i++ {
			for j := i + 1; j < len(level); j++ {
				candidate, ok := joinItemsets(level[i], level[j])
				if !ok {
					// Level is lexicographically ordered, so once the
					// shared prefix diverges no later j can join either.
					break
				}
				if !m.allSubsetsFrequent(candidate, frequent) {
					continue
				}
				count := m.countSupport(b, candidate)
				if meets(count) {
					next = append(next, candidate)
					frequent[colsKey(candidate)] = true
					result = append(result, m.toItemset(b, candidate, count, total))
				}
			}
		}
		level = next
	}

	m.logger.InfoContext(ctx, "frequent itemset mining completed",
		"itemsets", len(result),
		"max_size", size-1,
		"duration", time.Since(start),
	)
	return result, nil
}

// countSupport counts baskets containing every column in cols.
func (m *Miner) countSupport(b *Basket, cols []int) int {
	count := 0
	for _, row := range b.Presence {
		contained := true
		for _, c := range cols {
			if !row[c] {
				contained = false
				break
			}
		}
		if contained {
			count++
		}
	}
	return count
}

// allSubsetsFrequent checks the Apriori prune condition: every (k-1)
// subset of the candidate must itself have survived.
func (m *Miner) allSubsetsFrequent(candidate []int, frequent map[string]bool) bool {
	if len(candidate) <= 2 {
		// Both subsets are the joined parents, already known frequent.
		return true
	}
	subset := make([]int, len(candidate)-1)
	for skip := range candidate {
		subset = subset[:0]
		for i, c := range candidate {
			if i != skip {
				subset = append(subset, c)
			}
		}
		if !frequent[colsKey(subset)] {
			return false
		}
	}
	return true
}

func (m *Miner) toItemset(b *Basket, cols []int, count, total int) Itemset {
	items := make([]string, len(cols))
	for i, c := range cols {
		items[i] = b.Items[c]
	}
	return Itemset{
		Items:   items,
		Count:   count,
		Support: float64(count) / float64(total),
	}
}

// joinItemsets merges two sorted k-itemsets sharing their first k-1
// columns into a (k+1)-candidate. Reports false when the prefixes differ.
func joinItemsets(a, b []int) ([]int, bool) {
	k := len(a)
	for i := 0; i < k-1; i++ {
		if a[i] != b[i] {
			return nil, false
		}
	}
	if a[k-1] >= b[k-1] {
		return nil, false
	}
	candidate := make([]int, k+1)
	copy(candidate, a)
	candidate[k] = b[k-1]
	return candidate, true
}

// colsKey builds a canonical key for a sorted column index set.
func colsKey(cols []int) string {
	var sb strings.Builder
	for i, c := range cols {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(c))
	}
	return sb.String()
}
