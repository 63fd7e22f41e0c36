package basket

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailcli/internal/dataset"
)

func txn(order, subCategory string, quantity int) dataset.Transaction {
	return dataset.Transaction{
		OrderID:     order,
		Category:    "Electronics",
		SubCategory: subCategory,
		Quantity:    quantity,
		Amount:      100,
	}
}

func supportOf(t *testing.T, itemsets []Itemset, items ...string) Itemset {
	t.Helper()
	key := strings.Join(items, itemSep)
	for _, is := range itemsets {
		if is.Key() == key {
			return is
		}
	}
	t.Fatalf("itemset %v not found in %v", items, itemsets)
	return Itemset{}
}

func TestMine_TwoOrderScenario(t *testing.T) {
	// O1 buys Phone and Case, O2 buys only Phone.
	b := Encode([]dataset.Transaction{
		txn("O1", "Phone", 1),
		txn("O1", "Case", 2),
		txn("O2", "Phone", 1),
	})

	miner := NewMiner(nil)
	itemsets, err := miner.Mine(context.Background(), b, 0.5)
	require.NoError(t, err)
	require.Len(t, itemsets, 3)

	phone := supportOf(t, itemsets, "Phone")
	assert.Equal(t, 2, phone.Count)
	assert.InDelta(t, 1.0, phone.Support, 1e-12)

	caseOnly := supportOf(t, itemsets, "Case")
	assert.Equal(t, 1, caseOnly.Count)
	assert.InDelta(t, 0.5, caseOnly.Support, 1e-12)

	pair := supportOf(t, itemsets, "Case", "Phone")
	assert.Equal(t, 1, pair.Count)
	assert.InDelta(t, 0.5, pair.Support, 1e-12)
}

func TestMine_SupportBoundaryIsInclusive(t *testing.T) {
	// {Case} sits exactly at support 0.5; it must survive a 0.5 threshold
	// and vanish at anything above it.
	b := Encode([]dataset.Transaction{
		txn("O1", "Phone", 1),
		txn("O1", "Case", 1),
		txn("O2", "Phone", 1),
	})
	miner := NewMiner(nil)

	at, err := miner.Mine(context.Background(), b, 0.5)
	require.NoError(t, err)
	supportOf(t, at, "Case")

	above, err := miner.Mine(context.Background(), b, 0.51)
	require.NoError(t, err)
	for _, is := range above {
		assert.NotEqual(t, "Case", is.Key())
	}
}

func TestMine_MinSupportOne(t *testing.T) {
	b := Encode([]dataset.Transaction{
		txn("O1", "Phone", 1),
		txn("O1", "Case", 1),
		txn("O2", "Phone", 1),
		txn("O3", "Phone", 1),
	})

	itemsets, err := NewMiner(nil).Mine(context.Background(), b, 1.0)
	require.NoError(t, err)
	require.Len(t, itemsets, 1)
	assert.Equal(t, []string{"Phone"}, itemsets[0].Items)
	assert.Equal(t, 3, itemsets[0].Count)
}

func TestMine_ThresholdValidation(t *testing.T) {
	b := Encode([]dataset.Transaction{txn("O1", "Phone", 1)})
	miner := NewMiner(nil)

	tests := []struct {
		name  string
		value float64
	}{
		{"zero", 0},
		{"negative", -0.1},
		{"above one", 1.5},
		{"not a number", math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := miner.Mine(context.Background(), b, tt.value)
			var thresholdErr *ThresholdError
			require.ErrorAs(t, err, &thresholdErr)
			if math.IsNaN(tt.value) {
				assert.True(t, math.IsNaN(thresholdErr.Value))
			} else {
				assert.Equal(t, tt.value, thresholdErr.Value)
			}
		})
	}
}

func TestMine_EmptyBasket(t *testing.T) {
	itemsets, err := NewMiner(nil).Mine(context.Background(), Encode(nil), 0.1)
	require.NoError(t, err)
	assert.Empty(t, itemsets)
}

func TestMine_HighThresholdYieldsEmptyNotError(t *testing.T) {
	b := Encode([]dataset.Transaction{
		txn("O1", "Phone", 1),
		txn("O2", "Case", 1),
	})
	itemsets, err := NewMiner(nil).Mine(context.Background(), b, 1.0)
	require.NoError(t, err)
	assert.Empty(t, itemsets)
}

func TestMine_AntiMonotonicity(t *testing.T) {
	b := Encode([]dataset.Transaction{
		txn("O1", "Phone", 1), txn("O1", "Case", 1), txn("O1", "Charger", 1),
		txn("O2", "Phone", 1), txn("O2", "Case", 1),
		txn("O3", "Phone", 1), txn("O3", "Charger", 1),
		txn("O4", "Phone", 1), txn("O4", "Case", 1), txn("O4", "Charger", 1),
	})

	itemsets, err := NewMiner(nil).Mine(context.Background(), b, 0.25)
	require.NoError(t, err)

	bySupport := make(map[string]float64)
	for _, is := range itemsets {
		bySupport[is.Key()] = is.Support
	}

	// Every proper subset of a frequent itemset must itself be frequent
	// with at least the same support.
	for _, is := range itemsets {
		k := len(is.Items)
		if k < 2 {
			continue
		}
		for mask := 1; mask < (1<<k)-1; mask++ {
			var subset []string
			for i, item := range is.Items {
				if mask&(1<<i) != 0 {
					subset = append(subset, item)
				}
			}
			sup, ok := bySupport[strings.Join(subset, itemSep)]
			require.True(t, ok, "subset %v of %v missing", subset, is.Items)
			assert.GreaterOrEqual(t, sup, is.Support)
		}
	}
}

func TestMine_Deterministic(t *testing.T) {
	txns := []dataset.Transaction{
		txn("O1", "Phone", 1), txn("O1", "Case", 1),
		txn("O2", "Phone", 1), txn("O2", "Charger", 1),
		txn("O3", "Case", 1), txn("O3", "Charger", 1),
	}
	miner := NewMiner(nil)

	first, err := miner.Mine(context.Background(), Encode(txns), 0.3)
	require.NoError(t, err)
	second, err := miner.Mine(context.Background(), Encode(txns), 0.3)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMine_Cancelled(t *testing.T) {
	b := Encode([]dataset.Transaction{
		txn("O1", "Phone", 1),
		txn("O2", "Phone", 1),
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMiner(nil).Mine(ctx, b, 0.5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
