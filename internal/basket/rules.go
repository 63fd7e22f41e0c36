package basket

import (
	"fmt"
	"sort"
	"strings"
)

// DeriveRules generates association rules from frequent itemsets. Every
// itemset of size >= 2 is partitioned into each of its non-empty proper
// antecedent/consequent splits; singleton itemsets cannot split and are
// skipped. Confidence and lift come from the supports already mined;
// the anti-monotonicity invariant guarantees both sides of every split
// are themselves frequent, so a missing lookup indicates corrupt input.
//
// Rules keep their generation order, and the Top* helpers sort stably,
// so equal scores rank by insertion order deterministically.
func DeriveRules(itemsets []Itemset, minConfidence float64) ([]Rule, error) {
	if err := validateThreshold("min confidence", minConfidence); err != nil {
		return nil, err
	}

	supports := make(map[string]Itemset, len(itemsets))
	for _, is := range itemsets {
		supports[is.Key()] = is
	}

	var rules []Rule
	for _, is := range itemsets {
		k := len(is.Items)
		if k < 2 {
			continue
		}

		// Bitmask enumeration of non-empty proper subsets; the mask
		// selects the antecedent, its complement the consequent.
		for mask := 1; mask < (1<<k)-1; mask++ {
			antecedent := make([]string, 0, k-1)
			consequent := make([]string, 0, k-1)
			for i, item := range is.Items {
				if mask&(1<<i) != 0 {
					antecedent = append(antecedent, item)
				} else {
					consequent = append(consequent, item)
				}
			}

			antSupport, ok := supports[strings.Join(antecedent, itemSep)]
			if !ok {
				return nil, fmt.Errorf("support for antecedent %v of %q was not mined", antecedent, is)
			}
			conSupport, ok := supports[strings.Join(consequent, itemSep)]
			if !ok {
				return nil, fmt.Errorf("support for consequent %v of %q was not mined", consequent, is)
			}

			confidence := float64(is.Count) / float64(antSupport.Count)
			if confidence < minConfidence {
				continue
			}
			rules = append(rules, Rule{
				Antecedent: antecedent,
				Consequent: consequent,
				Support:    is.Support,
				Confidence: confidence,
				Lift:       confidence / conSupport.Support,
			})
		}
	}
	return rules, nil
}

// TopBySupport returns the n highest-support rules, stably sorted so
// ties keep insertion order.
func TopBySupport(rules []Rule, n int) []Rule {
	ranked := make([]Rule, len(rules))
	copy(ranked, rules)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Support > ranked[j].Support
	})
	return truncate(ranked, n)
}

// TopByLift returns the n highest-lift rules, stably sorted so ties
// keep insertion order.
func TopByLift(rules []Rule, n int) []Rule {
	ranked := make([]Rule, len(rules))
	copy(ranked, rules)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Lift > ranked[j].Lift
	})
	return truncate(ranked, n)
}

func truncate(rules []Rule, n int) []Rule {
	if n < 0 || n >= len(rules) {
		return rules
	}
	return rules[:n]
}
