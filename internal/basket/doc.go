// Package basket implements the market-basket branch of the analysis
// pipeline: encoding per-order sub-category presence, Apriori frequent
// itemset mining, and association rule generation scored by support,
// confidence and lift.
//
// # Components
//
//   - encoder.go: order x sub-category presence matrix from transactions
//   - apriori.go: level-wise frequent itemset search with subset pruning
//   - rules.go: antecedent/consequent partitioning and rule scoring
//   - summary.go: category, geographic and profit rollup tables
//
// Support thresholds are compared as exact rationals (basket count over
// total baskets) rather than floats, so itemsets sitting exactly on the
// threshold are admitted deterministically.
package basket
