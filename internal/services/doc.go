// Package services contains the application services sitting between
// the HTTP transport and the computation packages.
//
// AnalysisService orchestrates a full analysis run: loading and joining
// the order tables, mining frequent itemsets and association rules from
// market baskets, and reconciling monthly sales against targets. The
// two branches are independent and run concurrently. The most recent
// result is retained in memory for the read endpoints.
package services
