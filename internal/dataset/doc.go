// Package dataset provides the tabular input layer for the analysis
// pipeline: a minimal column-contract table type, CSV loaders for the
// three source files, the order-header/order-line join, and conversion
// of joined rows into typed transaction records.
//
// Tables are read-only once constructed. Every derivation returns a new
// table so no stage observes another stage's mutations.
package dataset
