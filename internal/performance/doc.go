// Package performance implements the sales-performance branch of the
// analysis pipeline: normalizing heterogeneous order dates into month
// buckets and reconciling actual monthly sales per category against the
// target table, producing achievement and variance figures.
package performance
