// Package normalize joins raw stoppage records with their shift instance and
// catalog entry and produces the canonical Event consumed by every
// aggregator. Rows whose shift is not in scope are dropped and reported in
// Output.Orphans; missing text falls back to fixed labels.
package normalize
