// Package pareto ranks Big stoppage causes by lost minutes and computes the
// cumulative-percentage curve used for ABC prioritisation. Percentages are
// always taken over the full set of causes; the limit only trims the rows
// returned.
package pareto
