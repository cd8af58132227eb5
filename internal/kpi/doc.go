// Package kpi sums stoppage minutes and occurrences by category and
// reconciles them against an independently precomputed summary: each minute
// total prefers the summary value when it is positive and falls back to the
// raw event sum otherwise.
package kpi
