// Package rollup folds flat summary rows into a Line → Shift → Product tree.
//
// Within a line, rows without a shift instance are noise once any real shift
// exists and are dropped; when none exists they collapse into one synthetic
// node whose DaysWithoutEntry counts the collapsed (line, date) groups.
// Merged nodes take a single status by priority: Open > Closed > Cancelled,
// else the first raw status seen.
package rollup
