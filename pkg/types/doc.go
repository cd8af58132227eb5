// Package types defines the record types handed to the shiftlens engine by a
// record source. These are the canonical in-memory representations of shift,
// production, quality-loss and stoppage data, separate from any storage or
// wire format. Soft-deleted rows carry Deleted=true and are expected to be
// filtered out before they reach the aggregators.
package types
