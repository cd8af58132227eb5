// Package store caches computed reports in memory, keyed by query scope.
//
// Reports are pure functions of the record snapshot and policy, so an entry
// stays valid until its TTL elapses or Reset is called after the records or
// the configuration change. Run evicts expired entries in the background.
package store
