// Package source reads record snapshots from disk and scopes them to a
// query. It is the record-source collaborator of the binaries: the analytics
// packages never touch files themselves.
package source
