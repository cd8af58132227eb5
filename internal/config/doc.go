// Package config loads the shiftlens configuration from a YAML file.
//
// Config sections:
//   - Policy.ShiftAvailableHours   nominal shift length in hours (default 12)
//   - Policy.BigStoppageMinutes    Big/Small threshold in minutes (default 10)
//   - Policy.ParetoLimit           Pareto top-N (default 12)
//   - Policy.DimensionLimit        dimensional rollup top-N (default 8)
//   - Policy.CriticalCumulativePct cumulative % bound of the critical tier (default 50)
//   - Policy.HighCumulativePct     cumulative % bound of the high tier (default 80)
//   - Server.HTTPPort              port for the REST API and /metrics (default 8080)
//   - Server.RecordsPath           snapshot file served by the API
//   - Server.CacheTTL              lifetime of a cached report (default 5m)
//   - Server.Auth                  "apikey" or "none"; key read from Auth.KeyEnv
//   - Alerts                       threshold rules and webhook targets
//
// Load(path) applies defaults before unmarshalling, then validates. Watch
// reloads the file on change.
package config
