// Package priority turns Pareto rows into an ordered action list: each cause
// gets a tier (Critical, High, Medium) from its cumulative percentage and a
// deterministic recommendation from its average duration and recurrence.
package priority
