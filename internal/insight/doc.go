// Package insight derives heuristic signals from ledger analytics:
// spending forecasts, anomaly flags, spending personality, group health,
// settlement advice and savings tips.
//
// Every function is pure and consumes either the raw expense list or the
// outputs of the calculator package; none of them access storage.
package insight
