package service

import "time"

// Options tunes the services built by NewService.
type Options struct {
	Retention time.Duration // audit rows older than this are pruned; zero disables pruning
}

// LogFilter supports audit trail filtering by time range and algorithm.
type LogFilter struct {
	From      time.Time // inclusive; zero means no lower bound
	To        time.Time // inclusive; zero means no upper bound
	Algorithm string    // "", "IV", "Basal" or a response label such as "Basal Bolus"
}
