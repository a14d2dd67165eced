// Package observability records what each export run did to the board as
// JSON Lines events and derives run-history metrics from that log on demand.
package observability
