/*
Package metrics exposes Prometheus counters for the ballot operations.

	ballot_operations_total{operation, outcome}
	ballot_operation_duration_seconds{operation}
	ballot_votes_cast_total{position}

Outcomes are ok, invalid, conflict, unavailable and error.
Served at GET /metrics.
*/
package metrics
