package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// BridgeMetrics captures the observable counters for the bridge state
// machine: proposal creation, attestation activity, approval outcomes, and
// authority-set rotations.
type BridgeMetrics struct {
	proposalsCreated   *prometheus.CounterVec
	attestations       *prometheus.CounterVec
	approvals          *prometheus.CounterVec
	burnFailures       prometheus.Counter
	authorityRotations prometheus.Counter
}

var (
	bridgeMetricsOnce sync.Once
	bridgeRegistry    *BridgeMetrics
)

// BridgeModuleMetrics returns the lazily-initialised bridge metrics registry.
func BridgeModuleMetrics() *BridgeMetrics {
	bridgeMetricsOnce.Do(func() {
		bridgeRegistry = &BridgeMetrics{
			proposalsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "nhb",
				Subsystem: "bridge",
				Name:      "proposals_created_total",
				Help:      "Total deposit and withdrawal proposals created, by kind.",
			}, []string{"kind"}),
			attestations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "nhb",
				Subsystem: "bridge",
				Name:      "attestations_total",
				Help:      "Total authority attestations accepted, by kind.",
			}, []string{"kind"}),
			approvals: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "nhb",
				Subsystem: "bridge",
				Name:      "approvals_total",
				Help:      "Total proposals that crossed the super-majority threshold, by kind.",
			}, []string{"kind"}),
			burnFailures: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "nhb",
				Subsystem: "bridge",
				Name:      "withdraw_burn_failures_total",
				Help:      "Total withdrawal approvals where the ledger burn failed.",
			}),
			authorityRotations: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "nhb",
				Subsystem: "bridge",
				Name:      "authority_rotations_total",
				Help:      "Total authority-set rotations applied in response to a session change.",
			}),
		}
		prometheus.MustRegister(
			bridgeRegistry.proposalsCreated,
			bridgeRegistry.attestations,
			bridgeRegistry.approvals,
			bridgeRegistry.burnFailures,
			bridgeRegistry.authorityRotations,
		)
	})
	return bridgeRegistry
}

// RecordProposalCreated increments the creation counter for kind ("deposit"
// or "withdraw").
func (m *BridgeMetrics) RecordProposalCreated(kind string) {
	if m == nil {
		return
	}
	m.proposalsCreated.WithLabelValues(kind).Inc()
}

// RecordAttestation increments the attestation counter for kind.
func (m *BridgeMetrics) RecordAttestation(kind string) {
	if m == nil {
		return
	}
	m.attestations.WithLabelValues(kind).Inc()
}

// RecordApproval increments the approval counter for kind.
func (m *BridgeMetrics) RecordApproval(kind string) {
	if m == nil {
		return
	}
	m.approvals.WithLabelValues(kind).Inc()
}

// RecordBurnFailure increments the withdrawal burn-failure counter.
func (m *BridgeMetrics) RecordBurnFailure() {
	if m == nil {
		return
	}
	m.burnFailures.Inc()
}

// RecordAuthorityRotation increments the authority-rotation counter.
func (m *BridgeMetrics) RecordAuthorityRotation() {
	if m == nil {
		return
	}
	m.authorityRotations.Inc()
}
