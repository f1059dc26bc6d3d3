// ABOUTME: Prometheus counters for portal API activity
// ABOUTME: Tracks logins, navigation actions, and menu edits

package portal

import (
	"github.com/prometheus/client_golang/prometheus"
)

// apiMetrics holds the counter vectors registered for one portal instance.
type apiMetrics struct {
	logins      *prometheus.CounterVec
	navigations *prometheus.CounterVec
	menuEdits   *prometheus.CounterVec
	decisions   *prometheus.CounterVec
}

func newAPIMetrics(reg prometheus.Registerer) *apiMetrics {
	m := &apiMetrics{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "horizon_logins_total",
			Help: "Login attempts by result.",
		}, []string{"result"}),
		navigations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "horizon_navigations_total",
			Help: "Navigation session operations by action.",
		}, []string{"action"}),
		menuEdits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "horizon_menu_edits_total",
			Help: "Menu tree edits by operation.",
		}, []string{"op"}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "horizon_request_decisions_total",
			Help: "Request approvals and rejections by status.",
		}, []string{"status"}),
	}
	reg.MustRegister(m.logins, m.navigations, m.menuEdits, m.decisions)
	return m
}
