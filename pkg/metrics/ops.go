package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// OpsMetrics records outcomes for the domain operations worth watching in
// production: coupon validations and activation claims.
type OpsMetrics struct {
	couponValidations *prometheus.CounterVec
	claimAttempts     *prometheus.CounterVec
}

// NewOpsMetrics registers the operation metrics on the provided registerer.
func NewOpsMetrics(reg prometheus.Registerer) *OpsMetrics {
	if reg == nil {
		return &OpsMetrics{}
	}
	couponValidations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "coupon_validations_total",
		Help: "Coupon validation attempts by outcome.",
	}, []string{"outcome"})
	claimAttempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "activation_claims_total",
		Help: "Activation claim attempts by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(couponValidations, claimAttempts)
	return &OpsMetrics{
		couponValidations: couponValidations,
		claimAttempts:     claimAttempts,
	}
}

// IncCouponValidation increments the coupon validation counter for the outcome.
func (m *OpsMetrics) IncCouponValidation(outcome string) {
	if m == nil || m.couponValidations == nil {
		return
	}
	m.couponValidations.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncClaimAttempt increments the claim attempt counter for the outcome.
func (m *OpsMetrics) IncClaimAttempt(outcome string) {
	if m == nil || m.claimAttempts == nil {
		return
	}
	m.claimAttempts.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "unknown"
	}
	return strings.ReplaceAll(value, " ", "_")
}
