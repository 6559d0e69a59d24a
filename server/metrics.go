/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Server metrics
 */

package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/OpenPrinting/ippcodec"
)

// Metrics contains Prometheus metrics of the IPP server
//
// A nil *Metrics is valid and records nothing
type Metrics struct {
	Requests        *prometheus.CounterVec   // By operation
	Responses       *prometheus.CounterVec   // By status
	DecodeErrors    prometheus.Counter       // Undecodable requests
	PayloadBytes    *prometheus.CounterVec   // By direction
	RequestDuration *prometheus.HistogramVec // By operation
}

// NewMetrics creates and registers server metrics with
// the provided registerer
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ipp_requests_total",
			Help: "Total number of IPP requests, by operation",
		}, []string{"operation"}),
		Responses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ipp_responses_total",
			Help: "Total number of IPP responses, by status",
		}, []string{"status"}),
		DecodeErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "ipp_decode_errors_total",
			Help: "Total number of requests that failed to decode",
		}),
		PayloadBytes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ipp_payload_bytes_total",
			Help: "Total number of document bytes, by direction",
		}, []string{"direction"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ipp_request_duration_seconds",
			Help:    "IPP request processing time, by operation",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

// recordRequest records a decoded request
func (m *Metrics) recordRequest(op ippcodec.Op) {
	if m != nil {
		m.Requests.WithLabelValues(op.String()).Inc()
	}
}

// recordDecodeError records a request that failed to decode
func (m *Metrics) recordDecodeError() {
	if m != nil {
		m.DecodeErrors.Inc()
	}
}

// recordResponse records a response and the request duration
func (m *Metrics) recordResponse(op ippcodec.Op, status ippcodec.Status,
	duration time.Duration) {

	if m != nil {
		m.Responses.WithLabelValues(status.String()).Inc()
		m.RequestDuration.WithLabelValues(op.String()).
			Observe(duration.Seconds())
	}
}

// recordPayload records document bytes received or sent
func (m *Metrics) recordPayload(direction string, n int64) {
	if m != nil && n > 0 {
		m.PayloadBytes.WithLabelValues(direction).Add(float64(n))
	}
}
