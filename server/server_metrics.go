package server

import (
	"time"

	"github.com/armon/go-metrics"
	"github.com/armon/go-metrics/prometheus"
)

func (s *Server) setupTelemetry() error {
	inm := metrics.NewInmemSink(10*time.Second, time.Minute)
	metrics.DefaultInmemSignal(inm)

	sinks := metrics.FanoutSink{inm}

	if s.config.Telemetry != nil && s.config.Telemetry.Prometheus {
		promSink, err := prometheus.NewPrometheusSinkFrom(prometheus.PrometheusOpts{
			Name:       "edge_modules_prometheus_sink",
			Expiration: 0,
		})
		if err != nil {
			return err
		}

		sinks = append(sinks, promSink)
	}

	metricsConf := metrics.DefaultConfig("edge_modules")
	metricsConf.EnableHostname = false
	metricsConf.EnableRuntimeMetrics = false

	_, err := metrics.NewGlobal(metricsConf, sinks)

	return err
}
