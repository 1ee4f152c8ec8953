package services

import (
	"time"
)

// noopMetrics satisfies MetricsRecorderInterface without touching the
// global prometheus registry, which only tolerates one registration.
type noopMetrics struct{}

func (noopMetrics) IncrementCounter(string, map[string]string)     {}
func (noopMetrics) RecordProcessingTime(string, time.Duration)     {}
func (noopMetrics) RecordGauge(string, float64, map[string]string) {}
