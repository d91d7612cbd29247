package main

import "github.com/prometheus/client_golang/prometheus"

var (
	inferenceTimeMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "yolo_inference_time_ms",
		Help:    "Wall-clock time of a single detect call, in milliseconds.",
		Buckets: prometheus.ExponentialBuckets(5, 2, 10),
	})

	detectRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "yolo_detect_requests_total",
		Help: "Detect requests by outcome.",
	}, []string{"endpoint", "status"})

	detectionsReturnedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "yolo_detections_returned_total",
		Help: "Total individual detections returned across all requests.",
	})
)

func init() {
	prometheus.MustRegister(inferenceTimeMs, detectRequestsTotal, detectionsReturnedTotal)
}
