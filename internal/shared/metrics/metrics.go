package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	extractionProcessedTotal atomic.Uint64
	extractionSkippedTotal   atomic.Uint64
	extractionFailedTotal    atomic.Uint64
	llmCallsTotal            atomic.Uint64
	llmFailedTotal           atomic.Uint64

	extractionDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncExtractionProcessed increments the processed-documents counter.
func IncExtractionProcessed() {
	extractionProcessedTotal.Add(1)
}

// IncExtractionSkipped increments the skipped-documents counter.
func IncExtractionSkipped() {
	extractionSkippedTotal.Add(1)
}

// IncExtractionFailed increments the failed-documents counter.
func IncExtractionFailed() {
	extractionFailedTotal.Add(1)
}

// IncLLMCall increments the model-call counter.
func IncLLMCall() {
	llmCallsTotal.Add(1)
}

// IncLLMFailed increments the failed model-call counter.
func IncLLMFailed() {
	llmFailedTotal.Add(1)
}

// ObserveExtractionDurationMs records a per-document extraction duration in milliseconds.
func ObserveExtractionDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	extractionDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "extraction_processed_total", "Total documents extracted", extractionProcessedTotal.Load())
	writeCounter(&buf, "extraction_skipped_total", "Total documents skipped", extractionSkippedTotal.Load())
	writeCounter(&buf, "extraction_failed_total", "Total documents failed", extractionFailedTotal.Load())
	writeCounter(&buf, "llm_calls_total", "Total language model calls", llmCallsTotal.Load())
	writeCounter(&buf, "llm_failed_total", "Total failed language model calls", llmFailedTotal.Load())
	writeHistogram(&buf, "extraction_duration_ms", "Per-document extraction duration in milliseconds", extractionDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
