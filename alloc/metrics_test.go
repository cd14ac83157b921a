package alloc

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Instrument(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)
	p := m.Instrument(Limit(100))

	p.Alloc(40)
	p.Realloc(40, 80)
	p.Alloc(50)
	p.Free(80)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"alloc requests", testutil.ToFloat64(m.requests.WithLabelValues("alloc")), 2},
		{"realloc requests", testutil.ToFloat64(m.requests.WithLabelValues("realloc")), 1},
		{"free requests", testutil.ToFloat64(m.requests.WithLabelValues("free")), 1},
		{"alloc failures", testutil.ToFloat64(m.failures.WithLabelValues("alloc")), 1},
		{"alloc bytes", testutil.ToFloat64(m.bytes.WithLabelValues("alloc")), 40},
		{"realloc bytes", testutil.ToFloat64(m.bytes.WithLabelValues("realloc")), 40},
		{"bytes in use", testutil.ToFloat64(m.inUse), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}
