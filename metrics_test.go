package purfectrender

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsPrefersFontDeclared(t *testing.T) {
	s := newRecordSurface()
	s.metrics = TextMetrics{
		Width:                    8.2,
		FontBoundingBoxAscent:    12.1,
		FontBoundingBoxDescent:   3.4,
		ActualBoundingBoxAscent:  9,
		ActualBoundingBoxDescent: 1,
	}
	m := measureFont(s, "monospace", 15)
	assert.Equal(t, 9, m.Width)
	assert.Equal(t, 16, m.Height) // ceil(12.1 + 3.4)
	assert.Equal(t, 13, m.Baseline)
}

func TestMetricsFallsBackToActualBounds(t *testing.T) {
	s := newRecordSurface()
	s.metrics = TextMetrics{
		Width:                    7,
		ActualBoundingBoxAscent:  10,
		ActualBoundingBoxDescent: 2,
	}
	m := measureFont(s, "monospace", 15)
	assert.Equal(t, 7, m.Width)
	assert.Equal(t, 12, m.Height)
	assert.Equal(t, 10, m.Baseline)
}

func TestMetricsFallsBackToFontSizeRatio(t *testing.T) {
	s := newRecordSurface()
	s.metrics = TextMetrics{Width: 9}
	m := measureFont(s, "monospace", 20)
	assert.Equal(t, 9, m.Width)
	assert.Equal(t, 20, m.Height) // 0.8*20 + 0.2*20
	assert.Equal(t, 16, m.Baseline)
}

func TestMetricsNeverZero(t *testing.T) {
	s := newRecordSurface()
	s.metrics = TextMetrics{}
	m := measureFont(s, "monospace", 0)
	assert.GreaterOrEqual(t, m.Width, 1)
	assert.GreaterOrEqual(t, m.Height, 1)
}
