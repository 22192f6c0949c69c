package fraud

import (
	"testing"

	"github.com/shenikar/attendance_verification_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDetector() *Detector {
	return NewDetector(DetectorConfig{
		MinFaceSizePx:      120,
		DarkBrightness:     30,
		BrightBrightness:   220,
		UniformLightingStd: 15,
		MinMotionAvg:       2.0,
		LoopMotionStd:      0.5,
		LoopMotionAvg:      5.0,
		MinMotionFrames:    10,
	})
}

func normalMetrics() FrameMetrics {
	return FrameMetrics{
		FaceCount:      1,
		FaceWidth:      200,
		FaceHeight:     240,
		MeanBrightness: 128,
		StdBrightness:  45,
		MotionAvg:      6.5,
		MotionStd:      2.8,
		FrameCount:     15,
	}
}

func TestAggregate_NoSignals(t *testing.T) {
	verdict := Aggregate(nil)

	assert.Equal(t, models.SeverityNone, verdict.Severity)
	assert.Empty(t, verdict.Contributing)
}

func TestAggregate_MaxRule(t *testing.T) {
	// Уровень - максимум по сигналам, слабые сигналы не суммируются
	verdict := Aggregate([]Signal{
		{Type: SignalFaceTooSmall, Confidence: 0.6},
		{Type: SignalLightingAnomaly, Confidence: 0.7},
	})

	assert.Equal(t, models.SeverityMedium, verdict.Severity)
	assert.Len(t, verdict.Contributing, 2)
}

func TestAggregate_SingleHighSignalDominates(t *testing.T) {
	verdict := Aggregate([]Signal{
		{Type: SignalFaceTooSmall, Confidence: 0.6},
		{Type: SignalPhotoScreen, Confidence: 0.9},
	})

	assert.Equal(t, models.SeverityHigh, verdict.Severity)
}

func TestAggregate_SeverityTable(t *testing.T) {
	cases := []struct {
		signal   SignalType
		expected models.FraudSeverity
	}{
		{SignalPhotoScreen, models.SeverityHigh},
		{SignalLivenessSpoof, models.SeverityHigh},
		{SignalMultipleFaces, models.SeverityHigh},
		{SignalMotionAnomaly, models.SeverityHigh},
		{SignalLightingAnomaly, models.SeverityMedium},
		{SignalFaceTooSmall, models.SeverityLow},
	}

	for _, tc := range cases {
		verdict := Aggregate([]Signal{{Type: tc.signal, Confidence: 1.0}})
		assert.Equal(t, tc.expected, verdict.Severity, string(tc.signal))
	}
}

func TestInspect_CleanMetrics(t *testing.T) {
	signals := testDetector().Inspect(normalMetrics())

	assert.Empty(t, signals)
}

func TestInspect_MultipleFaces(t *testing.T) {
	m := normalMetrics()
	m.FaceCount = 3

	signals := testDetector().Inspect(m)

	require.Len(t, signals, 1)
	assert.Equal(t, SignalMultipleFaces, signals[0].Type)
	assert.Equal(t, 1.0, signals[0].Confidence)
}

func TestInspect_FaceTooSmall(t *testing.T) {
	m := normalMetrics()
	m.FaceWidth = 80
	m.FaceHeight = 100

	signals := testDetector().Inspect(m)

	require.Len(t, signals, 1)
	assert.Equal(t, SignalFaceTooSmall, signals[0].Type)
}

func TestInspect_DarkLighting(t *testing.T) {
	m := normalMetrics()
	m.MeanBrightness = 12

	signals := testDetector().Inspect(m)

	require.Len(t, signals, 1)
	assert.Equal(t, SignalLightingAnomaly, signals[0].Type)
}

func TestInspect_UniformLighting(t *testing.T) {
	// Экран дает неестественно равномерную подсветку
	m := normalMetrics()
	m.StdBrightness = 8

	signals := testDetector().Inspect(m)

	require.Len(t, signals, 1)
	assert.Equal(t, SignalLightingAnomaly, signals[0].Type)
}

func TestInspect_StaticPhoto(t *testing.T) {
	m := normalMetrics()
	m.MotionAvg = 0.4

	signals := testDetector().Inspect(m)

	require.Len(t, signals, 1)
	assert.Equal(t, SignalMotionAnomaly, signals[0].Type)
}

func TestInspect_LoopedVideo(t *testing.T) {
	// Заметная амплитуда при подозрительно ровном движении
	m := normalMetrics()
	m.MotionAvg = 7.0
	m.MotionStd = 0.2

	signals := testDetector().Inspect(m)

	require.Len(t, signals, 1)
	assert.Equal(t, SignalMotionAnomaly, signals[0].Type)
}

func TestInspect_MotionSkippedOnFewFrames(t *testing.T) {
	// Меньше минимума кадров - анализ движения не выполняется
	m := normalMetrics()
	m.MotionAvg = 0.1
	m.FrameCount = 4

	signals := testDetector().Inspect(m)

	assert.Empty(t, signals)
}
