package geofence

import (
	"testing"
	"time"

	"github.com/shenikar/attendance_verification_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator() *Validator {
	return NewValidator(Config{
		MaxSpeedMPS:       50,
		MinAccuracyMeters: 1,
		MaxAccuracyMeters: 500,
	})
}

func testZone(radius int) *models.Zone {
	return &models.Zone{
		Name:         "Главный корпус",
		Latitude:     55.751244,
		Longitude:    37.618423,
		RadiusMeters: radius,
	}
}

func TestHaversine_SamePoint(t *testing.T) {
	p := models.Coordinate{Latitude: 55.751244, Longitude: 37.618423}
	assert.Zero(t, Haversine(p, p))
}

func TestHaversine_Symmetry(t *testing.T) {
	a := models.Coordinate{Latitude: 55.751244, Longitude: 37.618423}
	b := models.Coordinate{Latitude: 59.938784, Longitude: 30.314997}

	assert.InDelta(t, Haversine(a, b), Haversine(b, a), 1e-9)
}

func TestHaversine_KnownDistance(t *testing.T) {
	// Один градус широты - примерно 111.2 км
	a := models.Coordinate{Latitude: 55.0, Longitude: 37.0}
	b := models.Coordinate{Latitude: 56.0, Longitude: 37.0}

	assert.InDelta(t, 111195, Haversine(a, b), 100)
}

func TestValidate_InsideZone(t *testing.T) {
	// Подготовка
	v := newTestValidator()
	zone := testZone(100)
	reported := models.Coordinate{Latitude: 55.751300, Longitude: 37.618500, AccuracyMeters: 10}

	// Действие
	res := v.Validate(reported, time.Now(), zone, nil)

	// Проверки
	assert.True(t, res.Within)
	assert.False(t, res.SpoofSuspected)
	assert.Less(t, res.DistanceMeters, float64(zone.RadiusMeters))
	assert.Empty(t, res.FailureReason)
}

func TestValidate_OutsideZone(t *testing.T) {
	// Подготовка
	v := newTestValidator()
	zone := testZone(100)
	// Примерно 1.1 км к северу от центра зоны
	reported := models.Coordinate{Latitude: 55.761244, Longitude: 37.618423, AccuracyMeters: 10}

	// Действие
	res := v.Validate(reported, time.Now(), zone, nil)

	// Проверки
	assert.False(t, res.Within)
	assert.Equal(t, models.ReasonGeofenceOutOfRange, res.FailureReason)
	assert.Greater(t, res.DistanceMeters, float64(zone.RadiusMeters))
}

func TestValidate_AccuracyExceedsRadius_FailsClosed(t *testing.T) {
	// Подготовка: точка номинально в центре зоны, но точность GPS хуже
	// радиуса - доверять ей нельзя
	v := newTestValidator()
	zone := testZone(50)
	reported := models.Coordinate{Latitude: zone.Latitude, Longitude: zone.Longitude, AccuracyMeters: 120}

	// Действие
	res := v.Validate(reported, time.Now(), zone, nil)

	// Проверки
	assert.False(t, res.Within)
	assert.Equal(t, models.ReasonGeofenceLowAccuracy, res.FailureReason)
}

func TestValidate_Spoof_InvalidLatitude(t *testing.T) {
	v := newTestValidator()
	zone := testZone(100)
	reported := models.Coordinate{Latitude: 91.0, Longitude: 37.618423, AccuracyMeters: 10}

	res := v.Validate(reported, time.Now(), zone, nil)

	assert.False(t, res.Within)
	assert.True(t, res.SpoofSuspected)
	assert.Equal(t, models.ReasonGeofenceSpoofSuspected, res.FailureReason)
}

func TestValidate_Spoof_NullIsland(t *testing.T) {
	v := newTestValidator()
	zone := testZone(100)
	reported := models.Coordinate{Latitude: 0.0, Longitude: 0.0, AccuracyMeters: 10}

	res := v.Validate(reported, time.Now(), zone, nil)

	assert.True(t, res.SpoofSuspected)
	assert.Contains(t, res.Detail, "null island")
}

func TestValidate_Spoof_PerfectAccuracy(t *testing.T) {
	// Точность лучше метра у потребительского GPS не встречается
	v := newTestValidator()
	zone := testZone(100)
	reported := models.Coordinate{Latitude: zone.Latitude, Longitude: zone.Longitude, AccuracyMeters: 0.5}

	res := v.Validate(reported, time.Now(), zone, nil)

	assert.True(t, res.SpoofSuspected)
	assert.Equal(t, models.ReasonGeofenceSpoofSuspected, res.FailureReason)
}

func TestValidate_Spoof_PoorAccuracy(t *testing.T) {
	v := newTestValidator()
	zone := testZone(100)
	reported := models.Coordinate{Latitude: zone.Latitude, Longitude: zone.Longitude, AccuracyMeters: 600}

	res := v.Validate(reported, time.Now(), zone, nil)

	assert.True(t, res.SpoofSuspected)
}

func TestValidate_Spoof_BitIdenticalHistory(t *testing.T) {
	// Подготовка: две побитово совпадающие фиксации в истории
	v := newTestValidator()
	zone := testZone(100)
	reported := models.Coordinate{Latitude: 55.751300, Longitude: 37.618500, AccuracyMeters: 10}
	now := time.Now()
	history := []models.PositionFix{
		{Latitude: 55.751300, Longitude: 37.618500, ObservedAt: now.Add(-time.Hour)},
		{Latitude: 55.751300, Longitude: 37.618500, ObservedAt: now.Add(-2 * time.Hour)},
	}

	// Действие
	res := v.Validate(reported, now, zone, history)

	// Проверки
	assert.True(t, res.SpoofSuspected)
	assert.Contains(t, res.Detail, "bit-identical")
}

func TestValidate_Spoof_ImpliedSpeed(t *testing.T) {
	// Подготовка: последняя фиксация 10 секунд назад в ~111 км -
	// подразумеваемая скорость заведомо выше порога
	v := newTestValidator()
	zone := testZone(100)
	now := time.Now()
	reported := models.Coordinate{Latitude: 55.751300, Longitude: 37.618500, AccuracyMeters: 10}
	history := []models.PositionFix{
		{Latitude: 56.751300, Longitude: 37.618500, AccuracyMeters: 10, ObservedAt: now.Add(-10 * time.Second)},
	}

	// Действие
	res := v.Validate(reported, now, zone, history)

	// Проверки
	require.True(t, res.SpoofSuspected)
	assert.Contains(t, res.Detail, "implied speed")
}

func TestValidate_PlausibleMovement_NotSpoof(t *testing.T) {
	// Фиксация в 100 метрах 5 минут назад - обычная ходьба
	v := newTestValidator()
	zone := testZone(200)
	now := time.Now()
	reported := models.Coordinate{Latitude: 55.751244, Longitude: 37.618423, AccuracyMeters: 10}
	history := []models.PositionFix{
		{Latitude: 55.752144, Longitude: 37.618423, AccuracyMeters: 12, ObservedAt: now.Add(-5 * time.Minute)},
	}

	res := v.Validate(reported, now, zone, history)

	assert.True(t, res.Within)
	assert.False(t, res.SpoofSuspected)
}
