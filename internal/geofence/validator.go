package geofence

import (
	"fmt"
	"math"
	"time"

	"github.com/shenikar/attendance_verification_system/internal/models"
)

// Средний радиус Земли в метрах для формулы гаверсинуса
const earthRadiusMeters = 6371000.0

// Config - пороги эвристик геозоны
type Config struct {
	// MaxSpeedMPS - максимальная правдоподобная скорость перемещения между
	// двумя фиксациями, м/с (50 м/с = 180 км/ч)
	MaxSpeedMPS float64
	// MinAccuracyMeters - точность ниже этого значения подозрительно идеальна
	MinAccuracyMeters float64
	// MaxAccuracyMeters - точность выше этого значения считается недостоверной
	MaxAccuracyMeters float64
}

// Result - результат проверки геозоны для одной попытки
type Result struct {
	Within         bool
	DistanceMeters float64
	SpoofSuspected bool
	// FailureReason содержит код причины, если проверка не пройдена
	FailureReason string
	Detail        string
}

// Validator выполняет проверку местоположения относительно зоны.
// Не имеет побочных эффектов: история позиций передается вызывающим
type Validator struct {
	cfg Config
}

func NewValidator(cfg Config) *Validator {
	return &Validator{cfg: cfg}
}

// Haversine вычисляет расстояние большого круга между двумя точками в метрах
func Haversine(a, b models.Coordinate) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// Validate проверяет, что переданная точка находится внутри зоны и не похожа
// на подмену GPS. Порядок проверок: подмена, затем точность, затем радиус.
// При accuracy больше радиуса зоны результат закрывается отказом независимо
// от номинального расстояния: такой точке нельзя доверять
func (v *Validator) Validate(reported models.Coordinate, observedAt time.Time, zone *models.Zone, history []models.PositionFix) Result {
	res := Result{
		DistanceMeters: Haversine(reported, zone.Center()),
	}

	if suspected, detail := v.detectSpoofing(reported, observedAt, history); suspected {
		res.SpoofSuspected = true
		res.FailureReason = models.ReasonGeofenceSpoofSuspected
		res.Detail = detail
		return res
	}

	if reported.AccuracyMeters > float64(zone.RadiusMeters) {
		res.FailureReason = models.ReasonGeofenceLowAccuracy
		res.Detail = fmt.Sprintf("accuracy %.1fm exceeds zone radius %dm", reported.AccuracyMeters, zone.RadiusMeters)
		return res
	}

	if res.DistanceMeters > float64(zone.RadiusMeters) {
		res.FailureReason = models.ReasonGeofenceOutOfRange
		res.Detail = fmt.Sprintf("%.1fm from zone center, max %dm", res.DistanceMeters, zone.RadiusMeters)
		return res
	}

	res.Within = true
	return res
}

// detectSpoofing - эвристики обнаружения подмены GPS: некорректные или
// "слишком идеальные" координаты, нулевой остров, побитово одинаковые
// фиксации и невозможная скорость между последовательными фиксациями
func (v *Validator) detectSpoofing(loc models.Coordinate, observedAt time.Time, history []models.PositionFix) (bool, string) {
	if loc.Latitude < -90 || loc.Latitude > 90 {
		return true, "invalid latitude"
	}
	if loc.Longitude < -180 || loc.Longitude > 180 {
		return true, "invalid longitude"
	}
	if math.Abs(loc.Latitude) < 0.01 && math.Abs(loc.Longitude) < 0.01 {
		return true, "location at null island"
	}
	if loc.AccuracyMeters > 0 && loc.AccuracyMeters < v.cfg.MinAccuracyMeters {
		return true, fmt.Sprintf("suspiciously perfect accuracy %.2fm", loc.AccuracyMeters)
	}
	if loc.AccuracyMeters > v.cfg.MaxAccuracyMeters {
		return true, fmt.Sprintf("poor accuracy %.1fm", loc.AccuracyMeters)
	}

	identical := 0
	for _, fix := range history {
		if fix.Latitude == loc.Latitude && fix.Longitude == loc.Longitude {
			identical++
		}
	}
	// Живой GPS всегда дрожит: две побитово одинаковые фиксации в разных
	// сессиях практически невозможны
	if identical >= 2 {
		return true, "repeated bit-identical coordinates"
	}

	if len(history) > 0 {
		// История хранится от новых фиксаций к старым
		last := history[0]
		elapsed := observedAt.Sub(last.ObservedAt).Seconds()
		if elapsed > 0 {
			distance := Haversine(models.Coordinate{Latitude: last.Latitude, Longitude: last.Longitude}, loc)
			speed := distance / elapsed
			if speed > v.cfg.MaxSpeedMPS {
				return true, fmt.Sprintf("implied speed %.1f m/s exceeds %.1f m/s", speed, v.cfg.MaxSpeedMPS)
			}
		}
	}

	return false, ""
}
