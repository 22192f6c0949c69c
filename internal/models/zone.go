package models

import (
	"time"

	"github.com/google/uuid"
)

// Zone - зарегистрированная геозона, внутри которой засчитывается посещение
type Zone struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	RadiusMeters int       `json:"radius_meters"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Center возвращает центр зоны как координату
func (z *Zone) Center() Coordinate {
	return Coordinate{Latitude: z.Latitude, Longitude: z.Longitude}
}
