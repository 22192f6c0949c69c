package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shenikar/attendance_verification_system/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=zone.go -destination=mocks/mock_zone.go -package=mocks

// ZoneRepository определяет контракт для работы с бд зон посещения
type ZoneRepository interface {
	Create(ctx context.Context, zone *models.Zone) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Zone, error)
	Update(ctx context.Context, zone *models.Zone) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListZones(ctx context.Context, page, pageSize int) ([]*models.Zone, error)
	GetZoneFromCache(ctx context.Context, id uuid.UUID) (*models.Zone, error)
	SetZoneCache(ctx context.Context, zone *models.Zone) error
	InvalidateZoneCache(ctx context.Context, id uuid.UUID) error
}

// ZoneService определяет контракт для бизнес-логики управления зонами
type ZoneService interface {
	CreateZone(ctx context.Context, zone *models.Zone) error
	GetZone(ctx context.Context, id uuid.UUID) (*models.Zone, error)
	UpdateZone(ctx context.Context, zone *models.Zone) error
	DeactivateZone(ctx context.Context, id uuid.UUID) error
	ListZones(ctx context.Context, page, pageSize int) ([]*models.Zone, error)
}

type zoneService struct {
	repo   ZoneRepository
	logger *logrus.Logger
}

func NewZoneService(repo ZoneRepository, logger *logrus.Logger) ZoneService {
	return &zoneService{
		repo:   repo,
		logger: logger,
	}
}

// CreateZone создает зону посещения
func (s *zoneService) CreateZone(ctx context.Context, zone *models.Zone) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "zone",
		"method":  "CreateZone",
		"name":    zone.Name,
	})
	log.Info("Attempting to create a new zone")

	zone.Status = "active"
	if err := s.repo.Create(ctx, zone); err != nil {
		log.WithError(err).Error("Failed to create zone in repository")
		return fmt.Errorf("service: could not create zone: %w", err)
	}

	log.WithField("zone_id", zone.ID).Info("Zone created successfully")
	return nil
}

// GetZone получает зону по ID, сначала из кэша, затем из бд
func (s *zoneService) GetZone(ctx context.Context, id uuid.UUID) (*models.Zone, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "zone",
		"method":  "GetZone",
		"zone_id": id,
	})

	if cached, err := s.repo.GetZoneFromCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to read zone from cache")
	} else if cached != nil {
		log.Debug("Zone fetched from cache")
		return cached, nil
	}

	zone, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to get zone from repository")
		return nil, fmt.Errorf("service: could not get zone: %w", err)
	}

	if err := s.repo.SetZoneCache(ctx, zone); err != nil {
		log.WithError(err).Warn("Failed to cache zone")
	}

	log.Info("Zone fetched successfully")
	return zone, nil
}

// UpdateZone обновляет существующую зону
func (s *zoneService) UpdateZone(ctx context.Context, zone *models.Zone) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "zone",
		"method":  "UpdateZone",
		"zone_id": zone.ID,
	})
	log.Info("Attempting to update zone")

	existing, err := s.repo.GetByID(ctx, zone.ID)
	if err != nil {
		log.WithError(err).Warn("Attempted to update a non-existent zone")
		return fmt.Errorf("service: zone with id %s not found for update: %w", zone.ID, err)
	}

	existing.Name = zone.Name
	existing.Description = zone.Description
	existing.Latitude = zone.Latitude
	existing.Longitude = zone.Longitude
	existing.RadiusMeters = zone.RadiusMeters

	if err := s.repo.Update(ctx, existing); err != nil {
		log.WithError(err).Error("Failed to update zone in repository")
		return fmt.Errorf("service: could not update zone: %w", err)
	}

	if err := s.repo.InvalidateZoneCache(ctx, zone.ID); err != nil {
		log.WithError(err).Warn("Failed to invalidate zone cache")
	}

	log.Info("Zone updated successfully")
	return nil
}

// DeactivateZone деактивирует зону
func (s *zoneService) DeactivateZone(ctx context.Context, id uuid.UUID) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "zone",
		"method":  "DeactivateZone",
		"zone_id": id,
	})
	log.Info("Attempting to deactivate zone")

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		log.WithError(err).Warn("Attempted to deactivate a non-existent zone")
		return fmt.Errorf("service: zone with id %s not found for deactivate: %w", id, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.WithError(err).Error("Failed to deactivate zone in repository")
		return fmt.Errorf("service: could not deactivate zone: %w", err)
	}

	if err := s.repo.InvalidateZoneCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate zone cache")
	}

	log.Info("Zone deactivated successfully")
	return nil
}

// ListZones возвращает список зон с пагинацией
func (s *zoneService) ListZones(ctx context.Context, page, pageSize int) ([]*models.Zone, error) {
	if page < 1 {
		page = 1
	}

	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":   "zone",
		"method":    "ListZones",
		"page":      page,
		"page_size": pageSize,
	})
	log.Info("Listing zones")

	zones, err := s.repo.ListZones(ctx, page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list zones from repository")
		return nil, fmt.Errorf("service: could not list zones: %w", err)
	}

	log.WithField("count", len(zones)).Info("Zones listed successfully")
	return zones, nil
}
