package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/attendance_verification_system/internal/models"
	"github.com/shenikar/attendance_verification_system/internal/service"
)

const zoneCacheTTL = 5 * time.Minute

type ZoneRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewZoneRepository(db *pgxpool.Pool, redisClient *redis.Client) service.ZoneRepository {
	return &ZoneRepository{
		db:          db,
		redisClient: redisClient,
	}
}

// Create создает новую запись о зоне в бд
func (r *ZoneRepository) Create(ctx context.Context, zone *models.Zone) error {
	query := `
		INSERT INTO zones (name, description, latitude, longitude, radius_meters, status)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		zone.Name,
		zone.Description,
		zone.Latitude,
		zone.Longitude,
		zone.RadiusMeters,
		zone.Status,
	).Scan(&zone.ID, &zone.CreatedAt, &zone.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create zone: %w", err)
	}
	return nil
}

// GetByID возвращает зону по ее UUID
func (r *ZoneRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Zone, error) {
	zone := &models.Zone{}
	query := `
		SELECT
			id,
			name,
			description,
			latitude,
			longitude,
			radius_meters,
			status,
			created_at,
			updated_at
		FROM zones
		WHERE id = $1;
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&zone.ID,
		&zone.Name,
		&zone.Description,
		&zone.Latitude,
		&zone.Longitude,
		&zone.RadiusMeters,
		&zone.Status,
		&zone.CreatedAt,
		&zone.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("zone with id %s: %w", id, service.ErrZoneNotFound)
		}
		return nil, fmt.Errorf("failed to get zone by id: %w", err)
	}
	return zone, nil
}

func (r *ZoneRepository) Update(ctx context.Context, zone *models.Zone) error {
	query := `
		UPDATE zones SET
			name = $1,
			description = $2,
			latitude = $3,
			longitude = $4,
			radius_meters = $5,
			status = $6,
			updated_at = NOW()
		WHERE id = $7;
		`
	cmdTag, err := r.db.Exec(ctx, query,
		zone.Name,
		zone.Description,
		zone.Latitude,
		zone.Longitude,
		zone.RadiusMeters,
		zone.Status,
		zone.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update zone: %w", err)
	}

	// RowsAffected() == 0 означает, что зоны с таким id не существует
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("zone with id %s: %w", zone.ID, service.ErrZoneNotFound)
	}
	return nil
}

// Delete(деактивация) устанавливает статус 'inactive' для зоны
func (r *ZoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE zones SET
			status = 'inactive',
			updated_at = NOW()
		WHERE id = $1;
	`
	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate zone: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("zone with id %s: %w", id, service.ErrZoneNotFound)
	}
	return nil
}

// ListZones возвращает список зон с пагинацией
func (r *ZoneRepository) ListZones(ctx context.Context, page, pageSize int) ([]*models.Zone, error) {
	offset := (page - 1) * pageSize

	query := `
		SELECT
			id,
			name,
			description,
			latitude,
			longitude,
			radius_meters,
			status,
			created_at,
			updated_at
		FROM zones
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.db.Query(ctx, query, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}
	defer rows.Close()

	zones := make([]*models.Zone, 0)
	for rows.Next() {
		zone := &models.Zone{}
		err := rows.Scan(
			&zone.ID,
			&zone.Name,
			&zone.Description,
			&zone.Latitude,
			&zone.Longitude,
			&zone.RadiusMeters,
			&zone.Status,
			&zone.CreatedAt,
			&zone.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan zone row: %w", err)
		}
		zones = append(zones, zone)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return zones, nil
}

// GetZoneFromCache пытается получить зону из Redis
func (r *ZoneRepository) GetZoneFromCache(ctx context.Context, id uuid.UUID) (*models.Zone, error) {
	key := fmt.Sprintf("zone:%s", id.String())
	val, err := r.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get zone from cache: %w", err)
	}

	zone := &models.Zone{}
	if err := json.Unmarshal(val, zone); err != nil {
		return nil, fmt.Errorf("failed to unmarshal zone from cache: %w", err)
	}
	return zone, nil
}

// SetZoneCache сохраняет зону в Redis
func (r *ZoneRepository) SetZoneCache(ctx context.Context, zone *models.Zone) error {
	key := fmt.Sprintf("zone:%s", zone.ID.String())
	val, err := json.Marshal(zone)
	if err != nil {
		return fmt.Errorf("failed to marshal zone for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, key, val, zoneCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set zone in cache: %w", err)
	}
	return nil
}

// InvalidateZoneCache удаляет зону из Redis кэша
func (r *ZoneRepository) InvalidateZoneCache(ctx context.Context, id uuid.UUID) error {
	key := fmt.Sprintf("zone:%s", id.String())
	if err := r.redisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate zone cache: %w", err)
	}
	return nil
}
