package repository

import (
	"context"
	"fmt"

	"hbnb-booking/internal/data/entity"
	"hbnb-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PlaceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Place, error)
}

type placeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPlaceRepository(db database.PgxIface, log *zap.Logger) PlaceRepository {
	return &placeRepository{
		db:  db,
		log: log.With(zap.String("repository", "place")),
	}
}

func (r *placeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Place, error) {
	query := `
		SELECT id, owner_id, title, price_per_night, created_at, updated_at
		FROM places
		WHERE id = $1
	`

	var place entity.Place
	err := r.db.QueryRow(ctx, query, id).Scan(
		&place.ID,
		&place.OwnerID,
		&place.Title,
		&place.PricePerNight,
		&place.CreatedAt,
		&place.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find place by ID",
			zap.Error(err),
			zap.String("place_id", id.String()),
		)
		return nil, fmt.Errorf("find place by ID %s: %w", id.String(), err)
	}

	return &place, nil
}
