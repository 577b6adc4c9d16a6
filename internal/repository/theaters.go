package repository

import (
	"context"
	"database/sql"

	"cinecatch/internal/database"
	"cinecatch/internal/models"
)

type TheaterRepository struct {
	db *database.DB
}

func NewTheaterRepository(db *database.DB) *TheaterRepository {
	return &TheaterRepository{db: db}
}

// FindNearby returns theaters within radiusMeters of the point, closest
// first. Ties on distance are broken by theater id so the ordering is
// deterministic.
func (r *TheaterRepository) FindNearby(ctx context.Context, lat, lng, radiusMeters float64) ([]models.Theater, error) {
	query := `
		SELECT id, brand, name, address, latitude, longitude
		FROM theaters
		WHERE earth_box(ll_to_earth($1, $2), $3) @> ll_to_earth(latitude, longitude)
		  AND earth_distance(ll_to_earth($1, $2), ll_to_earth(latitude, longitude)) <= $3
		ORDER BY earth_distance(ll_to_earth($1, $2), ll_to_earth(latitude, longitude)), id`

	rows, err := r.db.QueryContext(ctx, query, lat, lng, radiusMeters)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTheaters(rows)
}

func (r *TheaterRepository) GetByID(ctx context.Context, id string) (*models.Theater, error) {
	theater := &models.Theater{}
	query := `
		SELECT id, brand, name, address, latitude, longitude
		FROM theaters
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&theater.ID,
		&theater.Brand,
		&theater.Name,
		&theater.Address,
		&theater.Latitude,
		&theater.Longitude,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return theater, err
}

func (r *TheaterRepository) List(ctx context.Context, brand string) ([]models.Theater, error) {
	query := `
		SELECT id, brand, name, address, latitude, longitude
		FROM theaters
		WHERE ($1 = '' OR brand = $1)
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, brand)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTheaters(rows)
}

func scanTheaters(rows *sql.Rows) ([]models.Theater, error) {
	var theaters []models.Theater
	for rows.Next() {
		var t models.Theater
		err := rows.Scan(&t.ID, &t.Brand, &t.Name, &t.Address, &t.Latitude, &t.Longitude)
		if err != nil {
			return nil, err
		}
		theaters = append(theaters, t)
	}
	return theaters, rows.Err()
}
