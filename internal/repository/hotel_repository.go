package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/iliyamo/hotel-booking/internal/model"
)

// ErrHotelNotFound is returned when a hotel cannot be found in the DB.
var ErrHotelNotFound = errors.New("hotel not found")

const hotelColumns = "id, name, description, address, city, country, zip_code, latitude, longitude, star_rating, images, amenities, owner_id, created_at, updated_at"

// HotelRepo encapsulates all database queries related to hotels.
type HotelRepo struct {
	db *sql.DB
}

func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

func scanHotel(s rowScanner) (model.Hotel, error) {
	var (
		h         model.Hotel
		images    stringList
		amenities stringList
	)
	err := s.Scan(&h.ID, &h.Name, &h.Description, &h.Address, &h.City, &h.Country, &h.ZipCode,
		&h.Latitude, &h.Longitude, &h.StarRating, &images, &amenities, &h.OwnerID, &h.CreatedAt, &h.UpdatedAt)
	h.Images = []string(images)
	h.Amenities = []string(amenities)
	return h, err
}

// Create inserts h with a new id and reloads it to populate timestamps.
func (r *HotelRepo) Create(ctx context.Context, h *model.Hotel) error {
	h.ID = uuid.NewString()
	const q = `INSERT INTO hotels (id, name, description, address, city, country, zip_code, latitude, longitude, star_rating, images, amenities, owner_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, h.ID, h.Name, h.Description, h.Address, h.City, h.Country, h.ZipCode,
		h.Latitude, h.Longitude, h.StarRating, stringList(h.Images), stringList(h.Amenities), h.OwnerID); err != nil {
		return err
	}
	stored, err := r.GetByID(ctx, h.ID)
	if err != nil {
		return err
	}
	*h = *stored
	return nil
}

// GetByID fetches a hotel by its ID.  It returns ErrHotelNotFound if no row
// is found.
func (r *HotelRepo) GetByID(ctx context.Context, id string) (*model.Hotel, error) {
	h, err := scanHotel(r.db.QueryRowContext(ctx, "SELECT "+hotelColumns+" FROM hotels WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	return &h, nil
}

// List returns all hotels ordered by name.
func (r *HotelRepo) List(ctx context.Context) ([]model.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+hotelColumns+" FROM hotels ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Hotel{}
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// Update overwrites the mutable columns of h and reloads it.
func (r *HotelRepo) Update(ctx context.Context, h *model.Hotel) error {
	const q = `UPDATE hotels SET name = ?, description = ?, address = ?, city = ?, country = ?, zip_code = ?,
		latitude = ?, longitude = ?, star_rating = ?, images = ?, amenities = ?, updated_at = UTC_TIMESTAMP()
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, h.Name, h.Description, h.Address, h.City, h.Country, h.ZipCode,
		h.Latitude, h.Longitude, h.StarRating, stringList(h.Images), stringList(h.Amenities), h.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrHotelNotFound
	}
	stored, err := r.GetByID(ctx, h.ID)
	if err != nil {
		return err
	}
	*h = *stored
	return nil
}

// Delete removes a hotel.  Rooms and bookings are removed by the foreign
// key cascade declared in the schema.
func (r *HotelRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM hotels WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrHotelNotFound
	}
	return nil
}
