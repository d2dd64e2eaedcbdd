package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/google/uuid"

    "github.com/iliyamo/hotel-booking/internal/model"
)

var (
    // ErrRoomNotFound is returned when a room cannot be found in the DB.
    ErrRoomNotFound = errors.New("room not found")
    // ErrRoomNumberExists is returned when a hotel already has a room with
    // the same number.
    ErrRoomNumberExists = errors.New("room number already exists in this hotel")
)

const roomColumns = "id, hotel_id, number, type, description, price_per_night, capacity, images, amenities, is_available, created_at, updated_at"

// RoomRepo provides CRUD operations for the `rooms` table.
type RoomRepo struct {
    db *sql.DB
}

func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

func scanRoom(s rowScanner) (model.Room, error) {
    var (
        rm        model.Room
        images    stringList
        amenities stringList
    )
    err := s.Scan(&rm.ID, &rm.HotelID, &rm.Number, &rm.Type, &rm.Description, &rm.PricePerNight,
        &rm.Capacity, &images, &amenities, &rm.IsAvailable, &rm.CreatedAt, &rm.UpdatedAt)
    rm.Images = []string(images)
    rm.Amenities = []string(amenities)
    return rm, err
}

// Create inserts a room.  (hotel_id, number) is unique.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
    rm.ID = uuid.NewString()
    const q = `INSERT INTO rooms (id, hotel_id, number, type, description, price_per_night, capacity, images, amenities, is_available)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    _, err := r.db.ExecContext(ctx, q, rm.ID, rm.HotelID, rm.Number, rm.Type, rm.Description, rm.PricePerNight,
        rm.Capacity, stringList(rm.Images), stringList(rm.Amenities), rm.IsAvailable)
    if err != nil {
        if isDuplicateKey(err) {
            return ErrRoomNumberExists
        }
        return err
    }
    stored, err := r.GetByID(ctx, rm.ID)
    if err != nil {
        return err
    }
    *rm = *stored
    return nil
}

// GetByID returns a single room or ErrRoomNotFound.
func (r *RoomRepo) GetByID(ctx context.Context, id string) (*model.Room, error) {
    rm, err := scanRoom(r.db.QueryRowContext(ctx, "SELECT "+roomColumns+" FROM rooms WHERE id = ?", id))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrRoomNotFound
        }
        return nil, err
    }
    return &rm, nil
}

// List returns rooms ordered by hotel and number.  When hotelID is not
// empty only that hotel's rooms are returned.
func (r *RoomRepo) List(ctx context.Context, hotelID string) ([]model.Room, error) {
    q := "SELECT " + roomColumns + " FROM rooms"
    args := []any{}
    if hotelID != "" {
        q += " WHERE hotel_id = ?"
        args = append(args, hotelID)
    }
    q += " ORDER BY hotel_id, number"
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := []model.Room{}
    for rows.Next() {
        rm, err := scanRoom(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, rm)
    }
    return out, rows.Err()
}

// Update writes the mutable columns of rm and reloads it.
func (r *RoomRepo) Update(ctx context.Context, rm *model.Room) error {
    const q = `UPDATE rooms SET number = ?, type = ?, description = ?, price_per_night = ?, capacity = ?,
        images = ?, amenities = ?, is_available = ?, updated_at = UTC_TIMESTAMP() WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, rm.Number, rm.Type, rm.Description, rm.PricePerNight, rm.Capacity,
        stringList(rm.Images), stringList(rm.Amenities), rm.IsAvailable, rm.ID)
    if err != nil {
        if isDuplicateKey(err) {
            return ErrRoomNumberExists
        }
        return err
    }
    if n, err := res.RowsAffected(); err == nil && n == 0 {
        return ErrRoomNotFound
    }
    stored, err := r.GetByID(ctx, rm.ID)
    if err != nil {
        return err
    }
    *rm = *stored
    return nil
}

// Delete removes a room.
func (r *RoomRepo) Delete(ctx context.Context, id string) error {
    res, err := r.db.ExecContext(ctx, "DELETE FROM rooms WHERE id = ?", id)
    if err != nil {
        return err
    }
    if n, err := res.RowsAffected(); err == nil && n == 0 {
        return ErrRoomNotFound
    }
    return nil
}
