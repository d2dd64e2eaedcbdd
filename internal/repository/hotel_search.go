package repository

import (
	"context"
	"strings"

	"github.com/iliyamo/hotel-booking/internal/model"
)

// Search filters hotels and returns one page plus the total match count.
// Price and guest filters match hotels having at least one available room
// that satisfies them.
func (r *HotelRepo) Search(ctx context.Context, q model.HotelSearchQuery) ([]model.Hotel, int64, error) {
	where := []string{}
	args := []any{}

	if q.City != "" {
		where = append(where, "LOWER(h.city) = ?")
		args = append(args, strings.ToLower(strings.TrimSpace(q.City)))
	}
	if q.Country != "" {
		where = append(where, "LOWER(h.country) = ?")
		args = append(args, strings.ToLower(strings.TrimSpace(q.Country)))
	}
	if q.StarRating > 0 {
		where = append(where, "h.star_rating >= ?")
		args = append(args, q.StarRating)
	}
	if q.Guests > 0 || q.MinPrice != nil || q.MaxPrice != nil {
		room := []string{"rm.hotel_id = h.id", "rm.is_available = 1"}
		if q.Guests > 0 {
			room = append(room, "rm.capacity >= ?")
			args = append(args, q.Guests)
		}
		if q.MinPrice != nil {
			room = append(room, "rm.price_per_night >= ?")
			args = append(args, *q.MinPrice)
		}
		if q.MaxPrice != nil {
			room = append(room, "rm.price_per_night <= ?")
			args = append(args, *q.MaxPrice)
		}
		where = append(where, "EXISTS (SELECT 1 FROM rooms rm WHERE "+strings.Join(room, " AND ")+")")
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM hotels h WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := "h.star_rating"
	if strings.EqualFold(q.SortBy, "name") {
		order = "h.name"
	}
	if strings.EqualFold(q.SortOrder, "asc") {
		order += " ASC"
	} else {
		order += " DESC"
	}

	cols := "h." + strings.ReplaceAll(hotelColumns, ", ", ", h.")
	dataSQL := "SELECT " + cols + " FROM hotels h WHERE " + cond + " ORDER BY " + order + ", h.id ASC LIMIT ? OFFSET ?"
	argsData := append(append([]any{}, args...), q.Limit, (q.Page-1)*q.Limit)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Hotel, 0, q.Limit)
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
