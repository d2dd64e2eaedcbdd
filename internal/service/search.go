package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/iliyamo/hotel-booking/internal/model"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 100
)

// HotelSearcher is implemented by repository.HotelRepo.
type HotelSearcher interface {
	Search(ctx context.Context, q model.HotelSearchQuery) ([]model.Hotel, int64, error)
}

// SearchService filters and pages hotels.
type SearchService struct {
	store HotelSearcher
}

func NewSearchService(store HotelSearcher) *SearchService { return &SearchService{store: store} }

// SearchHotels normalizes q and runs it.  Results are ordered by star
// rating, highest first, unless sortBy/sortOrder say otherwise.
func (s *SearchService) SearchHotels(ctx context.Context, q model.HotelSearchQuery) (*model.HotelSearchResult, error) {
	q, err := normalizeSearch(q)
	if err != nil {
		return nil, err
	}
	items, total, err := s.store.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search hotels: %w", err)
	}
	return &model.HotelSearchResult{Items: items, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

func normalizeSearch(q model.HotelSearchQuery) (model.HotelSearchQuery, error) {
	q.City = strings.TrimSpace(q.City)
	q.Country = strings.TrimSpace(q.Country)
	q.SortBy = strings.ToLower(strings.TrimSpace(q.SortBy))
	q.SortOrder = strings.ToLower(strings.TrimSpace(q.SortOrder))

	switch q.SortBy {
	case "":
		q.SortBy = "rating"
	case "name", "rating":
	default:
		return q, validationError("sortBy must be name or rating")
	}
	switch q.SortOrder {
	case "":
		if q.SortBy == "name" {
			q.SortOrder = "asc"
		} else {
			q.SortOrder = "desc"
		}
	case "asc", "desc":
	default:
		return q, validationError("sortOrder must be asc or desc")
	}

	if q.StarRating < 0 || q.StarRating > 5 {
		return q, validationError("starRating must be between 1 and 5")
	}
	if q.Guests < 0 {
		return q, validationError("guests must be positive")
	}
	if (q.MinPrice != nil && *q.MinPrice < 0) || (q.MaxPrice != nil && *q.MaxPrice < 0) {
		return q, validationError("prices must not be negative")
	}
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return q, validationError("minPrice must not exceed maxPrice")
	}

	if q.Page < 1 {
		q.Page = 1
	}
	switch {
	case q.Limit <= 0:
		q.Limit = defaultSearchLimit
	case q.Limit > maxSearchLimit:
		q.Limit = maxSearchLimit
	}
	return q, nil
}
