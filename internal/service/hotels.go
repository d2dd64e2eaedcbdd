package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// HotelStore is implemented by repository.HotelRepo.
type HotelStore interface {
	Create(ctx context.Context, h *model.Hotel) error
	GetByID(ctx context.Context, id string) (*model.Hotel, error)
	List(ctx context.Context) ([]model.Hotel, error)
	Update(ctx context.Context, h *model.Hotel) error
	Delete(ctx context.Context, id string) error
}

// HotelService manages hotel listings.  Only hotel owners and admins may
// create hotels; only the owning user or an admin may change one.
type HotelService struct {
	store HotelStore
}

func NewHotelService(store HotelStore) *HotelService { return &HotelService{store: store} }

func (s *HotelService) Create(ctx context.Context, c Caller, in model.CreateHotelInput) (*model.Hotel, error) {
	if err := HotelManager(c); err != nil {
		return nil, err
	}
	h := &model.Hotel{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Address:     strings.TrimSpace(in.Address),
		City:        strings.TrimSpace(in.City),
		Country:     strings.TrimSpace(in.Country),
		ZipCode:     strings.TrimSpace(in.ZipCode),
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		StarRating:  in.StarRating,
		Images:      orEmpty(in.Images),
		Amenities:   orEmpty(in.Amenities),
		OwnerID:     c.ID,
	}
	if err := validateHotel(h); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, h); err != nil {
		return nil, fmt.Errorf("create hotel: %w", err)
	}
	return h, nil
}

func (s *HotelService) List(ctx context.Context) ([]model.Hotel, error) {
	hotels, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	return hotels, nil
}

func (s *HotelService) Get(ctx context.Context, id string) (*model.Hotel, error) {
	h, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return nil, notFoundError("hotel not found")
		}
		return nil, fmt.Errorf("get hotel: %w", err)
	}
	return h, nil
}

func (s *HotelService) Update(ctx context.Context, c Caller, id string, patch model.UpdateHotelInput) (*model.Hotel, error) {
	h, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := OwnerOrAdmin(c, h.OwnerID); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, validationError("no fields to update")
	}
	patch.Apply(h)
	h.Images, h.Amenities = orEmpty(h.Images), orEmpty(h.Amenities)
	if err := validateHotel(h); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, h); err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return nil, notFoundError("hotel not found")
		}
		return nil, fmt.Errorf("update hotel: %w", err)
	}
	return h, nil
}

func (s *HotelService) Delete(ctx context.Context, c Caller, id string) error {
	h, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := OwnerOrAdmin(c, h.OwnerID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return notFoundError("hotel not found")
		}
		return fmt.Errorf("delete hotel: %w", err)
	}
	return nil
}

func validateHotel(h *model.Hotel) error {
	switch {
	case h.Name == "":
		return validationError("name is required")
	case h.Address == "":
		return validationError("address is required")
	case h.City == "":
		return validationError("city is required")
	case h.Country == "":
		return validationError("country is required")
	case h.StarRating < 1 || h.StarRating > 5:
		return validationError("starRating must be between 1 and 5")
	case h.Latitude < -90 || h.Latitude > 90:
		return validationError("latitude must be between -90 and 90")
	case h.Longitude < -180 || h.Longitude > 180:
		return validationError("longitude must be between -180 and 180")
	}
	return nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
