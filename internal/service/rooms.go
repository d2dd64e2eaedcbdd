package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// RoomStore is implemented by repository.RoomRepo.
type RoomStore interface {
	Create(ctx context.Context, rm *model.Room) error
	GetByID(ctx context.Context, id string) (*model.Room, error)
	List(ctx context.Context, hotelID string) ([]model.Room, error)
	Update(ctx context.Context, rm *model.Room) error
	Delete(ctx context.Context, id string) error
}

// RoomService manages the rooms of a hotel.  Changes are allowed to the
// owner of the hotel and to admins.
type RoomService struct {
	rooms  RoomStore
	hotels *HotelService
}

func NewRoomService(rooms RoomStore, hotels *HotelService) *RoomService {
	return &RoomService{rooms: rooms, hotels: hotels}
}

func (s *RoomService) Create(ctx context.Context, c Caller, in model.CreateRoomInput) (*model.Room, error) {
	if in.HotelID == "" {
		return nil, validationError("hotelId is required")
	}
	if err := s.authorizeHotel(ctx, c, in.HotelID); err != nil {
		return nil, err
	}
	rm := &model.Room{
		HotelID:       in.HotelID,
		Number:        strings.TrimSpace(in.Number),
		Type:          in.Type,
		Description:   in.Description,
		PricePerNight: in.PricePerNight,
		Capacity:      in.Capacity,
		Images:        orEmpty(in.Images),
		Amenities:     orEmpty(in.Amenities),
		IsAvailable:   true,
	}
	if err := validateRoom(rm); err != nil {
		return nil, err
	}
	if err := s.rooms.Create(ctx, rm); err != nil {
		return nil, roomStoreError(err)
	}
	return rm, nil
}

// List returns every room, or the rooms of hotelID when it is not empty.
func (s *RoomService) List(ctx context.Context, hotelID string) ([]model.Room, error) {
	rooms, err := s.rooms.List(ctx, hotelID)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

func (s *RoomService) Get(ctx context.Context, id string) (*model.Room, error) {
	rm, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, roomStoreError(err)
	}
	return rm, nil
}

func (s *RoomService) Update(ctx context.Context, c Caller, id string, patch model.UpdateRoomInput) (*model.Room, error) {
	rm, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeHotel(ctx, c, rm.HotelID); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, validationError("no fields to update")
	}
	patch.Apply(rm)
	rm.Number = strings.TrimSpace(rm.Number)
	rm.Images, rm.Amenities = orEmpty(rm.Images), orEmpty(rm.Amenities)
	if err := validateRoom(rm); err != nil {
		return nil, err
	}
	if err := s.rooms.Update(ctx, rm); err != nil {
		return nil, roomStoreError(err)
	}
	return rm, nil
}

func (s *RoomService) Delete(ctx context.Context, c Caller, id string) error {
	rm, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeHotel(ctx, c, rm.HotelID); err != nil {
		return err
	}
	if err := s.rooms.Delete(ctx, id); err != nil {
		return roomStoreError(err)
	}
	return nil
}

func (s *RoomService) authorizeHotel(ctx context.Context, c Caller, hotelID string) error {
	h, err := s.hotels.Get(ctx, hotelID)
	if err != nil {
		return err
	}
	return OwnerOrAdmin(c, h.OwnerID)
}

func validateRoom(rm *model.Room) error {
	switch {
	case rm.Number == "":
		return validationError("number is required")
	case !rm.Type.Valid():
		return validationError("type must be one of single, double, suite, deluxe")
	case !rm.PricePerNight.IsPositive():
		return validationError("pricePerNight must be greater than 0")
	case rm.Capacity < 1:
		return validationError("capacity must be at least 1")
	}
	return nil
}

func roomStoreError(err error) error {
	switch {
	case errors.Is(err, repository.ErrRoomNotFound):
		return notFoundError("room not found")
	case errors.Is(err, repository.ErrRoomNumberExists):
		return conflictError("room number already exists in this hotel")
	}
	return fmt.Errorf("room store: %w", err)
}
