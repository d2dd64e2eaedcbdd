package model

import (
    "time"

    "github.com/shopspring/decimal"
)

// RoomType classifies a room.
type RoomType string

const (
    RoomSingle RoomType = "single"
    RoomDouble RoomType = "double"
    RoomSuite  RoomType = "suite"
    RoomDeluxe RoomType = "deluxe"
)

// Valid reports whether t is a known room type.
func (t RoomType) Valid() bool {
    switch t {
    case RoomSingle, RoomDouble, RoomSuite, RoomDeluxe:
        return true
    }
    return false
}

// Room is a bookable unit of a hotel.  PricePerNight is kept as a decimal to
// avoid float rounding in booking totals.
type Room struct {
    ID            string          `json:"id"`            // rooms.id
    HotelID       string          `json:"hotelId"`       // rooms.hotel_id
    Number        string          `json:"number"`        // rooms.number
    Type          RoomType        `json:"type"`          // rooms.type
    Description   string          `json:"description"`   // rooms.description
    PricePerNight decimal.Decimal `json:"pricePerNight"` // rooms.price_per_night
    Capacity      int             `json:"capacity"`      // rooms.capacity
    Images        []string        `json:"images"`        // rooms.images (JSON)
    Amenities     []string        `json:"amenities"`     // rooms.amenities (JSON)
    IsAvailable   bool            `json:"isAvailable"`   // rooms.is_available
    CreatedAt     time.Time       `json:"createdAt"`     // rooms.created_at
    UpdatedAt     time.Time       `json:"updatedAt"`     // rooms.updated_at
}

// CreateRoomInput is the body of POST /v1/rooms.
type CreateRoomInput struct {
    HotelID       string          `json:"hotelId"`
    Number        string          `json:"number"`
    Type          RoomType        `json:"type"`
    Description   string          `json:"description"`
    PricePerNight decimal.Decimal `json:"pricePerNight"`
    Capacity      int             `json:"capacity"`
    Images        []string        `json:"images,omitempty"`
    Amenities     []string        `json:"amenities,omitempty"`
}

// UpdateRoomInput is a selective patch; nil fields are left untouched.
type UpdateRoomInput struct {
    Number        *string          `json:"number,omitempty"`
    Type          *RoomType        `json:"type,omitempty"`
    Description   *string          `json:"description,omitempty"`
    PricePerNight *decimal.Decimal `json:"pricePerNight,omitempty"`
    Capacity      *int             `json:"capacity,omitempty"`
    Images        *[]string        `json:"images,omitempty"`
    Amenities     *[]string        `json:"amenities,omitempty"`
    IsAvailable   *bool            `json:"isAvailable,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (in UpdateRoomInput) Empty() bool {
    return in.Number == nil && in.Type == nil && in.Description == nil && in.PricePerNight == nil &&
        in.Capacity == nil && in.Images == nil && in.Amenities == nil && in.IsAvailable == nil
}

// Apply copies the non-nil fields of the patch onto r.
func (in UpdateRoomInput) Apply(r *Room) {
    if in.Number != nil {
        r.Number = *in.Number
    }
    if in.Type != nil {
        r.Type = *in.Type
    }
    if in.Description != nil {
        r.Description = *in.Description
    }
    if in.PricePerNight != nil {
        r.PricePerNight = *in.PricePerNight
    }
    if in.Capacity != nil {
        r.Capacity = *in.Capacity
    }
    if in.Images != nil {
        r.Images = *in.Images
    }
    if in.Amenities != nil {
        r.Amenities = *in.Amenities
    }
    if in.IsAvailable != nil {
        r.IsAvailable = *in.IsAvailable
    }
}
