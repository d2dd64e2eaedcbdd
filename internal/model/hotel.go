package model

import "time"

// Hotel is a property listed by a hotel owner.  This struct corresponds to a
// row in the `hotels` table; Images and Amenities are stored as JSON arrays.
//
// Fields:
//  ID          – identifier assigned by the repository.
//  Name        – display name.
//  Description – free text description.
//  Address     – street address.
//  City        – city used by search.
//  Country     – country used by search.
//  ZipCode     – postal code.
//  Latitude    – WGS84 latitude.
//  Longitude   – WGS84 longitude.
//  StarRating  – 1 to 5.
//  Images      – image URLs.
//  Amenities   – amenity labels.
//  OwnerID     – user who owns the hotel.
type Hotel struct {
    ID          string    `json:"id"`          // hotels.id
    Name        string    `json:"name"`        // hotels.name
    Description string    `json:"description"` // hotels.description
    Address     string    `json:"address"`     // hotels.address
    City        string    `json:"city"`        // hotels.city
    Country     string    `json:"country"`     // hotels.country
    ZipCode     string    `json:"zipCode"`     // hotels.zip_code
    Latitude    float64   `json:"latitude"`    // hotels.latitude
    Longitude   float64   `json:"longitude"`   // hotels.longitude
    StarRating  int       `json:"starRating"`  // hotels.star_rating
    Images      []string  `json:"images"`      // hotels.images (JSON)
    Amenities   []string  `json:"amenities"`   // hotels.amenities (JSON)
    OwnerID     string    `json:"ownerId"`     // hotels.owner_id
    CreatedAt   time.Time `json:"createdAt"`   // hotels.created_at
    UpdatedAt   time.Time `json:"updatedAt"`   // hotels.updated_at
}

// CreateHotelInput is the body of POST /v1/hotels.
type CreateHotelInput struct {
    Name        string   `json:"name"`
    Description string   `json:"description"`
    Address     string   `json:"address"`
    City        string   `json:"city"`
    Country     string   `json:"country"`
    ZipCode     string   `json:"zipCode"`
    Latitude    float64  `json:"latitude"`
    Longitude   float64  `json:"longitude"`
    StarRating  int      `json:"starRating"`
    Images      []string `json:"images,omitempty"`
    Amenities   []string `json:"amenities,omitempty"`
}

// UpdateHotelInput is a selective patch; nil fields are left untouched.
type UpdateHotelInput struct {
    Name        *string   `json:"name,omitempty"`
    Description *string   `json:"description,omitempty"`
    Address     *string   `json:"address,omitempty"`
    City        *string   `json:"city,omitempty"`
    Country     *string   `json:"country,omitempty"`
    ZipCode     *string   `json:"zipCode,omitempty"`
    Latitude    *float64  `json:"latitude,omitempty"`
    Longitude   *float64  `json:"longitude,omitempty"`
    StarRating  *int      `json:"starRating,omitempty"`
    Images      *[]string `json:"images,omitempty"`
    Amenities   *[]string `json:"amenities,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (in UpdateHotelInput) Empty() bool {
    return in.Name == nil && in.Description == nil && in.Address == nil && in.City == nil &&
        in.Country == nil && in.ZipCode == nil && in.Latitude == nil && in.Longitude == nil &&
        in.StarRating == nil && in.Images == nil && in.Amenities == nil
}

// Apply copies the non-nil fields of the patch onto h.
func (in UpdateHotelInput) Apply(h *Hotel) {
    if in.Name != nil {
        h.Name = *in.Name
    }
    if in.Description != nil {
        h.Description = *in.Description
    }
    if in.Address != nil {
        h.Address = *in.Address
    }
    if in.City != nil {
        h.City = *in.City
    }
    if in.Country != nil {
        h.Country = *in.Country
    }
    if in.ZipCode != nil {
        h.ZipCode = *in.ZipCode
    }
    if in.Latitude != nil {
        h.Latitude = *in.Latitude
    }
    if in.Longitude != nil {
        h.Longitude = *in.Longitude
    }
    if in.StarRating != nil {
        h.StarRating = *in.StarRating
    }
    if in.Images != nil {
        h.Images = *in.Images
    }
    if in.Amenities != nil {
        h.Amenities = *in.Amenities
    }
}

// HotelSearchQuery defines filters & pagination for searching hotels.
type HotelSearchQuery struct {
    City       string
    Country    string
    StarRating int
    Guests     int
    MinPrice   *float64
    MaxPrice   *float64
    SortBy     string // name | rating
    SortOrder  string // asc | desc
    Page       int
    Limit      int
}

// HotelSearchResult is one page of search results.
type HotelSearchResult struct {
    Items []Hotel `json:"items"`
    Total int64   `json:"total"`
    Page  int     `json:"page"`
    Limit int     `json:"limit"`
}
