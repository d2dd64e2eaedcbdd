package handler

import (
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/hotel-booking/internal/model"
    "github.com/iliyamo/hotel-booking/internal/service"
)

// SearchHandler serves GET /v1/search/hotels.
type SearchHandler struct {
    Search *service.SearchService
    Log    *zap.Logger
}

func NewSearchHandler(search *service.SearchService, log *zap.Logger) *SearchHandler {
    return &SearchHandler{Search: search, Log: log}
}

// Hotels filters by city, country, starRating, guests, minPrice and maxPrice,
// sorted by sortBy/sortOrder and paginated by page/limit.
func (h *SearchHandler) Hotels(c echo.Context) error {
    q, bad := searchQuery(c)
    if bad != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": bad + " must be a number"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    res, err := h.Search.SearchHotels(ctx, q)
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, res)
}

// searchQuery reads the query string.  It returns the name of the first
// malformed numeric parameter, if any.
func searchQuery(c echo.Context) (model.HotelSearchQuery, string) {
    q := model.HotelSearchQuery{
        City:      strings.TrimSpace(c.QueryParam("city")),
        Country:   strings.TrimSpace(c.QueryParam("country")),
        SortBy:    strings.ToLower(strings.TrimSpace(c.QueryParam("sortBy"))),
        SortOrder: strings.ToLower(strings.TrimSpace(c.QueryParam("sortOrder"))),
    }
    ints := []struct {
        name string
        dst  *int
    }{
        {"starRating", &q.StarRating},
        {"guests", &q.Guests},
        {"page", &q.Page},
        {"limit", &q.Limit},
    }
    for _, p := range ints {
        v := strings.TrimSpace(c.QueryParam(p.name))
        if v == "" {
            continue
        }
        n, err := strconv.Atoi(v)
        if err != nil {
            return q, p.name
        }
        *p.dst = n
    }
    floats := []struct {
        name string
        dst  **float64
    }{
        {"minPrice", &q.MinPrice},
        {"maxPrice", &q.MaxPrice},
    }
    for _, p := range floats {
        v := strings.TrimSpace(c.QueryParam(p.name))
        if v == "" {
            continue
        }
        f, err := strconv.ParseFloat(v, 64)
        if err != nil {
            return q, p.name
        }
        *p.dst = &f
    }
    return q, ""
}
