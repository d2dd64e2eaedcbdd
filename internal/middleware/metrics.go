package middleware

import (
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"
)

var (
    httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
        Name: "hotel_http_requests_total",
        Help: "HTTP requests by method, route and status code.",
    }, []string{"method", "route", "status"})

    httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
        Name:    "hotel_http_request_duration_seconds",
        Help:    "HTTP request latency by method and route.",
        Buckets: prometheus.DefBuckets,
    }, []string{"method", "route"})

    rateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
        Name: "hotel_rate_limited_total",
        Help: "Requests rejected by the rate limiter, by route.",
    }, []string{"route"})
)

// Metrics records request counts and latency labelled by the route
// template, so /v1/users/:id is one series whatever the id.
func Metrics() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            start := time.Now()
            err := next(c)
            status := c.Response().Status
            if err != nil && !c.Response().Committed {
                status = http.StatusInternalServerError
                var he *echo.HTTPError
                if errors.As(err, &he) {
                    status = he.Code
                }
            }
            route := c.Path()
            if route == "" {
                route = "unmatched"
            }
            method := c.Request().Method
            httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
            httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
            return err
        }
    }
}
