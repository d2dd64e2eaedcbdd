package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "sync"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "go.uber.org/zap"
)

// Consumer listens on every booking queue and appends one line per event
// to <dir>/booking.log.
type Consumer struct {
    url string
    dir string
    log *zap.Logger

    mu sync.Mutex // serializes writes to the log file
}

func NewConsumer(url, dir string, log *zap.Logger) *Consumer {
    if dir == "" {
        dir = "logs"
    }
    return &Consumer{url: url, dir: dir, log: log}
}

// LogPath is the file events are appended to.
func (c *Consumer) LogPath() string { return filepath.Join(c.dir, "booking.log") }

// Run connects to RabbitMQ and consumes until ctx is cancelled.  Dial
// failures are retried with exponential backoff capped at 30s; a dropped
// connection is reopened.  Messages that cannot be handled are rejected
// without requeue so they cannot spin.
func (c *Consumer) Run(ctx context.Context) error {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(c.url)
        if err != nil {
            c.log.Warn("booking-consumer: dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < 30*time.Second {
                backoff *= 2
                if backoff > 30*time.Second {
                    backoff = 30 * time.Second
                }
            }
            continue
        }
        backoff = time.Second // reset after successful connect

        err = c.consume(ctx, conn)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        c.log.Warn("booking-consumer: consume loop ended, reconnecting", zap.Error(err))
        if !sleep(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        c.log.Warn("booking-consumer: set QoS failed", zap.Error(err))
    }

    deliveries := make(chan amqp.Delivery)
    done := make(chan struct{})
    defer close(done)
    var wg sync.WaitGroup
    for _, name := range Queues {
        if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
            return fmt.Errorf("queue declare %s: %w", name, err)
        }
        msgs, err := ch.Consume(name, "", false, false, false, false, nil)
        if err != nil {
            return fmt.Errorf("queue consume %s: %w", name, err)
        }
        wg.Add(1)
        go func(msgs <-chan amqp.Delivery) {
            defer wg.Done()
            for d := range msgs {
                select {
                case deliveries <- d:
                case <-done:
                    return
                }
            }
        }(msgs)
    }
    go func() {
        wg.Wait()
        close(deliveries)
    }()

    c.log.Info("booking-consumer: listening", zap.Strings("queues", Queues), zap.String("log", c.LogPath()))
    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok := <-deliveries:
            if !ok {
                return errors.New("deliveries channel closed")
            }
            if err := c.HandleMessage(d.Body); err != nil {
                c.log.Error("booking-consumer: handle message failed", zap.String("queue", d.RoutingKey), zap.Error(err))
                _ = d.Nack(false, false)
                continue
            }
            _ = d.Ack(false)
        }
    }
}

// HandleMessage decodes one event and appends it to the booking log.
func (c *Consumer) HandleMessage(body []byte) error {
    var ev BookingEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if ev.BookingID == "" || ev.Type == "" {
        return errors.New("event without type or booking id")
    }

    c.mu.Lock()
    defer c.mu.Unlock()

    if err := os.MkdirAll(c.dir, 0o755); err != nil {
        return fmt.Errorf("mkdir %s: %w", c.dir, err)
    }
    f, err := os.OpenFile(c.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()

    if _, err := f.WriteString(FormatLine(ev)); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}

// FormatLine renders ev as a single human-friendly log line.
func FormatLine(ev BookingEvent) string {
    line := fmt.Sprintf("[%s] %s | booking_id=%s | user_id=%s | hotel_id=%s | room_id=%s | check_in=%s | check_out=%s | guests=%d | total=%s | status=%s",
        ev.OccurredAt, ev.Type, ev.BookingID, ev.UserID, ev.HotelID, ev.RoomID, ev.CheckIn, ev.CheckOut, ev.Guests, ev.TotalPrice, ev.Status)
    if ev.PaymentID != "" {
        line += " | payment_id=" + ev.PaymentID
    }
    return line + "\n"
}

func sleep(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}
