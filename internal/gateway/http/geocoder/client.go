package geocoder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"routing/internal/entities"
	"routing/internal/pkg/config"
	"routing/internal/service/planning"
	"routing/pkg/logger"
	retrierconfig "routing/pkg/retrier"
	"routing/pkg/retrier/backoff_adapter"
)

const (
	initialInterval = 200 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 5 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("geocoder status %d: %s", e.Code, e.Body)
}

type Client struct {
	baseURL    string
	apiKey     string
	country    string
	httpClient *http.Client
	cache      cache
	retrier    retrier
	log        clientLogger
}

func New(cfg config.Geocoder, cache cache, log clientLogger) *Client {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     isRetryable,
		OnRetry: func(error, time.Duration) {
			GeocoderRetriesTotal.Inc()
		},
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		country:    cfg.Country,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cache:      cache,
		retrier:    backoff_adapter.New(retryConfig),
		log:        log,
	}
}

// Geocode адрес не найден - planning.ErrGeocodeNotFound.
func (c *Client) Geocode(ctx context.Context, addressLine, city, region string) (entities.GeoPoint, error) {
	text := (&entities.Order{AddressLine: addressLine, City: city, Region: region}).Address()
	if text == "" {
		return entities.GeoPoint{}, fmt.Errorf("%w: empty address", planning.ErrGeocodeNotFound)
	}

	key := CacheKey(text)

	point, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.log.Warn("geocode cache get failed", logger.NewField("error", err))
	}
	if ok {
		GeocodeCacheTotal.WithLabelValues("hit").Inc()
		return point, nil
	}
	GeocodeCacheTotal.WithLabelValues("miss").Inc()

	point, err = c.search(ctx, text)
	if err != nil {
		return entities.GeoPoint{}, err
	}

	err = c.cache.Set(ctx, key, point)
	if err != nil {
		c.log.Warn("geocode cache set failed", logger.NewField("error", err))
	}

	return point, nil
}

// CacheKey регистр и лишние пробелы не влияют на ключ.
func CacheKey(address string) string {
	return strings.ToLower(strings.Join(strings.Fields(address), " "))
}

func (c *Client) search(ctx context.Context, text string) (entities.GeoPoint, error) {
	var point entities.GeoPoint
	start := time.Now()

	err := c.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		var err error
		point, err = c.searchOnce(ctx, text)
		return err
	})

	GeocoderRequestDuration.WithLabelValues(resultLabel(err)).Observe(time.Since(start).Seconds())

	if err != nil {
		return entities.GeoPoint{}, fmt.Errorf("geocode %q: %w", text, err)
	}
	return point, nil
}

func (c *Client) searchOnce(ctx context.Context, text string) (entities.GeoPoint, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/geocode/search", nil)
	if err != nil {
		return entities.GeoPoint{}, fmt.Errorf("create request: %w", err)
	}

	q := req.URL.Query()
	q.Set("text", text)
	q.Set("size", "1")
	if c.country != "" {
		q.Set("boundary.country", c.country)
	}
	req.URL.RawQuery = q.Encode()

	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return entities.GeoPoint{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return entities.GeoPoint{}, &httpStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	var decoded searchResponse
	err = json.NewDecoder(resp.Body).Decode(&decoded)
	if err != nil {
		return entities.GeoPoint{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return entities.GeoPoint{}, planning.ErrGeocodeNotFound
	}

	f := decoded.Features[0]
	if len(f.Geometry.Coordinates) != 2 {
		return entities.GeoPoint{}, fmt.Errorf("invalid coordinate format for %q", text)
	}

	return entities.GeoPoint{
		Lon:        f.Geometry.Coordinates[0],
		Lat:        f.Geometry.Coordinates[1],
		PostalCode: f.Properties.PostalCode,
	}, nil
}

// isRetryable сетевые ошибки, 429 и 5xx.
func isRetryable(err error) bool {
	if err == nil || errors.Is(err, planning.ErrGeocodeNotFound) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, planning.ErrGeocodeNotFound):
		return "not_found"
	default:
		return "error"
	}
}
