package geocode_cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"routing/internal/entities"
)

const keyPrefix = "geocode:"

type pointDTO struct {
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	PostalCode string  `json:"postal_code,omitempty"`
}

// Cache адрес -> координаты. Состояние заказов и маршрутов здесь не хранится.
type Cache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func New(client redis.Cmdable, ttl time.Duration) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
	}
}

func (c *Cache) Get(ctx context.Context, key string) (entities.GeoPoint, bool, error) {
	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return entities.GeoPoint{}, false, nil
		}
		return entities.GeoPoint{}, false, fmt.Errorf("geocode cache get: %w", err)
	}

	var dto pointDTO
	err = json.Unmarshal(raw, &dto)
	if err != nil {
		return entities.GeoPoint{}, false, fmt.Errorf("geocode cache decode: %w", err)
	}

	return entities.GeoPoint{Lat: dto.Lat, Lon: dto.Lon, PostalCode: dto.PostalCode}, true, nil
}

func (c *Cache) Set(ctx context.Context, key string, point entities.GeoPoint) error {
	raw, err := json.Marshal(pointDTO{Lat: point.Lat, Lon: point.Lon, PostalCode: point.PostalCode})
	if err != nil {
		return fmt.Errorf("geocode cache encode: %w", err)
	}

	err = c.client.Set(ctx, keyPrefix+key, raw, c.ttl).Err()
	if err != nil {
		return fmt.Errorf("geocode cache set: %w", err)
	}
	return nil
}
