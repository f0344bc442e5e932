package cache

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"

	"mdx-press/config"
)

// ContentHTMLPrefix ist der Namespace für gecachte, gerenderte Artikel-Inhalte.
const ContentHTMLPrefix = "content_html"

// ErrMiss wird zurückgegeben, wenn ein Schlüssel nicht im Cache liegt.
var ErrMiss = errors.New("cache: key not found")

// Client kapselt den Redis-Zugriff für den Render-Cache.
type Client struct {
	rdb *redis.Client
}

// NewClient erstellt einen Redis-Client aus der Konfiguration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		rdb: redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}),
	}
}

// Ping prüft die Verbindung zum Redis-Server.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Key joins the given parts into a namespaced cache key.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// Get liefert den Wert zu einem Schlüssel oder ErrMiss.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	value, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	return value, err
}

// Set speichert einen Wert ohne Ablaufzeit; Einträge werden beim nächsten
// Inhaltswechsel überschrieben bzw. beim Löschen des Artikels entfernt.
func (c *Client) Set(ctx context.Context, key, value string) error {
	return c.rdb.Set(ctx, key, value, 0).Err()
}

// Delete entfernt einen Schlüssel aus dem Cache.
func (c *Client) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}
