// Package images loads avatars and review photos and renders them as ANSI
// thumbnails.
package images

import (
	"fmt"
	"image"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache holds decoded images by URL and evicts the least recently used
// entry once full. It is safe for concurrent use.
type Cache struct {
	lru *lru.Cache[string, image.Image]
}

// NewCache creates a cache holding at most size images.
func NewCache(size int) (*Cache, error) {
	c, err := lru.New[string, image.Image](size)
	if err != nil {
		return nil, fmt.Errorf("image cache: %w", err)
	}
	return &Cache{lru: c}, nil
}

// Get returns the image for url and marks it recently used.
func (c *Cache) Get(url string) (image.Image, bool) {
	return c.lru.Get(url)
}

// Add stores img under url, evicting the oldest entry if needed.
func (c *Cache) Add(url string, img image.Image) {
	c.lru.Add(url, img)
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	return c.lru.Len()
}
