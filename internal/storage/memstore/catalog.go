package memstore

import (
	"sync"

	"github.com/BearBump/DVCPortal/internal/models"
)

// Catalog holds the service dataset. Only Service.Views ever changes after
// load; it is incremented under the write lock so concurrent detail fetches
// never lose an update.
type Catalog struct {
	mu         sync.RWMutex
	categories []models.Category
	services   []models.Service
	byID       map[string]int
	news       []models.NewsItem
	statistics map[string]any
	elections  map[string]any
}

func NewCatalog(ds models.Dataset) *Catalog {
	c := &Catalog{
		categories: append([]models.Category(nil), ds.Categories...),
		services:   make([]models.Service, len(ds.Services)),
		byID:       make(map[string]int, len(ds.Services)),
		news:       append([]models.NewsItem(nil), ds.News...),
		statistics: ds.Statistics,
		elections:  ds.Elections,
	}
	for i, s := range ds.Services {
		s.RelatedServices = append([]string(nil), s.RelatedServices...)
		c.services[i] = s
		c.byID[s.ID] = i
	}
	if c.statistics == nil {
		c.statistics = map[string]any{}
	}
	if c.elections == nil {
		c.elections = map[string]any{}
	}
	return c
}

// Services returns a snapshot in load order.
func (c *Catalog) Services() []models.Service {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Service, len(c.services))
	copy(out, c.services)
	return out
}

func (c *Catalog) Categories() []models.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

func (c *Catalog) Category(id string) (models.Category, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, cat := range c.categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return models.Category{}, false
}

func (c *Catalog) Service(id string) (models.Service, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.byID[id]
	if !ok {
		return models.Service{}, false
	}
	return c.services[i], true
}

// IncrementViews bumps the view counter and returns the updated service.
func (c *Catalog) IncrementViews(id string) (models.Service, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.byID[id]
	if !ok {
		return models.Service{}, false
	}
	c.services[i].Views++
	return c.services[i], true
}

func (c *Catalog) News() []models.NewsItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.NewsItem, len(c.news))
	copy(out, c.news)
	return out
}

// Statistics and ElectionInfo are read-only after load and returned as is.
func (c *Catalog) Statistics() map[string]any { return c.statistics }

func (c *Catalog) ElectionInfo() map[string]any { return c.elections }
