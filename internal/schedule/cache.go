package schedule

import (
	"slices"
	"sync"

	"confsched/internal/model"
)

// Cache keeps the latest built schedule per year. Schedules are replaced
// wholesale; a stored schedule is never modified.
type Cache struct {
	mu     sync.RWMutex
	byYear map[int]*model.Schedule
}

func NewCache() *Cache {
	return &Cache{byYear: make(map[int]*model.Schedule)}
}

// Get returns the cached schedule for year.
func (c *Cache) Get(year int) (*model.Schedule, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.byYear[year]
	return s, ok
}

// Put stores s under its own year.
func (c *Cache) Put(s *model.Schedule) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byYear[s.Year] = s
}

// Years lists cached years in ascending order.
func (c *Cache) Years() []int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	years := make([]int, 0, len(c.byYear))
	for y := range c.byYear {
		years = append(years, y)
	}
	slices.Sort(years)
	return years
}

// Refresh builds in and stores the result. On failure the previously
// cached schedule for the year stays in place.
func (c *Cache) Refresh(in Input) (*model.Schedule, error) {
	s, err := Build(in)
	if err != nil {
		return nil, err
	}
	c.Put(s)
	return s, nil
}
