package scheduler

import (
	"comicbot/internal/models"
	"go.uber.org/atomic"
	"time"
)

// Checkpoint remembers the last calendar day the daily pass completed. It lives in memory only.
type Checkpoint struct {
	last *atomic.String
}

func NewCheckpoint() *Checkpoint {
	return &Checkpoint{last: atomic.NewString("")}
}

func (c *Checkpoint) Done(day time.Time) bool {
	return c.last.Load() == day.Format(models.StoreDateLayout)
}

func (c *Checkpoint) Mark(day time.Time) {
	c.last.Store(day.Format(models.StoreDateLayout))
}

func (c *Checkpoint) Last() string {
	return c.last.Load()
}
