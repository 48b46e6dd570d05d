package providers

import (
	"comicbot/internal/structures"
	"fmt"
	"github.com/gookit/validate"
	"strings"
	"time"
)

const NotifyAtLayout = "15:04"

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate checks struct tag rules first, then the values gookit cannot express.
func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %w", v.Errors)
	}

	notifyAt, err := NormalizeNotifyAt(cv.conf.Scheduler.NotifyAt)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cv.conf.Scheduler.NotifyAt = notifyAt
	if _, err := LoadLocation(cv.conf.Scheduler.Timezone); err != nil {
		return fmt.Errorf("invalid config: scheduler.timezone: %w", err)
	}
	return nil
}

// NormalizeNotifyAt parses a time of day and returns it zero padded, so "8:00" becomes "08:00"
// and compares equal to a clock formatted with NotifyAtLayout.
func NormalizeNotifyAt(value string) (string, error) {
	at, err := time.Parse(NotifyAtLayout, strings.TrimSpace(value))
	if err != nil {
		return "", fmt.Errorf("scheduler.notifyAt %q is not HH:MM", value)
	}
	return at.Format(NotifyAtLayout), nil
}

// LoadLocation resolves the configured timezone; empty means the process local zone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}
