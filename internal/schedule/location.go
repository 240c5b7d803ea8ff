package schedule

import (
	"fmt"
	"time"

	"agendad/internal/structures"
)

// NewLocation loads the single calendar zone every timestamp in the system
// is interpreted in.
func NewLocation(conf *structures.Config) (*time.Location, error) {
	loc, err := time.LoadLocation(conf.Schedule.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule timezone %q: %w", conf.Schedule.Timezone, err)
	}
	return loc, nil
}
