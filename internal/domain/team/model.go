package team

import (
	"fmt"
	"strings"
)

// Team is one club of the catalog.
type Team struct {
	ID       string `validate:"required,startswith=TEAM-"`
	Name     string `validate:"required"`
	Stadium  string
	City     string
	Capacity int `validate:"gte=0"`
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if t.Capacity < 0 {
		return fmt.Errorf("team capacity must be >= 0")
	}

	return nil
}
