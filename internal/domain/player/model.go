package player

import (
	"fmt"
	"strings"
)

// Player is one entry of the league player roster.
type Player struct {
	ID       string `validate:"required,startswith=PLY-"`
	TeamID   string
	Name     string `validate:"required"`
	Nation   string
	Position string
	Squad    string
	Age      string
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}

	return nil
}
