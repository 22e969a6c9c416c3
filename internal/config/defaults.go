package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

//go:embed defaults/shooter.yaml
var defaultShooterYAML []byte

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultYAML returns the embedded default file for a game, for `arcade config dump`.
func DefaultYAML(gameID string) ([]byte, bool) {
	switch gameID {
	case "breakout":
		return defaultBreakoutYAML, true
	case "shooter":
		return defaultShooterYAML, true
	case "snake":
		return defaultSnakeYAML, true
	}
	return nil, false
}
