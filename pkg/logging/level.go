package logging

import (
	"strings"

	"go.llib.dev/bimap/pkg/errorkit"
)

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelFatal Level = "fatal"
)

const ErrUnknownLevel errorkit.Error = "ErrUnknownLevel"

type Level string

func (ll Level) String() string { return string(ll) }

var defaultLevel Level = LevelInfo

var levelPriorityMapping = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
	LevelFatal: 4,

	*new(Level): 1, // zero Level is LevelInfo
}

// ParseLevel accepts the level names case insensitively.
// An empty string is the default level.
func ParseLevel(raw string) (Level, error) {
	lvl := Level(strings.ToLower(strings.TrimSpace(raw)))
	if lvl == "" {
		return defaultLevel, nil
	}
	if _, ok := levelPriorityMapping[lvl]; !ok {
		return "", ErrUnknownLevel.F("%q", raw)
	}
	return lvl, nil
}

func isLevelEnabled(target, level Level) bool {
	return levelPriorityMapping[target] <= levelPriorityMapping[level]
}
