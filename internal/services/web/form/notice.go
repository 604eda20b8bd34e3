package form

import (
	"time"

	"github.com/louisbranch/lingo/internal/platform/timeouts"
)

// Level classifies how a notice is presented.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// Notice is a dismissible message for the user. Key is a message catalog
// key; Args fill its verbs.
type Notice struct {
	Level        Level
	Key          string
	Args         []string
	DismissAfter time.Duration
}

// Success builds a success notice that auto-dismisses.
func Success(key string, args ...string) Notice {
	return Notice{Level: LevelSuccess, Key: key, Args: args, DismissAfter: timeouts.NoticeDismiss}
}

// Warning builds a warning notice that auto-dismisses.
func Warning(key string) Notice {
	return Notice{Level: LevelWarning, Key: key, DismissAfter: timeouts.NoticeDismiss}
}

// Danger builds an error notice that stays until dismissed.
func Danger(key string, args ...string) Notice {
	return Notice{Level: LevelDanger, Key: key, Args: args}
}

// Info builds an informational notice that auto-dismisses.
func Info(key string) Notice {
	return Notice{Level: LevelInfo, Key: key, DismissAfter: timeouts.NoticeDismiss}
}
