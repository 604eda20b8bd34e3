// Package module defines the feature contract used by web composition.
package module

import (
	"net/http"
	"time"

	"github.com/louisbranch/lingo/internal/services/web/browser"
	"github.com/louisbranch/lingo/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/lingo/internal/services/web/view"
	"go.uber.org/zap"
)

// Dependencies carries the shared services modules are built with.
type Dependencies struct {
	Browsers *browser.Manager
	Reader   view.Reader
	Policy   requestmeta.SchemePolicy
	Logger   *zap.Logger
	Now      func() time.Time
}

// WithDefaults fills optional fields.
func (d Dependencies) WithDefaults() Dependencies {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}
