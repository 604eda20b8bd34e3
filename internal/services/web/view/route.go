// Package view resolves browser routes into page requests and loads the
// data those pages show.
package view

import (
	"strings"

	"github.com/louisbranch/lingo/internal/services/web/routepath"
)

// Route is the closed set of pages the app renders.
type Route int

const (
	RouteUnknown Route = iota
	RouteDashboard
	RouteGlossary
	RouteReflections
	RouteTeams
)

// Routes lists every navigable route in navigation order.
func Routes() []Route {
	return []Route{RouteDashboard, RouteGlossary, RouteReflections, RouteTeams}
}

// ParseRoute maps a URL path to a route. A single trailing slash is
// tolerated; anything else unrecognized is RouteUnknown.
func ParseRoute(path string) Route {
	path = strings.TrimSpace(path)
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	switch path {
	case "", routepath.Root:
		return RouteDashboard
	case routepath.Glossary:
		return RouteGlossary
	case routepath.Reflections:
		return RouteReflections
	case routepath.Teams:
		return RouteTeams
	default:
		return RouteUnknown
	}
}

// Path returns the canonical URL path of r.
func (r Route) Path() string {
	switch r {
	case RouteDashboard:
		return routepath.Root
	case RouteGlossary:
		return routepath.Glossary
	case RouteReflections:
		return routepath.Reflections
	case RouteTeams:
		return routepath.Teams
	default:
		return ""
	}
}

// String returns a stable identifier used for element ids and logs.
func (r Route) String() string {
	switch r {
	case RouteDashboard:
		return "dashboard"
	case RouteGlossary:
		return "glossary"
	case RouteReflections:
		return "reflections"
	case RouteTeams:
		return "teams"
	default:
		return "unknown"
	}
}

// TitleKey returns the message key of the page title.
func (r Route) TitleKey() string {
	return "page." + r.String() + ".title"
}
