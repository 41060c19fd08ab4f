package restapi

import (
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/runtime/syncutils"
)

// RouteMatcher matches request paths against a list of route patterns. A pattern is either a raw
// regex starting with "^" or a path where "*" matches anything.
type RouteMatcher struct {
	regexes []*regexp.Regexp
}

func NewRouteMatcher(routes ...[]string) (*RouteMatcher, error) {
	matcher := &RouteMatcher{}

	for _, group := range routes {
		for _, route := range group {
			regex, err := compileRoute(route)
			if err != nil {
				return nil, err
			}

			matcher.regexes = append(matcher.regexes, regex)
		}
	}

	return matcher, nil
}

// Match is case-insensitive.
func (m *RouteMatcher) Match(path string) bool {
	loweredPath := strings.ToLower(path)

	for _, regex := range m.regexes {
		if regex.MatchString(loweredPath) {
			return true
		}
	}

	return false
}

func compileRoute(route string) (*regexp.Regexp, error) {
	expression := route
	if !strings.HasPrefix(route, "^") {
		expression = strings.ReplaceAll(regexp.QuoteMeta(strings.ToLower(route)), `\*`, "(.*?)") + "$"
	}

	regex, err := regexp.Compile(expression)
	if err != nil {
		return nil, ierrors.Wrapf(err, "invalid route in config: %s", route)
	}

	return regex, nil
}

// RestRouteManager keeps track of the route groups registered below /api.
type RestRouteManager struct {
	echo *echo.Echo

	routes      []string
	routesMutex syncutils.RWMutex
}

func NewRestRouteManager(e *echo.Echo) *RestRouteManager {
	return &RestRouteManager{
		echo:   e,
		routes: make([]string, 0),
	}
}

// AddRoute registers the group /api/<route> and returns it.
func (m *RestRouteManager) AddRoute(route string) *echo.Group {
	m.routesMutex.Lock()
	defer m.routesMutex.Unlock()

	m.routes = append(m.routes, route)

	return m.echo.Group("/api/" + route)
}

func (m *RestRouteManager) Routes() []string {
	m.routesMutex.RLock()
	defer m.routesMutex.RUnlock()

	return append(make([]string, 0, len(m.routes)), m.routes...)
}
