package transport

import (
	"fmt"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-accordion/internal/runtimeconfig"
)

// RouteResolver builds ajax URLs from go-urlkit routes.
type RouteResolver struct {
	manager *urlkit.RouteManager

	groupCache map[string]*urlkit.Group
	mu         sync.RWMutex
}

// NewRouteResolver constructs a resolver for the configured route groups.
func NewRouteResolver(routes runtimeconfig.RoutesConfig) (*RouteResolver, error) {
	cfg := routes.URLKit()
	if cfg == nil {
		return nil, fmt.Errorf("transport: no route groups configured")
	}
	manager, err := newManager(cfg)
	if err != nil {
		return nil, err
	}
	return NewRouteResolverWithManager(manager), nil
}

// NewRouteResolverWithManager wraps an existing route manager.
func NewRouteResolverWithManager(manager *urlkit.RouteManager) *RouteResolver {
	return &RouteResolver{
		manager:    manager,
		groupCache: make(map[string]*urlkit.Group),
	}
}

// Resolve renders ref into a URL. Group may be a dotted path to a nested group.
func (r *RouteResolver) Resolve(ref runtimeconfig.RouteRef) (string, error) {
	if r == nil || r.manager == nil {
		return "", fmt.Errorf("transport: route manager not configured")
	}
	groupPath := strings.TrimSpace(ref.Group)
	routeName := strings.TrimSpace(ref.Name)
	if groupPath == "" || routeName == "" {
		return "", fmt.Errorf("transport: route group and name are required")
	}

	group, err := r.groupForPath(groupPath)
	if err != nil {
		return "", err
	}
	builder, err := safeBuilder(group, routeName)
	if err != nil {
		return "", err
	}
	for key, val := range ref.Params {
		builder.WithParam(key, val)
	}
	for key, val := range ref.Query {
		builder.WithQuery(key, val)
	}
	return safeBuild(builder, routeName)
}

func (r *RouteResolver) groupForPath(path string) (*urlkit.Group, error) {
	r.mu.RLock()
	group, ok := r.groupCache[path]
	r.mu.RUnlock()
	if ok {
		return group, nil
	}

	parts := strings.Split(path, ".")
	current, err := lookupGroup(r.manager, parts[0])
	if err != nil {
		return nil, err
	}
	for _, part := range parts[1:] {
		current, err = lookupChildGroup(current, part)
		if err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	r.groupCache[path] = current
	r.mu.Unlock()
	return current, nil
}

func newManager(cfg *urlkit.Config) (manager *urlkit.RouteManager, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("transport: invalid route configuration: %v", rec)
		}
	}()
	manager = urlkit.NewRouteManager(cfg)
	return manager, err
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("transport: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("transport: route %q not found: %v", route, rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}

func safeBuild(builder *urlkit.Builder, route string) (url string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("transport: build route %q: %v", route, rec)
		}
	}()
	return builder.Build()
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("transport: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	if group == nil {
		return nil, fmt.Errorf("transport: route group %q not found", name)
	}
	return group, err
}

func lookupChildGroup(parent *urlkit.Group, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("transport: child group %q not found", name)
		}
	}()
	group = parent.Group(name)
	if group == nil {
		return nil, fmt.Errorf("transport: child group %q not found", name)
	}
	return group, err
}
