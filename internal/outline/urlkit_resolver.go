package outline

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-curriculum/outline"
	"github.com/goliatone/go-curriculum/pkg/interfaces"
)

// URLKitResolverOptions configures the go-urlkit backed entry resolver.
type URLKitResolverOptions struct {
	Manager *urlkit.RouteManager
	// Group is the route group path, dot-separated for nested groups.
	Group string
	// Route names the lesson route inside the group, e.g. "lesson".
	Route string
	// OrdinalParam is the route parameter carrying the lesson ordinal
	// (defaults to "ordinal").
	OrdinalParam string
	// SlugParam, when set, carries the target filename stem.
	SlugParam string
}

// URLKitResolver resolves outline entry URLs using a go-urlkit RouteManager.
type URLKitResolver struct {
	manager      *urlkit.RouteManager
	group        string
	route        string
	ordinalParam string
	slugParam    string

	groupCache map[string]*urlkit.Group
	mu         sync.RWMutex
}

// NewURLKitResolver constructs a resolver backed by go-urlkit.
func NewURLKitResolver(opts URLKitResolverOptions) *URLKitResolver {
	if opts.OrdinalParam == "" {
		opts.OrdinalParam = "ordinal"
	}

	return &URLKitResolver{
		manager:      opts.Manager,
		group:        strings.TrimSpace(opts.Group),
		route:        strings.TrimSpace(opts.Route),
		ordinalParam: opts.OrdinalParam,
		slugParam:    strings.TrimSpace(opts.SlugParam),
		groupCache:   make(map[string]*urlkit.Group),
	}
}

// Resolve builds a URL for the entry using the configured route manager.
func (r *URLKitResolver) Resolve(ctx context.Context, entry interfaces.OutlineEntryRecord) (string, error) {
	_ = ctx // reserved for future use
	if r == nil || r.manager == nil {
		return "", outline.ErrResolverNotSet
	}
	if r.group == "" || r.route == "" {
		return "", outline.ErrResolverNotSet
	}

	group, err := r.groupForPath(r.group)
	if err != nil || group == nil {
		return "", err
	}

	builder, err := r.safeBuilder(group, r.route)
	if err != nil {
		return "", err
	}

	builder.WithParam(r.ordinalParam, strconv.Itoa(entry.Ordinal))
	if r.slugParam != "" {
		builder.WithParam(r.slugParam, targetStem(entry.Target))
	}

	url, err := builder.Build()
	if err != nil {
		return "", err
	}
	return url, nil
}

func targetStem(target string) string {
	stem := strings.TrimSpace(target)
	if idx := strings.LastIndex(stem, "/"); idx >= 0 {
		stem = stem[idx+1:]
	}
	return strings.TrimSuffix(strings.ToLower(stem), ".md")
}

func (r *URLKitResolver) groupForPath(path string) (*urlkit.Group, error) {
	r.mu.RLock()
	group, ok := r.groupCache[path]
	r.mu.RUnlock()
	if ok {
		return group, nil
	}

	parts := strings.Split(path, ".")
	if len(parts) == 0 {
		return nil, fmt.Errorf("outline: invalid route group path %q", path)
	}

	root, err := lookupGroup(r.manager, parts[0])
	if err != nil {
		return nil, err
	}
	current := root
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

func (r *URLKitResolver) safeBuilder(group *urlkit.Group, route string) (*urlkit.Builder, error) {
	if group == nil {
		return nil, fmt.Errorf("outline: urlkit group is nil")
	}
	var (
		builder *urlkit.Builder
		err     error
	)
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("outline: urlkit builder panic: %v", rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}

func lookupGroup(manager *urlkit.RouteManager, name string) (*urlkit.Group, error) {
	if manager == nil {
		return nil, fmt.Errorf("outline: route manager not configured")
	}
	var (
		group *urlkit.Group
		err   error
	)
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("outline: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, err
}

func lookupChildGroup(parent *urlkit.Group, name string) (*urlkit.Group, error) {
	if parent == nil {
		return nil, fmt.Errorf("outline: parent group is nil")
	}
	var (
		group *urlkit.Group
		err   error
	)
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("outline: child group %q not found", name)
		}
	}()
	group = parent.Group(name)
	return group, err
}
