package server

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kbukum/sypnna/component"
)

const componentName = "http-server"

var (
	_ component.Component     = (*ServerComponent)(nil)
	_ component.Describable   = (*ServerComponent)(nil)
	_ component.RouteProvider = (*ServerComponent)(nil)
)

// systemPaths are labeled in the startup summary and listed after API routes.
var systemPaths = map[string]bool{
	"/health": true,
	"/info":   true,
}

// ServerComponent wraps Server to implement component.Component.
type ServerComponent struct {
	server *Server
}

// NewComponent returns a component.Component backed by the given Server.
func NewComponent(s *Server) *ServerComponent {
	return &ServerComponent{server: s}
}

func (sc *ServerComponent) Name() string { return componentName }

func (sc *ServerComponent) Start(ctx context.Context) error {
	return sc.server.Start(ctx)
}

func (sc *ServerComponent) Stop(ctx context.Context) error {
	return sc.server.Stop(ctx)
}

func (sc *ServerComponent) Health(ctx context.Context) component.Health {
	if sc.server.listener == nil {
		return component.Health{
			Name:    componentName,
			Status:  component.StatusUnhealthy,
			Message: "not listening",
		}
	}
	return component.Health{Name: componentName, Status: component.StatusHealthy, Message: sc.server.Addr()}
}

func (sc *ServerComponent) Describe() component.Description {
	cfg := sc.server.config
	return component.Description{
		Name:    "HTTP Server",
		Type:    "server",
		Details: fmt.Sprintf("%s write_timeout=%ds max_body=%s", cfg.Addr(), cfg.WriteTimeout, cfg.MaxBodySize),
		Port:    cfg.Port,
	}
}

// Routes returns the registered routes, API routes first. Routes registered
// for every method are collapsed into one ANY entry.
func (sc *ServerComponent) Routes() []component.Route {
	ginRoutes := sc.server.engine.Routes()

	methods := make(map[string]int)
	for _, r := range ginRoutes {
		methods[r.Path]++
	}

	seen := make(map[string]bool)
	routes := make([]component.Route, 0, len(ginRoutes))
	for _, r := range ginRoutes {
		method := r.Method
		if methods[r.Path] >= anyMethodCount {
			if seen[r.Path] {
				continue
			}
			seen[r.Path] = true
			method = "ANY"
		}
		handler := formatHandlerName(r.Handler)
		if systemPaths[r.Path] {
			handler += " ⚙️"
		}
		routes = append(routes, component.Route{Method: method, Path: r.Path, Handler: handler})
	}

	sort.SliceStable(routes, func(i, j int) bool {
		iSys, jSys := systemPaths[routes[i].Path], systemPaths[routes[j].Path]
		if iSys != jSys {
			return !iSys
		}
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return methodOrder(routes[i].Method) < methodOrder(routes[j].Method)
	})
	return routes
}

// anyMethodCount is the number of methods gin registers for engine.Any.
const anyMethodCount = 9

// formatHandlerName reduces Gin's full handler path to "Type.Method".
//
//	"github.com/kbukum/sypnna/api.(*TranscribeHandler).Generate-fm" -> "TranscribeHandler.Generate"
func formatHandlerName(fullPath string) string {
	name := strings.TrimSuffix(fullPath, "-fm")
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.ReplaceAll(name, "(*", "")
	name = strings.ReplaceAll(name, ")", "")

	// Closures: "endpoint.Health.func1" -> "health"
	if strings.Contains(name, ".func") {
		parts := strings.Split(name, ".")
		for i := len(parts) - 1; i >= 0; i-- {
			if !strings.HasPrefix(parts[i], "func") {
				name = strings.ToLower(parts[i])
				break
			}
		}
	}

	// Drop a lowercase package prefix.
	if pkg, rest, ok := strings.Cut(name, "."); ok && rest != "" && strings.ToLower(pkg) == pkg {
		name = rest
	}
	return name
}

// methodOrder returns a sort key for HTTP methods.
func methodOrder(method string) int {
	switch method {
	case "ANY":
		return 0
	case "GET":
		return 1
	case "POST":
		return 2
	default:
		return 3
	}
}
