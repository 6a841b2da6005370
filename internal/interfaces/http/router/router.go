// Package router mounts the API handlers on a gin engine.
package router

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar mounts a set of routes under a parent group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router collects domain groups and mounts them under /api/<version>
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption configures a Router
type RouterOption func(*Router)

// WithAPIVersion changes the version segment of the base path
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) { r.apiVersion = version }
}

// NewRouter returns a Router for engine, mounting under /api/v1 by default
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, apiVersion: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

func (r *Router) BasePath() string { return "/api/" + r.apiVersion }

// Setup mounts every registered group on the engine. Call it once.
func (r *Router) Setup() {
	api := r.engine.Group(r.BasePath())
	for _, reg := range r.registrars {
		reg.RegisterRoutes(api)
	}
}

// Routes lists "METHOD /full/path" for every route the registered domain
// groups declare, in declaration order
func (r *Router) Routes() []string {
	var out []string
	for _, reg := range r.registrars {
		if dg, ok := reg.(*DomainGroup); ok {
			out = dg.appendRoutes(out, r.BasePath())
		}
	}
	return out
}

// DomainGroup is one area of the API (auth, planning, billing, admin): a
// path prefix with its own guards, routes and nested groups. Guards added
// with Use apply to nested groups too but never to siblings.
type DomainGroup struct {
	name       string
	prefix     string
	middleware []gin.HandlerFunc
	routes     []route
	children   []*DomainGroup
}

type route struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

func (dg *DomainGroup) Name() string   { return dg.name }
func (dg *DomainGroup) Prefix() string { return dg.prefix }

// Use appends guards for this group and everything nested in it
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

// Group nests a new group under dg and returns it
func (dg *DomainGroup) Group(name, prefix string) *DomainGroup {
	child := NewDomainGroup(name, prefix)
	dg.children = append(dg.children, child)
	return child
}

func (dg *DomainGroup) GET(p string, h ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodGet, p, h)
}

func (dg *DomainGroup) POST(p string, h ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodPost, p, h)
}

func (dg *DomainGroup) PUT(p string, h ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodPut, p, h)
}

func (dg *DomainGroup) PATCH(p string, h ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodPatch, p, h)
}

func (dg *DomainGroup) DELETE(p string, h ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodDelete, p, h)
}

func (dg *DomainGroup) add(method, p string, h []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, route{method: method, path: p, handlers: h})
	return dg
}

// RegisterRoutes implements RouteRegistrar
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix, dg.middleware...)
	for _, rt := range dg.routes {
		group.Handle(rt.method, rt.path, rt.handlers...)
	}
	for _, child := range dg.children {
		child.RegisterRoutes(group)
	}
}

func (dg *DomainGroup) appendRoutes(out []string, base string) []string {
	base = joinPath(base, dg.prefix)
	for _, rt := range dg.routes {
		out = append(out, rt.method+" "+joinPath(base, rt.path))
	}
	for _, child := range dg.children {
		out = child.appendRoutes(out, base)
	}
	return out
}

// joinPath joins like gin does: a trailing slash on rel is kept
func joinPath(base, rel string) string {
	if rel == "" {
		return base
	}
	joined := path.Join(base, rel)
	if rel[len(rel)-1] == '/' && joined[len(joined)-1] != '/' {
		joined += "/"
	}
	return joined
}
