// Package router, {id} tarzı route parametrelerini ve grup/route bazlı
// middleware zincirlerini destekleyen küçük bir HTTP router sağlar.
package router

import (
	"context"
	"net/http"
	"strings"

	"github.com/biyonik/groupbuy-api/internal/http/request"
	"github.com/biyonik/groupbuy-api/internal/middleware"
)

// HandlerFunc, controller'ların handler fonksiyon tipidir. Standard
// http.HandlerFunc'tan farkı, sarmalanmış *request.Request almasıdır.
type HandlerFunc func(http.ResponseWriter, *request.Request)

// Router, route tablosunu ve global middleware zincirini tutar.
type Router struct {
	routes      []*Route
	middlewares []middleware.Middleware
	groups      []*RouteGroup
}

// Route, tek bir HTTP route'unu temsil eder.
type Route struct {
	method      string
	path        string
	handler     HandlerFunc
	middlewares []middleware.Middleware
	router      *Router
}

// RouteGroup, ortak prefix ve middleware paylaşan route grubudur.
type RouteGroup struct {
	prefix      string
	middlewares []middleware.Middleware
	router      *Router
}

// New, boş bir Router oluşturur.
func New() *Router {
	return &Router{
		routes:      make([]*Route, 0),
		middlewares: make([]middleware.Middleware, 0),
		groups:      make([]*RouteGroup, 0),
	}
}

// Use, router seviyesinde global middleware ekler.
func (r *Router) Use(m middleware.Middleware) {
	r.middlewares = append(r.middlewares, m)
}

func (r *Router) GET(path string, handler HandlerFunc) *Route {
	return r.addRoute(http.MethodGet, path, handler)
}

func (r *Router) POST(path string, handler HandlerFunc) *Route {
	return r.addRoute(http.MethodPost, path, handler)
}

func (r *Router) PUT(path string, handler HandlerFunc) *Route {
	return r.addRoute(http.MethodPut, path, handler)
}

func (r *Router) DELETE(path string, handler HandlerFunc) *Route {
	return r.addRoute(http.MethodDelete, path, handler)
}

func (r *Router) PATCH(path string, handler HandlerFunc) *Route {
	return r.addRoute(http.MethodPatch, path, handler)
}

func (r *Router) addRoute(method, path string, handler HandlerFunc) *Route {
	route := &Route{
		method:      method,
		path:        path,
		handler:     handler,
		middlewares: make([]middleware.Middleware, 0),
		router:      r,
	}
	r.routes = append(r.routes, route)
	return route
}

// Middleware, route'a middleware ekler (method chaining).
//
//	r.GET("/profile", handler).
//	    Middleware(middleware.Auth()).
//	    Middleware(middleware.RateLimit(10, 60))
func (route *Route) Middleware(m middleware.Middleware) *Route {
	route.middlewares = append(route.middlewares, m)
	return route
}

// Group, verilen prefix altında route grubu oluşturur.
//
//	api := r.Group("/api/admin")
//	api.Use(middleware.Auth())
//	api.GET("/users", handler)
func (r *Router) Group(prefix string) *RouteGroup {
	group := &RouteGroup{
		prefix:      prefix,
		middlewares: make([]middleware.Middleware, 0),
		router:      r,
	}
	r.groups = append(r.groups, group)
	return group
}

// Use, grup seviyesinde middleware ekler.
func (g *RouteGroup) Use(m middleware.Middleware) {
	g.middlewares = append(g.middlewares, m)
}

func (g *RouteGroup) GET(path string, handler HandlerFunc) *Route {
	return g.addRoute(http.MethodGet, path, handler)
}

func (g *RouteGroup) POST(path string, handler HandlerFunc) *Route {
	return g.addRoute(http.MethodPost, path, handler)
}

func (g *RouteGroup) PUT(path string, handler HandlerFunc) *Route {
	return g.addRoute(http.MethodPut, path, handler)
}

func (g *RouteGroup) DELETE(path string, handler HandlerFunc) *Route {
	return g.addRoute(http.MethodDelete, path, handler)
}

func (g *RouteGroup) PATCH(path string, handler HandlerFunc) *Route {
	return g.addRoute(http.MethodPatch, path, handler)
}

func (g *RouteGroup) addRoute(method, path string, handler HandlerFunc) *Route {
	route := g.router.addRoute(method, g.prefix+path, handler)
	// Grup middleware'leri route middleware'lerinden önce çalışır
	route.middlewares = append(append([]middleware.Middleware{}, g.middlewares...), route.middlewares...)
	return route
}

// ServeHTTP, http.Handler interface'ini implement eder.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.handleRequest(w, req)
	})

	for i := len(r.middlewares) - 1; i >= 0; i-- {
		handler = r.middlewares[i](handler)
	}

	handler.ServeHTTP(w, req)
}

// handleRequest, isteği eşleşen route'a yönlendirir; eşleşme yoksa 404 döner.
func (r *Router) handleRequest(w http.ResponseWriter, req *http.Request) {
	for _, route := range r.routes {
		if route.method != req.Method {
			continue
		}

		params, matched := matchRoute(route.path, req.URL.Path)
		if !matched {
			continue
		}

		ctx := context.WithValue(req.Context(), request.RequestParamsKey, params)
		req = req.WithContext(ctx)

		var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			route.handler(w, request.New(req))
		})

		for i := len(route.middlewares) - 1; i >= 0; i-- {
			handler = route.middlewares[i](handler)
		}

		handler.ServeHTTP(w, req)
		return
	}

	http.NotFound(w, req)
}

// matchRoute, pattern ile path'i karşılaştırır ve {param} değerlerini çıkarır.
//
//	/campaigns/{id}
//	/campaigns/{id}/participants
func matchRoute(pattern, path string) (map[string]string, bool) {
	patternParts := strings.Split(strings.Trim(pattern, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")

	if len(patternParts) != len(pathParts) {
		return nil, false
	}

	params := make(map[string]string)

	for i, part := range patternParts {
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			params[strings.Trim(part, "{}")] = pathParts[i]
			continue
		}

		if part != pathParts[i] {
			return nil, false
		}
	}

	return params, true
}
