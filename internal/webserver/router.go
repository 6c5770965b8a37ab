package webserver

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
)

// ApiBasePath prefixes every route registered through the Api* helpers.
const ApiBasePath = "/api/v1"

type route struct {
	method     string
	path       string
	handler    echo.HandlerFunc
	middleware []echo.MiddlewareFunc
}

var (
	routesMu sync.RWMutex
	routes   []route
)

func addRoute(method, path string, h echo.HandlerFunc, m []echo.MiddlewareFunc) {
	routesMu.Lock()
	defer routesMu.Unlock()
	routes = append(routes, route{method: method, path: path, handler: h, middleware: m})
}

// ApiGET registers a GET route under ApiBasePath
func ApiGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	addRoute(http.MethodGet, path, h, m)
}

// ApiPOST registers a POST route under ApiBasePath
func ApiPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	addRoute(http.MethodPost, path, h, m)
}

// ApiPUT registers a PUT route under ApiBasePath
func ApiPUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	addRoute(http.MethodPut, path, h, m)
}

// ApiDELETE registers a DELETE route under ApiBasePath
func ApiDELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	addRoute(http.MethodDelete, path, h, m)
}

func mountRoutes(g *echo.Group) {
	routesMu.RLock()
	defer routesMu.RUnlock()
	for _, r := range routes {
		g.Add(r.method, r.path, r.handler, r.middleware...)
	}
}
