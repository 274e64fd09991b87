package heuristics

import (
	"regexp"
	"strings"

	"github.com/repolens/repolens/internal/report"
)

// routeRule extracts HTTP route registrations from one framework idiom. The
// pattern's first capture is the method (or empty for rules with a fixed
// method semantics), the second is the path.
type routeRule struct {
	pattern *regexp.Regexp
}

// routeRules covers the common registration shapes: Express/Koa-style
// method calls, Go's http.HandleFunc with a method pattern, Gin/Echo-style
// uppercase method calls, Spring mapping annotations, and Flask/FastAPI
// decorators.
var routeRules = []routeRule{
	// app.get('/users/:id', ...), router.post("/orders", ...)
	{pattern: regexp.MustCompile(`\b(?:app|router|server|api)\s*\.\s*(get|post|put|delete|patch|options|head)\s*\(\s*["'` + "`" + `]([^"'` + "`" + `]+)["'` + "`" + `]`)},
	// mux.HandleFunc("GET /users/{id}", ...)
	{pattern: regexp.MustCompile(`\bHandleFunc\s*\(\s*"(GET|POST|PUT|DELETE|PATCH|OPTIONS|HEAD)\s+([^"]+)"`)},
	// r.GET("/users/:id", ...), e.POST("/orders", ...)
	{pattern: regexp.MustCompile(`\.\s*(GET|POST|PUT|DELETE|PATCH|OPTIONS|HEAD)\s*\(\s*"([^"]+)"`)},
	// @GetMapping("/users/{id}"), @PostMapping(value = "/orders")
	{pattern: regexp.MustCompile(`@(Get|Post|Put|Delete|Patch)Mapping\s*\(\s*(?:value\s*=\s*)?"([^"]+)"`)},
	// @app.get("/users/{id}"), @router.post('/orders')
	{pattern: regexp.MustCompile(`@\w+\.(get|post|put|delete|patch)\s*\(\s*["']([^"']+)["']`)},
}

// pathParamPattern matches :name and {name} path parameter segments.
var pathParamPattern = regexp.MustCompile(`[:{](\w+)\}?`)

// ExtractEndpoints finds HTTP route registrations in source text. One
// endpoint per matching line per rule, in line order; the same route
// registered on several lines appears once per line.
func ExtractEndpoints(path, content string) []report.APIEndpoint {
	var endpoints []report.APIEndpoint

	for i, line := range strings.Split(content, "\n") {
		for _, rule := range routeRules {
			m := rule.pattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			route := m[2]
			if !strings.HasPrefix(route, "/") {
				continue
			}
			endpoints = append(endpoints, report.APIEndpoint{
				Method: strings.ToUpper(m[1]),
				Path:   route,
				File:   path,
				Line:   i + 1,
				Params: pathParams(route),
			})
			break
		}
	}
	return endpoints
}

// pathParams extracts parameter names from :name and {name} segments.
func pathParams(route string) []string {
	var params []string
	for _, m := range pathParamPattern.FindAllStringSubmatch(route, -1) {
		params = append(params, m[1])
	}
	return params
}
