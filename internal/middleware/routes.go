package middleware

import "regexp"

// RouteValidator classifies request paths into public, admin-only and
// customer-only groups. Patterns are anchored and matched against the
// path alone; the query string never takes part.
type RouteValidator struct {
	public   []*regexp.Regexp
	admin    []*regexp.Regexp
	customer []*regexp.Regexp
}

func NewRouteValidator(public, admin, customer []string) *RouteValidator {
	return &RouteValidator{
		public:   compileAll(public),
		admin:    compileAll(admin),
		customer: compileAll(customer),
	}
}

// DefaultRouteValidator is the access table of the /api/v1 surface.
func DefaultRouteValidator() *RouteValidator {
	return NewRouteValidator(
		[]string{
			`^/api/v1/users/public.*$`,
			`^/api/v1/products/public.*$`,
		},
		[]string{
			`^/api/v1/users/private/admin.*$`,
			`^/api/v1/products/private.*$`,
			`^/api/v1/orders/admin.*$`,
		},
		[]string{
			`^/api/v1/carts/private.*$`,
			`^/api/v1/orders/customer.*$`,
		},
	)
}

func compileAll(patterns []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}

func anyMatch(patterns []*regexp.Regexp, path string) bool {
	for _, p := range patterns {
		if p.MatchString(path) {
			return true
		}
	}
	return false
}

// IsSecured is true for every path that is not public.
func (v *RouteValidator) IsSecured(path string) bool {
	return !anyMatch(v.public, path)
}

func (v *RouteValidator) IsAdminRoute(path string) bool {
	return anyMatch(v.admin, path)
}

func (v *RouteValidator) IsCustomerRoute(path string) bool {
	return anyMatch(v.customer, path)
}
