// Package constants provides shared constant values used throughout the application.
//
// The general_const.go file defines the public routes of the booking site and the
// path/query parameter names used by the handlers. The Portuguese paths are kept
// from the site the backend serves, so existing links and bookmarks keep working.
package constants

// Public Routes define the URL paths exposed by the HTTP surface.
const (
	// RouteHome is the landing page and the default post-login destination.
	RouteHome = "/"

	// RouteAbout is the static "about us" page.
	RouteAbout = "/sobre"

	// RouteServices lists and searches the service catalog.
	RouteServices = "/servicos"

	// RouteLogin shows the session state (GET) and authenticates (POST).
	RouteLogin = "/login"

	// RouteLogout ends the current session.
	RouteLogout = "/logout"

	// RouteRegister creates a client account.
	RouteRegister = "/registar"

	// RouteResetRequest starts the password reset flow.
	RouteResetRequest = "/reset_request"

	// RouteReset is the password reset form addressed by an emailed token.
	RouteReset = "/reset/{token}"

	// RouteResetPrefix is RouteReset without the token placeholder, used to build links.
	RouteResetPrefix = "/reset/"

	// RouteBookForm is the gated entry point of the booking flow.
	RouteBookForm = "/agendar"

	// RouteBookings lists bookable services (GET) and creates a booking (POST).
	RouteBookings = "/marcacoes"

	// RouteMyBookings lists the bookings of the logged-in client.
	RouteMyBookings = "/minhas_marcacoes"

	// HealthPath is the endpoint for health checks and system status.
	HealthPath = "/health"

	// VersionPath reports the running build.
	VersionPath = "/version"
)

// URL Parameters define path parameter names used in route definitions.
const (
	// ParamToken is the URL parameter carrying a password reset token.
	ParamToken = "token"
)

// Query Parameters define common query string parameter names.
const (
	// QueryParamSearch is the free-text catalog search term.
	QueryParamSearch = "q"
)
