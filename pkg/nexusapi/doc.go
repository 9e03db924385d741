/*
Package nexusapi holds the wire types of the PixelForge Nexus JSON API and a
small Go client for it.

# Client

The client keeps the session cookie in a cookie jar, so one Client is one
logged-in browser:

	c, err := nexusapi.NewClient("http://localhost:3000")

	res, err := c.Login(ctx, "admin", "Admin123!", "")
	if res.MFARequired {
		res, err = c.Login(ctx, "admin", "Admin123!", code)
	}

	me, err := c.Me(ctx)
	projects, err := c.ListProjects(ctx)

# Errors

Every non-2xx response is returned as an *APIError carrying the HTTP status
and the error code from the body:

	var apiErr *nexusapi.APIError
	if errors.As(err, &apiErr) && apiErr.Code == nexusapi.ErrorCodeForbidden {
		// ...
	}

The same APIError values are used by the server to write responses, so the
codes seen by a client match the codes documented on each route.
*/
package nexusapi
