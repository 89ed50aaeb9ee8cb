// Package page serves the server-side page data of the board. A page is a
// Loader producing either a redirect or a set of props; Handler renders
// that result over HTTP.
package page

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// UserKey is the prop under which the guard injects the current identity.
// Loaders must not use it for their own data.
const UserKey = "user"

// Props is the data handed to a page.
type Props map[string]any

// Redirect sends the browser elsewhere instead of rendering the page.
type Redirect struct {
	Destination string `json:"destination"`
	Permanent   bool   `json:"permanent"`
}

// Result is what a Loader produces. A non-nil Redirect wins over Props.
type Result struct {
	Redirect *Redirect
	Props    Props
}

// Loader computes the data of one page request.
type Loader func(c echo.Context) (Result, error)

// RedirectTo is a temporary redirect result.
func RedirectTo(destination string) Result {
	return Result{Redirect: &Redirect{Destination: destination}}
}

// Render is a props result.
func Render(props Props) Result {
	if props == nil {
		props = Props{}
	}
	return Result{Props: props}
}

// Handler adapts a Loader to echo. Redirects become 302 (308 when
// permanent); props are written as a JSON object.
func Handler(load Loader) echo.HandlerFunc {
	return func(c echo.Context) error {
		res, err := load(c)
		if err != nil {
			return err
		}
		if res.Redirect != nil {
			code := http.StatusFound
			if res.Redirect.Permanent {
				code = http.StatusPermanentRedirect
			}
			return c.Redirect(code, res.Redirect.Destination)
		}
		if res.Props == nil {
			res.Props = Props{}
		}
		return c.JSON(http.StatusOK, res.Props)
	}
}
