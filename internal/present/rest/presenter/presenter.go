package presenter

import (
	"github.com/labstack/echo/v4"
)

const contentType = "text/xml; charset=utf-8"

// XML writes an OAI-PMH document. Error documents use the same content
// type as successful ones, only the status differs, so browsers render
// the XML either way.
func XML(c echo.Context, status int, body []byte) error {
	return c.Blob(status, contentType, body)
}
