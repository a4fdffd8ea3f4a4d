package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// Greeting is the body served at the root route.
const Greeting = "Hello, World!"

// Home returns the static greeting.
func Home(c echo.Context) error {
    return c.String(http.StatusOK, Greeting)
}
