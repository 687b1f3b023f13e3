package rest

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/slsfi/arkiva-oai/internal/present/rest/presenter"
	"github.com/slsfi/arkiva-oai/internal/service"
	"github.com/slsfi/arkiva-oai/internal/usecase"
)

type Handler struct {
	baseURL string
	arkiva  *usecase.ArkivaUsecase
	library *usecase.LibraryUsecase
	cache   service.ResponseCache
}

// NewHandler wires the endpoints. library and cache may be nil; the
// library route is only registered when a catalog is configured.
func NewHandler(
	baseURL string,
	arkiva *usecase.ArkivaUsecase,
	library *usecase.LibraryUsecase,
	cache service.ResponseCache,
) *Handler {
	return &Handler{
		baseURL: baseURL,
		arkiva:  arkiva,
		library: library,
		cache:   cache,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/oai", h.handleArkiva)
	if h.library != nil {
		e.GET("/oai/library", h.handleLibrary)
	}
	e.GET("/health", h.handleHealth)
}

type respondFunc func(ctx context.Context, baseURL string, query url.Values) ([]byte, int)

func (h *Handler) respond(c echo.Context, respond respondFunc) error {
	ctx := c.Request().Context()
	query := c.QueryParams()

	key := service.CacheKey(c.Request().URL.Path, query)
	if h.cache != nil {
		if body, found := h.cache.Get(ctx, key); found {
			return presenter.XML(c, http.StatusOK, body)
		}
	}

	body, status := respond(ctx, h.requestURL(c), query)

	if h.cache != nil && status == http.StatusOK {
		h.cache.Set(ctx, key, body)
	}

	return presenter.XML(c, status, body)
}

func (h *Handler) handleArkiva(c echo.Context) error {
	return h.respond(c, h.arkiva.Respond)
}

func (h *Handler) handleLibrary(c echo.Context) error {
	return h.respond(c, h.library.Respond)
}

func (h *Handler) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// requestURL reconstructs the URL harvesters used to reach us, echoed
// in the request element of every response. A configured base wins so
// responses behind a proxy advertise the public address.
func (h *Handler) requestURL(c echo.Context) string {
	if h.baseURL != "" {
		return strings.TrimSuffix(h.baseURL, "/") + c.Request().URL.Path
	}
	return c.Scheme() + "://" + c.Request().Host + c.Request().URL.Path
}
