// Package httpapi exposes the users facade as a JSON API for browser
// front-ends. Reads, writes and cache maintenance map one to one onto
// services.UserService.
package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/AliKaner/mc-case/internal/client/models"
	"github.com/AliKaner/mc-case/internal/client/query"
	"github.com/AliKaner/mc-case/internal/client/services"
	"github.com/AliKaner/mc-case/internal/logging"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// newID is a test seam for generating identities of new users.
var newID = uuid.NewString

type Handler struct {
	users        services.UserService
	logger       logging.Logger
	defaultLimit int
}

func NewHandler(us services.UserService, l logging.Logger, defaultLimit int) *Handler {
	if defaultLimit < 1 {
		defaultLimit = query.DefaultLimit
	}
	return &Handler{users: us, logger: l, defaultLimit: defaultLimit}
}

// Register mounts all routes on e.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	e.GET("/users", h.ListUsers)
	e.POST("/users", h.CreateUser)
	e.GET("/users/deleted", h.DeletedUsers)
	e.POST("/users/restore", h.RestoreUsers)
	e.GET("/users/:id", h.GetUser)
	e.PATCH("/users/:id", h.UpdateUser)
	e.DELETE("/users/:id", h.DeleteUser)

	e.DELETE("/cache", h.ClearCache)
}

// Health reports the cache status. It answers 200 even when the local store
// is unavailable since reads still work against the remote API.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, h.users.Status(c.Request().Context()))
}

func intParam(c echo.Context, name string, def int) (int, bool) {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ListUsers answers GET /users?page&limit&search&sort&order. A sort value
// such as "name-desc" carries its own order unless order is given.
func (h *Handler) ListUsers(c echo.Context) error {
	page, ok := intParam(c, "page", query.DefaultPage)
	if !ok {
		return badRequest(c, "page must be a number")
	}
	limit, ok := intParam(c, "limit", h.defaultLimit)
	if !ok {
		return badRequest(c, "limit must be a number")
	}

	field, order := query.ParseSortKey(c.QueryParam("sort"))
	if o := strings.ToLower(strings.TrimSpace(c.QueryParam("order"))); o != "" {
		if o != query.OrderAsc && o != query.OrderDesc {
			return badRequest(c, "order must be asc or desc")
		}
		order = o
	}

	p, err := h.users.GetUsers(c.Request().Context(), query.Options{
		Search: c.QueryParam("search"),
		Sort:   field,
		Order:  order,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) GetUser(c echo.Context) error {
	u, err := h.users.GetUserByID(c.Request().Context(), models.ParseID(c.Param("id")))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// createUserRequest accepts the form fields plus an optional id that may be
// a JSON number or string.
type createUserRequest struct {
	ID models.ID `json:"id"`
	models.UserForm
}

func (h *Handler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := req.UserForm.Validate(); err != nil {
		return h.writeError(c, err)
	}

	id := req.ID
	if id.IsZero() {
		id = models.StringID(newID())
	}

	u, err := h.users.CreateUser(c.Request().Context(), req.UserForm.ToRecord(id))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *Handler) UpdateUser(c echo.Context) error {
	var patch models.Patch
	if err := c.Bind(&patch); err != nil {
		return badRequest(c, "invalid request body")
	}
	if patch.IsEmpty() {
		return badRequest(c, "nothing to update")
	}

	u, err := h.users.UpdateUser(c.Request().Context(), models.ParseID(c.Param("id")), patch)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) DeleteUser(c echo.Context) error {
	res, err := h.users.DeleteUser(c.Request().Context(), models.ParseID(c.Param("id")))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) DeletedUsers(c echo.Context) error {
	ids := h.users.Deleted(c.Request().Context())
	if ids == nil {
		ids = []models.ID{}
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": ids})
}

func (h *Handler) RestoreUsers(c echo.Context) error {
	if err := h.users.RestoreAll(c.Request().Context()); err != nil {
		return h.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ClearCache(c echo.Context) error {
	h.users.ClearCache(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}
