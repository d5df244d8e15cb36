package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"listings-service/internal/application/command"
	"listings-service/internal/application/interfaces"
	"listings-service/internal/application/query"
	"listings-service/internal/delivery/middleware"
)

type PropertyHandler struct {
	properties interfaces.PropertyService
	logger     zerolog.Logger
}

func NewPropertyHandler(properties interfaces.PropertyService, logger zerolog.Logger) *PropertyHandler {
	return &PropertyHandler{properties: properties, logger: logger}
}

func (h *PropertyHandler) Create(c echo.Context) error {
	var cmd command.CreatePropertyCommand
	if err := c.Bind(&cmd); err != nil {
		return c.JSON(http.StatusBadRequest, ApiResponse{Success: false, Error: "invalid request body"})
	}

	result, err := h.properties.CreateProperty(
		c.Request().Context(),
		middleware.CurrentUserID(c),
		middleware.CurrentUserRole(c),
		&cmd,
	)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, http.StatusCreated, "property created", result.Result)
}

func (h *PropertyHandler) Get(c echo.Context) error {
	result, err := h.properties.GetProperty(c.Request().Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, http.StatusOK, "", result.Result)
}

func (h *PropertyHandler) List(c echo.Context) error {
	q := parseListQuery(c)
	result, err := h.properties.ListProperties(c.Request().Context(), q, middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, http.StatusOK, "", result)
}

func (h *PropertyHandler) Search(c echo.Context) error {
	q := &query.PropertySearchQuery{
		Query:    c.QueryParam("q"),
		Page:     intParam(c, "page", 1),
		PageSize: intParam(c, "pageSize", 0),
	}

	result, err := h.properties.SearchProperties(c.Request().Context(), q, middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, http.StatusOK, "", result)
}

func (h *PropertyHandler) Update(c echo.Context) error {
	var cmd command.UpdatePropertyCommand
	if err := c.Bind(&cmd); err != nil {
		return c.JSON(http.StatusBadRequest, ApiResponse{Success: false, Error: "invalid request body"})
	}

	result, err := h.properties.UpdateProperty(c.Request().Context(), c.Param("id"), middleware.CurrentUserID(c), &cmd)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, http.StatusOK, "property updated", result.Result)
}

func (h *PropertyHandler) Delete(c echo.Context) error {
	if err := h.properties.DeleteProperty(c.Request().Context(), c.Param("id"), middleware.CurrentUserID(c)); err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, http.StatusOK, "property deleted", nil)
}

func (h *PropertyHandler) SetAvailability(c echo.Context) error {
	var body struct {
		Available *bool `json:"available"`
	}
	if err := c.Bind(&body); err != nil || body.Available == nil {
		return c.JSON(http.StatusBadRequest, ApiResponse{Success: false, Error: "available flag is required"})
	}

	err := h.properties.SetAvailability(c.Request().Context(), c.Param("id"), middleware.CurrentUserID(c), *body.Available)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, http.StatusOK, "availability updated", nil)
}

func (h *PropertyHandler) ByOwner(c echo.Context) error {
	result, err := h.properties.GetPropertiesByOwner(c.Request().Context(), c.Param("ownerId"), middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, http.StatusOK, "", result.Result)
}

func (h *PropertyHandler) AddFavorite(c echo.Context) error {
	err := h.properties.AddFavorite(c.Request().Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, http.StatusOK, "property favorited", nil)
}

func (h *PropertyHandler) RemoveFavorite(c echo.Context) error {
	err := h.properties.RemoveFavorite(c.Request().Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, http.StatusOK, "property unfavorited", nil)
}

func (h *PropertyHandler) Favorites(c echo.Context) error {
	result, err := h.properties.GetFavoriteProperties(c.Request().Context(), middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, http.StatusOK, "", result.Result)
}

// parseListQuery reads the filter from query parameters. Unparseable numeric
// and boolean values are ignored rather than rejected.
func parseListQuery(c echo.Context) *query.PropertyListQuery {
	q := &query.PropertyListQuery{
		Page:     intParam(c, "page", 1),
		PageSize: intParam(c, "pageSize", 0),
	}

	if v := c.QueryParam("type"); v != "" {
		q.Type = &v
	}
	if v := c.QueryParam("listingType"); v != "" {
		q.ListingType = &v
	}
	if v := c.QueryParam("location"); v != "" {
		q.Location = &v
	}
	if v := c.QueryParam("minPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q.MinPrice = &f
		}
	}
	if v := c.QueryParam("maxPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q.MaxPrice = &f
		}
	}
	if v := c.QueryParam("minSize"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q.MinSize = &f
		}
	}
	if v := c.QueryParam("maxSize"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q.MaxSize = &f
		}
	}
	if v := c.QueryParam("isAvailable"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			q.IsAvailable = &b
		}
	}
	if v := c.QueryParam("ownerId"); v != "" {
		q.PropertyOwnerID = &v
	}
	if v := c.QueryParam("amenities"); v != "" {
		amenities := make([]string, 0)
		for _, amenity := range strings.Split(v, ",") {
			if amenity = strings.TrimSpace(amenity); amenity != "" {
				amenities = append(amenities, amenity)
			}
		}
		q.Amenities = amenities
	}

	return q
}

func intParam(c echo.Context, name string, fallback int) int {
	v := c.QueryParam(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
