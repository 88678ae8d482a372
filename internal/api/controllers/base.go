package controllers

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"rallyround/internal/services"

	"github.com/labstack/echo/v4"
)

// BaseController provides generic CRUD operations for any model
type BaseController[T any] struct {
	service services.BaseService[T]
}

// NewBaseController creates a new base controller
func NewBaseController[T any](service services.BaseService[T]) *BaseController[T] {
	return &BaseController[T]{
		service: service,
	}
}

// parseIncludes parses the include query parameter and returns a slice of relationships to preload
func parseIncludes(ctx echo.Context) []string {
	include := ctx.QueryParam("include")
	if include == "" {
		return nil
	}
	return strings.Split(include, ",")
}

// parseExcludes parses the exclude query parameter and returns a slice of fields to exclude
func parseExcludes(ctx echo.Context) []string {
	exclude := ctx.QueryParam("exclude")
	if exclude == "" {
		return nil
	}
	return strings.Split(exclude, ",")
}

// Create handles creation of new entities
func (c *BaseController[T]) Create(ctx echo.Context) error {
	var entity T
	if err := ctx.Bind(&entity); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body "+err.Error())
	}

	if err := ctx.Validate(&entity); err != nil {
		return err
	}

	includes := parseIncludes(ctx)
	if err := c.service.Create(ctx.Request().Context(), &entity, includes...); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return ctx.JSON(http.StatusCreated, entity)
}

// Get handles retrieval of a single entity
func (c *BaseController[T]) Get(ctx echo.Context) error {
	id := ctx.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing id parameter")
	}
	includes := parseIncludes(ctx)
	entity, err := c.service.Get(ctx.Request().Context(), id, includes...)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "entity not found")
	}

	return ctx.JSON(http.StatusOK, entity)
}

// applyScopeFilters narrows list queries to the caller's tenant: models
// carrying an OrgID column are filtered by the orgId the request names,
// models carrying OwnerID by the authenticated user.
func (c *BaseController[T]) applyScopeFilters(ctx echo.Context, filters map[string]interface{}) map[string]interface{} {
	var entity T
	entityType := reflect.TypeOf(entity)

	if orgID := ctx.QueryParam("orgId"); orgID != "" {
		if _, found := entityType.FieldByName("OrgID"); found {
			filters["org_id"] = orgID
		}
	}

	if mine := ctx.QueryParam("mine"); mine == "true" {
		if userID := ctx.Get("userID"); userID != nil {
			if _, found := entityType.FieldByName("OwnerID"); found {
				filters["owner_id"] = userID
			} else if _, found := entityType.FieldByName("UserID"); found {
				filters["user_id"] = userID
			}
		}
	}

	return filters
}

// List handles retrieval of multiple entities with pagination and filtering
func (c *BaseController[T]) List(ctx echo.Context) error {
	// Parse pagination parameters
	page, _ := strconv.Atoi(ctx.QueryParam("page"))
	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))
	exclude := parseExcludes(ctx)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	// Parse filters from query parameters
	reserved := map[string]bool{
		"page": true, "limit": true, "include": true, "exclude": true,
		"sort": true, "order": true, "orgId": true, "mine": true,
	}
	filters := make(map[string]interface{})
	for key, values := range ctx.QueryParams() {
		if !reserved[key] && len(values) > 0 {
			filters[key] = values[0]
		}
	}

	filters = c.applyScopeFilters(ctx, filters)

	includes := parseIncludes(ctx)

	excludeFields := make(map[string]bool)
	for _, field := range exclude {
		excludeFields[field] = true
	}

	// Only sort by fields the entity actually has
	sort := ctx.QueryParam("sort")
	order := ctx.QueryParam("order")
	if order != "desc" {
		order = "asc"
	}
	var sortFields []string
	if sort != "" {
		var entity T
		entityType := reflect.TypeOf(entity)
		for _, field := range strings.Split(sort, ",") {
			if _, found := entityType.FieldByName(field); found {
				sortFields = append(sortFields, field)
			}
		}
	}

	entities, total, err := c.service.List(ctx.Request().Context(), page, limit, filters, excludeFields, sortFields, order, includes...)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"data":  entities,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// Update handles updating an existing entity
func (c *BaseController[T]) Update(ctx echo.Context) error {
	id := ctx.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing id parameter")
	}

	var entity T
	if err := ctx.Bind(&entity); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := ctx.Validate(&entity); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	includes := parseIncludes(ctx)
	if err := c.service.Update(ctx.Request().Context(), id, &entity, includes...); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return ctx.JSON(http.StatusOK, entity)
}

// Delete handles deletion of an entity
func (c *BaseController[T]) Delete(ctx echo.Context) error {
	id := ctx.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing id parameter")
	}

	if err := c.service.Delete(ctx.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return ctx.NoContent(http.StatusNoContent)
}
