package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/toughcrm/internal/crm"
	"github.com/talkincode/toughcrm/internal/domain"
	"github.com/talkincode/toughcrm/internal/repository"
	"github.com/talkincode/toughcrm/internal/webserver"
)

// registerProductRoutes registers product queries and the createProduct mutation
func registerProductRoutes() {
	webserver.ApiGET("/crm/products", listProducts)
	webserver.ApiGET("/crm/products/:id", getProduct)
	webserver.ApiPOST("/crm/products", createProduct)
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)
	filter := repository.ProductFilter{
		Name: c.QueryParam("name"),
		Pagination: repository.Pagination{
			Page:     page,
			PageSize: pageSize,
			Sort:     c.QueryParam("sort"),
			Order:    c.QueryParam("order"),
		},
	}
	// q is kept as an alias of name for older clients
	if filter.Name == "" {
		filter.Name = c.QueryParam("q")
	}

	var err error
	if filter.PriceGte, err = queryDecimal(c, "price_gte"); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_PARAM", err.Error(), nil)
	}
	if filter.PriceLte, err = queryDecimal(c, "price_lte"); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_PARAM", err.Error(), nil)
	}
	if filter.StockGte, err = queryInt(c, "stock_gte"); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_PARAM", err.Error(), nil)
	}
	if filter.StockLte, err = queryInt(c, "stock_lte"); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_PARAM", err.Error(), nil)
	}

	rows, total, err := getCRM(c).ListProducts(c.Request().Context(), filter)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", domain.Message(err))
	}
	return paged(c, rows, total, page, pageSize)
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	p, err := getCRM(c).GetProduct(c.Request().Context(), id)
	if err != nil {
		return handleLookupError(c, err, "Product")
	}
	return ok(c, p)
}

func createProduct(c echo.Context) error {
	var payload crm.ProductInput
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	return ok(c, getCRM(c).CreateProduct(c.Request().Context(), payload))
}
