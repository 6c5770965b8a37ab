package adminapi

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/bytes"
	"github.com/talkincode/toughcrm/internal/crm"
	"github.com/talkincode/toughcrm/internal/domain"
	"github.com/talkincode/toughcrm/internal/repository"
	"github.com/talkincode/toughcrm/internal/webserver"
	"go.uber.org/zap"
)

type bulkCustomerPayload struct {
	Customers []crm.CustomerInput `json:"customers" validate:"required"`
}

// registerCustomerRoutes registers customer queries and mutations
func registerCustomerRoutes() {
	webserver.ApiGET("/crm/customers", listCustomers)
	webserver.ApiGET("/crm/customers/export", exportCustomers)
	webserver.ApiGET("/crm/customers/validate", validateCustomer)
	webserver.ApiGET("/crm/customers/:id", getCustomer)
	webserver.ApiPOST("/crm/customers", createCustomer)
	webserver.ApiPOST("/crm/customers/bulk", bulkCreateCustomers)
	webserver.ApiPOST("/crm/customers/import", importCustomers)
	webserver.ApiDELETE("/crm/customers/:id", deleteCustomer)
}

func customerFilter(c echo.Context) (repository.CustomerFilter, error) {
	filter := repository.CustomerFilter{
		Name:  c.QueryParam("name"),
		Email: c.QueryParam("email"),
		Pagination: repository.Pagination{
			Sort:  c.QueryParam("sort"),
			Order: c.QueryParam("order"),
		},
	}
	var err error
	if filter.CreatedAtGte, err = queryTime(c, "created_at_gte", false); err != nil {
		return filter, err
	}
	if filter.CreatedAtLte, err = queryTime(c, "created_at_lte", true); err != nil {
		return filter, err
	}
	return filter, nil
}

func listCustomers(c echo.Context) error {
	filter, err := customerFilter(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_PARAM", err.Error(), nil)
	}
	page, pageSize := parsePagination(c)
	filter.Page, filter.PageSize = page, pageSize

	rows, total, err := getCRM(c).ListCustomers(c.Request().Context(), filter)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query customers", domain.Message(err))
	}
	return paged(c, rows, total, page, pageSize)
}

func getCustomer(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid customer ID", nil)
	}
	customer, err := getCRM(c).GetCustomer(c.Request().Context(), id)
	if err != nil {
		return handleLookupError(c, err, "Customer")
	}
	return ok(c, customer)
}

func createCustomer(c echo.Context) error {
	var payload crm.CustomerInput
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse customer", err.Error())
	}
	return ok(c, getCRM(c).CreateCustomer(c.Request().Context(), payload))
}

func bulkCreateCustomers(c echo.Context) error {
	var payload bulkCustomerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse customers", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	if limit := maxBulkSize(c); len(payload.Customers) > limit {
		return failBulkTooLarge(c, limit, len(payload.Customers))
	}
	return ok(c, getCRM(c).BulkCreateCustomers(c.Request().Context(), payload.Customers))
}

// validateCustomer runs the customer validators without creating anything.
func validateCustomer(c echo.Context) error {
	v := getCRM(c).Validator()
	email := c.QueryParam("email")
	phone := c.QueryParam("phone")
	return ok(c, map[string]interface{}{
		"email":           crm.NormalizeEmail(email),
		"email_valid":     v.ValidateEmailFormat(crm.NormalizeEmail(email)),
		"email_available": v.ValidateEmailUniqueness(c.Request().Context(), email),
		"phone_valid":     v.ValidatePhoneFormat(phone),
	})
}

func deleteCustomer(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid customer ID", nil)
	}
	if err := getCRM(c).DeleteCustomer(c.Request().Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fail(c, http.StatusNotFound, "NOT_FOUND", "Customer not found", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete customer", domain.Message(err))
	}
	return ok(c, map[string]interface{}{"id": fmt.Sprint(id)})
}

// exportCustomers streams every customer matching the list filters as CSV.
func exportCustomers(c echo.Context) error {
	filter, err := customerFilter(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_PARAM", err.Error(), nil)
	}
	rows, _, err := getCRM(c).ListCustomers(c.Request().Context(), filter)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query customers", domain.Message(err))
	}

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	resp.Header().Set(echo.HeaderContentDisposition, `attachment; filename="customers.csv"`)
	resp.WriteHeader(http.StatusOK)
	if err := gocsv.Marshal(&rows, resp); err != nil {
		zap.L().Error("export customers failed", zap.Error(err))
		return err
	}
	zap.L().Info("customers exported",
		zap.Int("rows", len(rows)),
		zap.String("size", bytes.Format(resp.Size)))
	return nil
}

// importCustomers bulk creates customers from a CSV upload (multipart field
// "file" or a raw text/csv body) with name,email,phone columns.
func importCustomers(c echo.Context) error {
	reader, closeFn, err := csvSource(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to read CSV upload", err.Error())
	}
	defer closeFn()

	inputs, err := crm.ReadCustomerCSV(reader)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_CSV", "Unable to parse CSV", err.Error())
	}
	if limit := maxBulkSize(c); len(inputs) > limit {
		return failBulkTooLarge(c, limit, len(inputs))
	}
	return ok(c, getCRM(c).BulkCreateCustomers(c.Request().Context(), inputs))
}

func csvSource(c echo.Context) (io.Reader, func(), error) {
	ctype := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(ctype, echo.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, nil, err
		}
		f, err := fh.Open()
		if err != nil {
			return nil, nil, err
		}
		return f, func() { _ = f.Close() }, nil
	}
	return c.Request().Body, func() {}, nil
}

// maxBulkSize returns the configured batch limit; a non-positive setting disables it.
func maxBulkSize(c echo.Context) int {
	limit := GetAppContext(c).Config().Crm.MaxBulkSize
	if limit <= 0 {
		return math.MaxInt
	}
	return limit
}

func failBulkTooLarge(c echo.Context, limit, n int) error {
	return fail(c, http.StatusRequestEntityTooLarge, "BULK_TOO_LARGE",
		fmt.Sprintf("At most %d customers per request", limit), map[string]int{"count": n})
}
