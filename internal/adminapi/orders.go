package adminapi

import (
	"fmt"
	"net/http"
	"strings"

	excelize "github.com/360EntSecGroup-Skylar/excelize"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/bytes"
	"github.com/talkincode/toughcrm/internal/crm"
	"github.com/talkincode/toughcrm/internal/domain"
	"github.com/talkincode/toughcrm/internal/repository"
	"github.com/talkincode/toughcrm/internal/webserver"
	"go.uber.org/zap"
)

const ordersSheet = "Orders"

type orderPayload struct {
	CustomerID flexID   `json:"customer_id"`
	ProductIDs []flexID `json:"product_ids"`
}

// registerOrderRoutes registers order queries, the createOrder mutation and reports
func registerOrderRoutes() {
	webserver.ApiGET("/crm/orders", listOrders)
	webserver.ApiGET("/crm/orders/summary", orderSummary)
	webserver.ApiGET("/crm/orders/export", exportOrders)
	webserver.ApiGET("/crm/orders/:id", getOrder)
	webserver.ApiPOST("/crm/orders", createOrder)
}

func orderFilter(c echo.Context) (repository.OrderFilter, error) {
	filter := repository.OrderFilter{
		CustomerName: c.QueryParam("customer_name"),
		ProductName:  c.QueryParam("product_name"),
		Pagination: repository.Pagination{
			Sort:  c.QueryParam("sort"),
			Order: c.QueryParam("order"),
		},
	}
	var err error
	if filter.TotalGte, err = queryDecimal(c, "total_amount_gte"); err != nil {
		return filter, err
	}
	if filter.TotalLte, err = queryDecimal(c, "total_amount_lte"); err != nil {
		return filter, err
	}
	if filter.CustomerID, err = queryID(c, "customer_id"); err != nil {
		return filter, err
	}
	if filter.ProductID, err = queryID(c, "product_id"); err != nil {
		return filter, err
	}
	if filter.CreatedAtGte, err = queryTime(c, "created_at_gte", false); err != nil {
		return filter, err
	}
	if filter.CreatedAtLte, err = queryTime(c, "created_at_lte", true); err != nil {
		return filter, err
	}
	return filter, nil
}

func listOrders(c echo.Context) error {
	filter, err := orderFilter(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_PARAM", err.Error(), nil)
	}
	page, pageSize := parsePagination(c)
	filter.Page, filter.PageSize = page, pageSize

	rows, total, err := getCRM(c).ListOrders(c.Request().Context(), filter)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", domain.Message(err))
	}
	return paged(c, rows, total, page, pageSize)
}

func getOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	order, err := getCRM(c).GetOrder(c.Request().Context(), id)
	if err != nil {
		return handleLookupError(c, err, "Order")
	}
	return ok(c, order)
}

func createOrder(c echo.Context) error {
	var payload orderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order", err.Error())
	}
	return ok(c, getCRM(c).CreateOrder(c.Request().Context(), crm.OrderInput{
		CustomerID: int64(payload.CustomerID),
		ProductIDs: toInt64s(payload.ProductIDs),
	}))
}

func orderSummary(c echo.Context) error {
	filter, err := orderFilter(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_PARAM", err.Error(), nil)
	}
	summary, err := getCRM(c).OrderSummary(c.Request().Context(), filter)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to summarize orders", domain.Message(err))
	}
	return ok(c, summary)
}

// exportOrders writes every order matching the list filters to an xlsx workbook.
func exportOrders(c echo.Context) error {
	filter, err := orderFilter(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_PARAM", err.Error(), nil)
	}
	rows, _, err := getCRM(c).ListOrders(c.Request().Context(), filter)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", domain.Message(err))
	}

	xlsx := ordersWorkbook(rows)
	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	resp.Header().Set(echo.HeaderContentDisposition, `attachment; filename="orders.xlsx"`)
	resp.WriteHeader(http.StatusOK)
	if err := xlsx.Write(resp); err != nil {
		zap.L().Error("export orders failed", zap.Error(err))
		return err
	}
	zap.L().Info("orders exported",
		zap.Int("rows", len(rows)),
		zap.String("size", bytes.Format(resp.Size)))
	return nil
}

var orderColumns = []string{"ID", "Customer", "Email", "Products", "Items", "Total Amount", "Created At"}

func ordersWorkbook(orders []domain.Order) *excelize.File {
	xlsx := excelize.NewFile()
	xlsx.SetSheetName("Sheet1", ordersSheet)

	for i, title := range orderColumns {
		xlsx.SetCellValue(ordersSheet, cellName(i, 1), title)
	}
	for r, o := range orders {
		row := r + 2
		customer, email := "", ""
		if o.Customer != nil {
			customer, email = o.Customer.Name, o.Customer.Email
		}
		names := make([]string, 0, len(o.Items))
		for _, it := range o.Items {
			if it.Product != nil {
				names = append(names, it.Product.Name)
			} else {
				names = append(names, fmt.Sprint(it.ProductID))
			}
		}
		values := []interface{}{
			fmt.Sprint(o.ID),
			customer,
			email,
			strings.Join(names, ", "),
			len(o.Items),
			o.TotalAmount.StringFixed(2),
			o.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			xlsx.SetCellValue(ordersSheet, cellName(col, row), v)
		}
	}
	return xlsx
}

func cellName(col, row int) string {
	return fmt.Sprintf("%s%d", excelize.ToAlphaString(col), row)
}
