package adminapi

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/toughcrm/config"
	"github.com/talkincode/toughcrm/internal/app"
	"github.com/talkincode/toughcrm/internal/repository/repotest"
	"github.com/talkincode/toughcrm/internal/webserver"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type testEnv struct {
	app    *app.Application
	server *webserver.AdminServer
}

func setupEnv(t *testing.T, mutate ...func(*config.AppConfig)) *testEnv {
	t.Helper()
	Init()
	cfg := config.DefaultAppConfig()
	for _, m := range mutate {
		m(cfg)
	}
	application := app.NewApplication(cfg)
	application.OverrideDB(repotest.OpenDB(t))
	return &testEnv{app: application, server: webserver.NewAdminServer(application)}
}

func (e *testEnv) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.server.Echo().ServeHTTP(rec, req)
	return rec
}

// decodeData unmarshals the data field of a success envelope into out.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) *Meta {
	t.Helper()
	var env struct {
		Data jsoniter.RawMessage `json:"data"`
		Meta *Meta               `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if out != nil {
		require.NoError(t, json.Unmarshal(env.Data, out), string(env.Data))
	}
	return env.Meta
}

// createCustomerID posts a customer and returns its id as rendered in JSON.
func (e *testEnv) createCustomerID(t *testing.T, name, email string) string {
	t.Helper()
	rec := e.do(http.MethodPost, "/api/v1/crm/customers", `{"name":"`+name+`","email":"`+email+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res struct {
		Success  bool `json:"success"`
		Customer struct {
			ID string `json:"id"`
		} `json:"customer"`
	}
	decodeData(t, rec, &res)
	require.True(t, res.Success, rec.Body.String())
	return res.Customer.ID
}

func (e *testEnv) createProductID(t *testing.T, name, price string, stock int) string {
	t.Helper()
	body := `{"name":"` + name + `","price":"` + price + `","stock":` + strconv.Itoa(stock) + `}`
	rec := e.do(http.MethodPost, "/api/v1/crm/products", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res struct {
		Success bool `json:"success"`
		Product struct {
			ID string `json:"id"`
		} `json:"product"`
	}
	decodeData(t, rec, &res)
	require.True(t, res.Success, rec.Body.String())
	return res.Product.ID
}

