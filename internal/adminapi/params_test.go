package adminapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryContext(target string) echo.Context {
	e := echo.New()
	return e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
}

func TestQueryTime(t *testing.T) {
	c := queryContext("/?d=2024-05-01&dt=2024-05-01%2010:30:00")

	start, err := queryTime(c, "d", false)
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local).Equal(*start), start.String())

	end, err := queryTime(c, "d", true)
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 5, 1, 23, 59, 59, 999999999, time.Local).Equal(*end), end.String())

	exact, err := queryTime(c, "dt", true)
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 5, 1, 10, 30, 0, 0, time.Local).Equal(*exact), exact.String())

	missing, err := queryTime(c, "none", false)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestQueryNumbers(t *testing.T) {
	c := queryContext("/?p=12.34&s=7&id=42&bad=x")

	p, err := queryDecimal(c, "p")
	require.NoError(t, err)
	assert.Equal(t, "12.34", p.String())

	s, err := queryInt(c, "s")
	require.NoError(t, err)
	assert.Equal(t, 7, *s)

	id, err := queryID(c, "id")
	require.NoError(t, err)
	assert.EqualValues(t, 42, *id)

	_, err = queryDecimal(c, "bad")
	assert.EqualError(t, err, `invalid value "x" for bad`)
	_, err = queryInt(c, "bad")
	assert.Error(t, err)
	_, err = queryID(c, "bad")
	assert.Error(t, err)
}

func TestParsePagination(t *testing.T) {
	page, size := parsePagination(queryContext("/"))
	assert.Equal(t, 1, page)
	assert.Equal(t, defaultPageSize, size)

	page, size = parsePagination(queryContext("/?page=3&perPage=50"))
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, size)

	_, size = parsePagination(queryContext("/?pageSize=10000"))
	assert.Equal(t, maxPageSize, size)

	page, _ = parsePagination(queryContext("/?page=-2"))
	assert.Equal(t, 1, page)
}

func TestFlexID(t *testing.T) {
	var p orderPayload
	require.NoError(t, json.Unmarshal([]byte(`{"customer_id":"12","product_ids":[3,"4"]}`), &p))
	assert.EqualValues(t, 12, p.CustomerID)
	assert.Equal(t, []int64{3, 4}, toInt64s(p.ProductIDs))

	assert.Error(t, json.Unmarshal([]byte(`{"customer_id":"abc"}`), &p))
}
