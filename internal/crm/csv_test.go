package crm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCustomerCSV(t *testing.T) {
	inputs, err := ReadCustomerCSV(strings.NewReader("email,name,notes\nx@y.com,X,vip\nz@y.com,Z,\n"))
	require.NoError(t, err)
	assert.Equal(t, []CustomerInput{
		{Name: "X", Email: "x@y.com"},
		{Name: "Z", Email: "z@y.com"},
	}, inputs)
}

func TestReadCustomerCSV_Empty(t *testing.T) {
	_, err := ReadCustomerCSV(strings.NewReader(""))
	assert.Error(t, err)
}
