package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONSerializer_Serialize(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	err := JSONSerializer{}.Serialize(c, map[string]int{"rows": 3}, "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"rows\": 3\n}\n", rec.Body.String())
}

func TestJSONSerializer_Deserialize(t *testing.T) {
	e := echo.New()
	var v struct {
		Feature string `json:"feature"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"feature":"Rank of Rice Yield"}`))
	c := e.NewContext(req, httptest.NewRecorder())
	require.NoError(t, JSONSerializer{}.Deserialize(c, &v))
	assert.Equal(t, "Rank of Rice Yield", v.Feature)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"feature":`))
	c = e.NewContext(req, httptest.NewRecorder())
	err := JSONSerializer{}.Deserialize(c, &v)
	require.Error(t, err)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"feature":12}`))
	c = e.NewContext(req, httptest.NewRecorder())
	err = JSONSerializer{}.Deserialize(c, &v)
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestMarshal(t *testing.T) {
	a, err := marshal([]string{"China"})
	require.NoError(t, err)
	b, err := marshal([]string{"India"})
	require.NoError(t, err)

	// pooled buffers must not leak between calls
	assert.Equal(t, "[\"China\"]\n", string(a))
	assert.Equal(t, "[\"India\"]\n", string(b))
	assert.NotEqual(t, etagOf(a), etagOf(b))
}
