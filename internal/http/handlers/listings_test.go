package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type testValidator struct {
	v *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	if err := tv.v.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func newJSONContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = &testValidator{v: validator.New()}
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCombinationsFewerThanTwoProducts(t *testing.T) {
	h := NewListingHandler(nil, nil, nil)

	for name, body := range map[string]string{
		"no ids":  `{"product_ids":[]}`,
		"one id":  fmt.Sprintf(`{"product_ids":[%q]}`, uuid.New()),
		"omitted": `{}`,
	} {
		t.Run(name, func(t *testing.T) {
			c, rec := newJSONContext(http.MethodPost, "/listings/combinations", body)

			assert.NoError(t, h.Combinations(c))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"combinations":[]}`, rec.Body.String())
		})
	}
}

func TestCombinationsDeduplicatesSelection(t *testing.T) {
	h := NewListingHandler(nil, nil, nil)

	// The same product twice collapses to one, which is below the minimum
	id := uuid.New()
	body := fmt.Sprintf(`{"product_ids":[%q,%q]}`, id, id)
	c, rec := newJSONContext(http.MethodPost, "/listings/combinations", body)

	assert.NoError(t, h.Combinations(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"combinations":[]}`, rec.Body.String())
}

func TestCombinationsRejectsOversizedSelection(t *testing.T) {
	t.Setenv("MAX_COMBINATION_ITEMS", "3")
	h := NewListingHandler(nil, nil, nil)

	ids := make([]string, 4)
	for i := range ids {
		ids[i] = fmt.Sprintf("%q", uuid.New())
	}
	body := fmt.Sprintf(`{"product_ids":[%s]}`, strings.Join(ids, ","))
	c, rec := newJSONContext(http.MethodPost, "/listings/combinations", body)

	assert.NoError(t, h.Combinations(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION")
}
