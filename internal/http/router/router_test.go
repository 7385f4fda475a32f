package router_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/airbear/internal/form"
	"github.com/aanand-mishra/airbear/internal/http/router"
	"github.com/aanand-mishra/airbear/internal/metrics"
	"github.com/aanand-mishra/airbear/internal/storage/memory"
	"github.com/aanand-mishra/airbear/internal/types"
	"github.com/aanand-mishra/airbear/internal/utils/response"
)

func newHandler(t *testing.T, mode form.Mode) (http.Handler, *memory.Memory) {
	t.Helper()
	store := memory.New(0)
	return router.New(router.Deps{Store: store, Metrics: metrics.New(), Mode: mode, ExposeAttempts: true}), store
}

func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func listAttempts(t *testing.T, h http.Handler, query string) []types.Attempt {
	t.Helper()
	rr := do(h, httptest.NewRequest(http.MethodGet, "/api/attempts"+query, nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var attempts []types.Attempt
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &attempts))
	return attempts
}

func TestStaticPages(t *testing.T) {
	h, _ := newHandler(t, form.Strict)

	for _, path := range []string{"/", "/login", "/register", "/book-ride", "/forgot-password", "/terms", "/privacy"} {
		rr := do(h, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"), path)
		assert.Contains(t, rr.Body.String(), `class="logo"`, path)
	}

	rr := do(h, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestLoginFlow(t *testing.T) {
	h, _ := newHandler(t, form.Strict)

	rr := do(h, postForm("/login", url.Values{"email": {"user@test.com"}, "password": {"secret"}}))
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Your request was received")
	assert.Contains(t, body, `value="user@test.com"`)
	assert.NotContains(t, body, "secret")

	attempts := listAttempts(t, h, "?form=login")
	require.Len(t, attempts, 1)
	assert.Equal(t, "login", attempts[0].Form)
	assert.Equal(t, map[string]any{"email": "[redacted]", "password": "[redacted]"}, attempts[0].Fields)
	assert.NotEmpty(t, attempts[0].ID)
}

func TestLoginIncomplete(t *testing.T) {
	h, store := newHandler(t, form.Strict)

	rr := do(h, postForm("/login", url.Values{"email": {"user@test.com"}}))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "Please fill in every required field.")

	got, err := store.ListAttempts(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRegisterNeedsTerms(t *testing.T) {
	h, _ := newHandler(t, form.Strict)
	values := url.Values{
		"name":        {"Jane Doe"},
		"email":       {"jane@example.com"},
		"password":    {"s3cret"},
		"dateOfBirth": {"1990-04-01"},
	}

	rr := do(h, postForm("/register", values))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	values.Set("acceptTerms", "on")
	rr = do(h, postForm("/register", values))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Your request was received")

	attempts := listAttempts(t, h, "?form=register")
	require.Len(t, attempts, 1)
	want := map[string]any{
		"name":        "[redacted]",
		"email":       "[redacted]",
		"password":    "[redacted]",
		"dateOfBirth": "[redacted]",
		"acceptTerms": true,
	}
	assert.Equal(t, want, attempts[0].Fields)
}

func TestRegisterKeepsMarkupInName(t *testing.T) {
	h, _ := newHandler(t, form.Strict)

	rr := do(h, postForm("/register", url.Values{
		"name":        {"<Jane>"},
		"email":       {"jane@example.com"},
		"password":    {"s3cret"},
		"dateOfBirth": {"1990-04-01"},
		"acceptTerms": {"on"},
	}))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `value="&lt;Jane&gt;"`)
}

func TestLoginIgnoresQueryValues(t *testing.T) {
	h, store := newHandler(t, form.Strict)

	rr := do(h, postForm("/login?email=user%40test.com&password=secret", url.Values{}))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	got, err := store.ListAttempts(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAttemptsHiddenUnlessExposed(t *testing.T) {
	h := router.New(router.Deps{Store: memory.New(0), Metrics: metrics.New(), Mode: form.Lenient})

	rr := do(h, httptest.NewRequest(http.MethodGet, "/api/attempts", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRegisterBadFormats(t *testing.T) {
	h, _ := newHandler(t, form.Strict)

	rr := do(h, postForm("/register", url.Values{
		"name":        {"Jane Doe"},
		"email":       {"jane-at-example"},
		"password":    {"s3cret"},
		"dateOfBirth": {"April 1st"},
		"acceptTerms": {"on"},
	}))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "must be a valid email address")
	assert.Contains(t, rr.Body.String(), "must be a date in YYYY-MM-DD format")
}

func TestBookRide(t *testing.T) {
	h, _ := newHandler(t, form.Strict)

	rr := do(h, postForm("/book-ride", url.Values{
		"startLocation": {"Riverside Park"},
		"endLocation":   {"Riverside Park"},
	}))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `<option value="Riverside Park" selected>`)

	attempts := listAttempts(t, h, "?form=book-ride")
	require.Len(t, attempts, 1)
	assert.Equal(t, map[string]any{"startLocation": "Riverside Park", "endLocation": "Riverside Park"}, attempts[0].Fields)

	rr = do(h, postForm("/book-ride", url.Values{
		"startLocation": {"Moon Base"},
		"endLocation":   {"Riverside Park"},
	}))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "must be one of the listed options")
}

func TestAPISubmit(t *testing.T) {
	h, _ := newHandler(t, form.Strict)

	rr := do(h, postJSON("/api/forms/login", `{"email":"user@test.com","password":"secret"}`))
	require.Equal(t, http.StatusAccepted, rr.Code)

	var res form.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, form.StatusAccepted, res.Status)
	assert.NotEmpty(t, res.AttemptID)

	attempts := listAttempts(t, h, "")
	require.Len(t, attempts, 1)
	assert.Equal(t, res.AttemptID, attempts[0].ID)
}

func TestAPISubmitErrors(t *testing.T) {
	tests := []struct {
		name   string
		mode   form.Mode
		path   string
		body   string
		status int
		errMsg string
	}{
		{"unknown form", form.Strict, "/api/forms/checkout", `{}`, http.StatusNotFound, "unknown form: checkout"},
		{"markup in form name", form.Strict, "/api/forms/%3Ci%3Echeckout", `{}`, http.StatusNotFound, "unknown form: checkout"},
		{"oversized body", form.Strict, "/api/forms/login", `{"email":"` + strings.Repeat("a", 32<<10) + `"}`, http.StatusRequestEntityTooLarge, "request body is too large"},
		{"empty body", form.Strict, "/api/forms/login", ``, http.StatusBadRequest, "request body is empty"},
		{"unknown field", form.Strict, "/api/forms/login", `{"username":"bob"}`, http.StatusBadRequest, "unknown field"},
		{"kind mismatch", form.Strict, "/api/forms/register", `{"acceptTerms":"on"}`, http.StatusBadRequest, "value does not match field kind"},
		{"missing", form.Strict, "/api/forms/book-ride", `{"startLocation":"Train Station"}`, http.StatusUnprocessableEntity, "field endLocation is required"},
		{"invalid", form.Strict, "/api/forms/login", `{"email":"nope","password":"x"}`, http.StatusBadRequest, "field email must be a valid email address"},
		{"lenient coerces", form.Lenient, "/api/forms/register", `{"name":"J","email":"j@x.io","password":"p","dateOfBirth":"2000-01-01","acceptTerms":"on"}`, http.StatusAccepted, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, _ := newHandler(t, tc.mode)
			rr := do(h, postJSON(tc.path, tc.body))
			require.Equal(t, tc.status, rr.Code, rr.Body.String())

			if tc.errMsg == "" {
				return
			}
			var resp response.Response
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, response.StatusError, resp.Status)
			assert.Contains(t, resp.Error, tc.errMsg)
		})
	}
}

func TestListAttemptsBadLimit(t *testing.T) {
	h, _ := newHandler(t, form.Strict)

	rr := do(h, httptest.NewRequest(http.MethodGet, "/api/attempts?limit=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	h, _ := newHandler(t, form.Strict)

	rr := do(h, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())

	do(h, postForm("/login", url.Values{"email": {"user@test.com"}, "password": {"secret"}}))

	rr = do(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `airbear_form_submissions_total{form="login",outcome="accepted"} 1`)
}
