package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"

	"github.com/aanand-mishra/airbear/internal/form"
	"github.com/aanand-mishra/airbear/internal/utils/response"
)

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	require.NoError(t, response.WriteJSON(rr, http.StatusTeapot, response.GeneralError(errors.New("boom"))))

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var got response.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, response.Response{Status: response.StatusError, Error: "boom"}, got)
}

func TestWriteHTML(t *testing.T) {
	rr := httptest.NewRecorder()
	require.NoError(t, response.WriteHTML(rr, http.StatusOK, g.Text("hi & bye")))

	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, "hi &amp; bye", rr.Body.String())
}

func TestValidationError(t *testing.T) {
	got := response.ValidationError(form.ValidationErrors{
		{Field: "email", Tag: "email", Err: form.ErrInvalidFormat},
		{Field: "dateOfBirth", Tag: "datetime", Err: form.ErrInvalidFormat},
		{Field: "startLocation", Tag: "oneof", Err: form.ErrInvalidFormat},
	})

	want := response.Response{
		Status: response.StatusError,
		Error: "field email must be a valid email address, " +
			"field dateOfBirth must be a date in YYYY-MM-DD format, " +
			"field startLocation must be one of the listed options",
		Fields: map[string]string{
			"email":         "must be a valid email address",
			"dateOfBirth":   "must be a date in YYYY-MM-DD format",
			"startLocation": "must be one of the listed options",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestMissingFields(t *testing.T) {
	got := response.MissingFields([]string{"email", "password"})

	assert.Equal(t, "field email is required, field password is required", got.Error)
	assert.Equal(t, map[string]string{"email": "is required", "password": "is required"}, got.Fields)
}
