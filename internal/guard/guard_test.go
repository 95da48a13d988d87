package guard

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedirect(t *testing.T) {
	cases := []struct {
		path    string
		session bool
		want    string
	}{
		{"/", false, ""},
		{"/auth/signin", false, ""},
		{"/auth/signup", false, ""},
		{"/dashboard", false, "/auth/signin"},
		{"/leads", false, "/auth/signin"},
		{"/", true, "/dashboard"},
		{"/auth/signin", true, "/dashboard"},
		{"/auth/signup", true, "/dashboard"},
		{"/dashboard", true, ""},
		{"/leads", true, ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Redirect(tc.path, tc.session), "%s session=%v", tc.path, tc.session)
	}
}

func TestMiddleware(t *testing.T) {
	h := Middleware("accessToken")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leads", nil))
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/auth/signin", rec.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/leads", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: "t"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: "t"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	req = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: ""})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "/auth/signin", rec.Header().Get("Location"))
}
