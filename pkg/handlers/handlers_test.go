package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"kyber-portal/pkg/client"
	"kyber-portal/pkg/form"
	"kyber-portal/pkg/models"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// backend fakes the messaging server's account API.
func backend(t *testing.T, resp models.APIResponse) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var creds models.Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Errorf("backend: decode: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newRouter(forms *form.Handler) *gin.Engine {
	r := gin.New()
	Setup(r, New(forms))
	return r
}

func postForm(r http.Handler, path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetPages(t *testing.T) {
	r := newRouter(form.New(form.Local))

	for path, want := range map[string]string{"/login": `id="loginForm"`, "/signup": `name="dob"`} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s: status %d", path, w.Code)
		}
		if !strings.Contains(w.Body.String(), want) {
			t.Errorf("GET %s: body missing %s", path, want)
		}
	}
}

func TestLoginSubmitSuccess(t *testing.T) {
	srv, calls := backend(t, models.APIResponse{Success: true})
	r := newRouter(form.New(form.Remote, form.WithAPI(client.New(srv.URL))))

	w := postForm(r, "/login", url.Values{"username": {"a"}, "password": {"b"}})

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected one backend call, got %d", calls.Load())
	}
	body := w.Body.String()
	if !strings.Contains(body, `<p id="message" style="color: green">Login successful! You can now use the CLI.</p>`) {
		t.Errorf("success message missing:\n%s", body)
	}
}

func TestLoginSubmitMissingFields(t *testing.T) {
	srv, calls := backend(t, models.APIResponse{Success: true})
	r := newRouter(form.New(form.Remote, form.WithAPI(client.New(srv.URL))))

	w := postForm(r, "/login", url.Values{"username": {"a"}})

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status %d", w.Code)
	}
	if calls.Load() != 0 {
		t.Fatal("backend called for an incomplete form")
	}
	if !strings.Contains(w.Body.String(), `role="alert">Please fill in both username and password.</div>`) {
		t.Errorf("alert missing:\n%s", w.Body.String())
	}
}

func TestSignupSubmitRedirectsToLogin(t *testing.T) {
	srv, _ := backend(t, models.APIResponse{Success: true})
	r := newRouter(form.New(form.Remote, form.WithAPI(client.New(srv.URL))))

	w := postForm(r, "/signup", url.Values{
		"newUsername":     {"alice"},
		"newPassword":     {"pw"},
		"confirmPassword": {"pw"},
	})

	body := w.Body.String()
	if !strings.Contains(body, "Account created successfully! You can now use the CLI.") {
		t.Errorf("success message missing:\n%s", body)
	}
	if !strings.Contains(body, `<meta http-equiv="refresh" content="2;url=/login">`) {
		t.Errorf("redirect missing:\n%s", body)
	}
}

func TestSignupSubmitMismatch(t *testing.T) {
	srv, calls := backend(t, models.APIResponse{Success: true})
	r := newRouter(form.New(form.Remote, form.WithAPI(client.New(srv.URL))))

	w := postForm(r, "/signup", url.Values{
		"newUsername":     {"alice"},
		"newPassword":     {"pw"},
		"confirmPassword": {"other"},
	})

	if calls.Load() != 0 {
		t.Fatal("backend called for mismatched passwords")
	}
	if !strings.Contains(w.Body.String(), `style="color: red">Passwords do not match.</p>`) {
		t.Errorf("mismatch message missing:\n%s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "http-equiv") {
		t.Error("rejected signup must not redirect")
	}
}

func TestSignupSubmitBackendDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()
	r := newRouter(form.New(form.Remote, form.WithAPI(client.New(base))))

	w := postForm(r, "/signup", url.Values{
		"newUsername":     {"alice"},
		"newPassword":     {"pw"},
		"confirmPassword": {"pw"},
	})

	body := w.Body.String()
	if !strings.Contains(body, `style="color: red">Error: `) {
		t.Errorf("error message missing:\n%s", body)
	}
	if strings.Contains(body, "http-equiv") {
		t.Error("failed signup must not redirect")
	}
}

func TestNativeSubmitOnlyRunsWhenNotPrevented(t *testing.T) {
	r := gin.New()
	r.POST("/login", func(c *gin.Context) {}, NativeSubmit)

	w := postForm(r, "/login", url.Values{})
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/login" {
		t.Fatalf("expected native reload, got %d %q", w.Code, w.Header().Get("Location"))
	}

	r = newRouter(form.New(form.Local))
	w = postForm(r, "/login", url.Values{"username": {"a"}, "password": {"b"}})
	if w.Code != http.StatusOK {
		t.Fatalf("prevented submit should render the page, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `role="alert">Login successful!</div>`) {
		t.Errorf("local login alert missing:\n%s", w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	r := newRouter(form.New(form.Local))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" || body["strategy"] != "local" {
		t.Fatalf("unexpected health body %v", body)
	}
}
