package module_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/image-lab/pkg/module"
)

func TestRouter_Dispatch(t *testing.T) {
	r := module.NewRouter()
	r.HandleNative("GET /healthz", func(w http.ResponseWriter, req *http.Request) {
		io.WriteString(w, "healthy")
	})
	r.HandleNative("GET /docs/", func(w http.ResponseWriter, req *http.Request) {
		io.WriteString(w, "docs:"+req.URL.Path)
	})
	r.Mount(module.New("/api", echoPath()))
	r.Mount(module.New("/uploads", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		io.WriteString(w, "uploads:"+req.URL.Path)
	})))

	tests := []struct {
		name   string
		path   string
		status int
		body   string
	}{
		{"module root", "/api", http.StatusOK, "/"},
		{"module root slash", "/api/", http.StatusOK, "/"},
		{"module path", "/api/images", http.StatusOK, "/images"},
		{"module trailing slash", "/api/images/", http.StatusOK, "/images"},
		{"second module", "/uploads/a.png", http.StatusOK, "uploads:/a.png"},
		{"native", "/healthz", http.StatusOK, "healthy"},
		{"native keeps slash", "/docs/", http.StatusOK, "docs:/docs/"},
		{"prefix lookalike", "/apix/images", http.StatusNotFound, ""},
		{"root", "/", http.StatusNotFound, ""},
		{"unknown", "/unknown", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.body != "" && rec.Body.String() != tt.body {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.body)
			}
		})
	}
}
