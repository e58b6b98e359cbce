package routes_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/image-lab/pkg/openapi"
	"github.com/JaimeStill/image-lab/pkg/routes"
)

func write(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func imagesGroup() routes.Group {
	return routes.Group{
		Prefix: "/images",
		Tags:   []string{"Images"},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: write("list"), OpenAPI: &openapi.Operation{Summary: "List images"}},
			{Method: "POST", Pattern: "", Handler: write("upload"), OpenAPI: &openapi.Operation{Summary: "Upload", Tags: []string{"Uploads"}}},
			{Method: "GET", Pattern: "/{id}", Handler: write("find"), OpenAPI: &openapi.Operation{Summary: "Get image"}},
			{Method: "GET", Pattern: "/hidden", Handler: write("hidden")},
		},
		Children: []routes.Group{
			{
				Prefix: "/stats",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: write("stats"), OpenAPI: &openapi.Operation{Summary: "Stats"}},
				},
			},
		},
	}
}

func TestGroup_AddToSpec(t *testing.T) {
	spec := openapi.NewSpec("Test API", "1.0.0")
	imagesGroup().AddToSpec("/api", spec)

	item := spec.Paths["/api/images"]
	if item == nil || item.Get == nil || item.Post == nil {
		t.Fatalf("Paths[/api/images] = %+v, want GET and POST", item)
	}

	if tags := item.Get.Tags; len(tags) != 1 || tags[0] != "Images" {
		t.Errorf("inherited tags = %v, want [Images]", tags)
	}
	if tags := item.Post.Tags; len(tags) != 1 || tags[0] != "Uploads" {
		t.Errorf("explicit tags = %v, want [Uploads]", tags)
	}

	if spec.Paths["/api/images/{id}"] == nil {
		t.Error("path /api/images/{id} not added")
	}
	if spec.Paths["/api/images/stats"] == nil {
		t.Error("child path /api/images/stats not added")
	}
	if spec.Paths["/api/images/hidden"] != nil {
		t.Error("route without OpenAPI metadata should not be documented")
	}
}

func TestRegister_ServesRoutes(t *testing.T) {
	mux := http.NewServeMux()
	spec := openapi.NewSpec("Test API", "1.0.0")

	routes.Register(mux, "/api", spec, imagesGroup())

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodGet, "/images", "list"},
		{http.MethodPost, "/images", "upload"},
		{http.MethodGet, "/images/abc", "find"},
		{http.MethodGet, "/images/hidden", "hidden"},
		{http.MethodGet, "/images/stats", "stats"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			body, _ := io.ReadAll(rec.Result().Body)
			if string(body) != tt.want {
				t.Errorf("body = %q, want %q", body, tt.want)
			}
		})
	}
}

func TestRegister_NilSpec(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, "", nil, imagesGroup())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/images", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
