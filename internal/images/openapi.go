package images

import "github.com/JaimeStill/image-lab/pkg/openapi"

type spec struct {
	Upload *openapi.Operation
	List   *openapi.Operation
	Find   *openapi.Operation
}

// Spec provides OpenAPI operations for image endpoints.
var Spec = spec{
	Upload: &openapi.Operation{
		Summary:     "Upload image",
		Description: "Resize an uploaded image to exactly width×height (cover and centre-crop), store it, and record its metadata",
		RequestBody: openapi.RequestBodyMultipart(&openapi.Schema{
			Type: "object",
			Properties: map[string]*openapi.Property{
				"title":  {Type: "string", Description: "Image title. Leading and trailing whitespace is trimmed before validation and storage", MinLength: intPtr(1), MaxLength: intPtr(MaxTitleLength)},
				"width":  {Type: "integer", Description: "Target width in pixels", Minimum: intPtr(1)},
				"height": {Type: "integer", Description: "Target height in pixels", Minimum: intPtr(1)},
				"file":   {Type: "string", Format: "binary", Description: "Image file with an image/* content type"},
			},
			Required: []string{"title", "width", "height", "file"},
		}),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Image created", "Image"),
			400: openapi.ResponseRef("BadRequest"),
			413: openapi.ResponseRef("PayloadTooLarge"),
			500: openapi.ResponseRef("InternalError"),
		},
	},
	List: &openapi.Operation{
		Summary:     "List images",
		Description: "List images newest first with optional case-insensitive title filter",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "1-based page number (default 1)", false),
			openapi.QueryParam("limit", "integer", "Page size (default 10). Values above the configured maximum (default 100) are reduced to it and meta.limit reports the effective size", false),
			openapi.QueryParam("title", "string", "Case-insensitive title substring", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Image page", "ImagePage"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Find: &openapi.Operation{
		Summary: "Find image",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Image ID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Image", "Image"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

// Schemas returns OpenAPI schemas for image types.
func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Image": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"id":     {Type: "string", Format: "uuid"},
				"title":  {Type: "string", Description: "Trimmed title"},
				"width":  {Type: "integer"},
				"height": {Type: "integer"},
				"url":    {Type: "string", Description: "Relative artifact URL", Example: "/uploads/1718000000000-123456789-a1b2c3d4.jpg"},
			},
			Required: []string{"id", "title", "width", "height", "url"},
		},
		"ImagePage": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"data": {Type: "array", Items: openapi.SchemaRef("Image")},
				"meta": {Ref: "#/components/schemas/PageMeta"},
			},
			Required: []string{"data", "meta"},
		},
	}
}

func intPtr(n int) *int { return &n }
