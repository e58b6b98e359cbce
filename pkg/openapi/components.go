package openapi

import "maps"

func intPtr(n int) *int { return &n }

// NewComponents returns components shared by every API: the error body,
// page metadata, and common error responses.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type: "object",
				Properties: map[string]*Property{
					"error": {Type: "string", Description: "Error message"},
				},
				Required: []string{"error"},
			},
			"PageMeta": {
				Type: "object",
				Properties: map[string]*Property{
					"total": {Type: "integer", Description: "Records matching the filter"},
					"page":  {Type: "integer", Description: "Effective 1-based page", Minimum: intPtr(1)},
					"limit": {Type: "integer", Description: "Effective page size", Minimum: intPtr(1)},
				},
				Required: []string{"total", "page", "limit"},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":      errorResponse("Invalid request"),
			"NotFound":        errorResponse("Resource not found"),
			"Conflict":        errorResponse("Resource conflict"),
			"PayloadTooLarge": errorResponse("Request body exceeds the upload limit"),
			"InternalError":   errorResponse("Internal server error"),
		},
	}
}

// AddSchemas merges schemas into the components.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

func errorResponse(description string) *Response {
	return &Response{
		Description: description,
		Content: map[string]*MediaType{
			"application/json": {Schema: SchemaRef("Error")},
		},
	}
}
