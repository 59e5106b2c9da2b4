package api

import (
	"encoding/json"
)

type UpdateAttributesRequest struct {
	IDs            any `json:"ids"`
	AttributeName  any `json:"attributeName"`
	AttributeValue any `json:"attributeValue"`
}

type UpdateAttributesResponse struct {
	UpdatedCount int `json:"updatedCount"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

/* - - - - - - - - - - */

type meta struct {
	TotalRecords uint64 `json:"totalRecords"`
}

type ApiResponse struct {
	Meta *meta `json:"meta,omitempty"`
	Data any   `json:"data"`
}

func NewApiResponse(data any, total uint64) ApiResponse {
	return ApiResponse{
		Meta: &meta{
			TotalRecords: total,
		},
		Data: data,
	}
}

func (r ApiResponse) Byte() []byte {
	b, _ := json.Marshal(r)
	return b
}
