package internal

import (
	"insurance-server/internal/insurance/domain"
)

type RenderRequest struct {
	Values domain.Values `json:"values"`
}

type ValidateResponse struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}
