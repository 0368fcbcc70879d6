package grpc

import "github.com/weiawesome/wes-io-live/uid-service/internal/generator"

type GenerateIDRequest struct {
	Profile string `json:"profile"`
}

type GenerateIDResponse struct {
	ID string `json:"id"`
}

type GenerateBatchIDsRequest struct {
	Profile string `json:"profile"`
	Count   int32  `json:"count"`
}

type GenerateBatchIDsResponse struct {
	IDs []string `json:"ids"`
}

type ValidateIDRequest struct {
	Profile string `json:"profile"`
	ID      string `json:"id"`
}

type ValidateIDResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

type InspectIDRequest struct {
	Profile string `json:"profile"`
	ID      string `json:"id"`
}

type InspectIDResponse struct {
	Inspection *generator.Inspection `json:"inspection"`
}
