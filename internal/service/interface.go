package service

import (
	"context"

	"github.com/weiawesome/wes-io-live/uid-service/internal/generator"
)

// ProfileInfo describes a configured profile.
type ProfileInfo struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Unique      bool   `json:"unique"`
	Alphabet    string `json:"alphabet,omitempty"`
	BitStrength int    `json:"bit_strength,omitempty"`
	Length      int    `json:"length,omitempty"`
}

// CustomRequest describes a one-off random generator.
type CustomRequest struct {
	Alphabet    any  `json:"alphabet"`
	BitStrength *int `json:"bit_strength"`
	Length      *int `json:"length"`
	Count       int  `json:"count"`
}

// IDService defines the interface for ID generation business logic.
type IDService interface {
	Generate(ctx context.Context, profile string) (string, error)
	GenerateBatch(ctx context.Context, profile string, count int) ([]string, error)
	GenerateCustom(ctx context.Context, req *CustomRequest) ([]string, error)
	Validate(ctx context.Context, profile, id string) error
	Inspect(ctx context.Context, profile, id string) (*generator.Inspection, error)
	Profiles() []ProfileInfo
}
