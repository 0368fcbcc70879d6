package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/weiawesome/wes-io-live/uid-service/internal/generator"
)

// Client calls a remote ID service.
type Client struct {
	cc *grpc.ClientConn
}

// NewClient connects to target with plaintext transport and the JSON codec.
// Extra options are applied after the defaults.
func NewClient(target string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(jsonCodec{})),
	}, opts...)

	cc, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: cc}, nil
}

func (c *Client) GenerateID(ctx context.Context, profile string) (string, error) {
	out := new(GenerateIDResponse)
	if err := c.cc.Invoke(ctx, methodGenerateID, &GenerateIDRequest{Profile: profile}, out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *Client) GenerateBatchIDs(ctx context.Context, profile string, count int) ([]string, error) {
	out := new(GenerateBatchIDsResponse)
	req := &GenerateBatchIDsRequest{Profile: profile, Count: int32(count)}
	if err := c.cc.Invoke(ctx, methodGenerateBatchIDs, req, out); err != nil {
		return nil, err
	}
	return out.IDs, nil
}

func (c *Client) ValidateID(ctx context.Context, profile, id string) (*ValidateIDResponse, error) {
	out := new(ValidateIDResponse)
	if err := c.cc.Invoke(ctx, methodValidateID, &ValidateIDRequest{Profile: profile, ID: id}, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) InspectID(ctx context.Context, profile, id string) (*generator.Inspection, error) {
	out := new(InspectIDResponse)
	if err := c.cc.Invoke(ctx, methodInspectID, &InspectIDRequest{Profile: profile, ID: id}, out); err != nil {
		return nil, err
	}
	return out.Inspection, nil
}

func (c *Client) Close() error {
	return c.cc.Close()
}
