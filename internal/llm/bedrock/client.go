// Package bedrock implements the embedding and generation contracts on AWS
// Bedrock (Titan embeddings, Claude messages).
package bedrock

import (
	"context"
	"errors"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"github.com/chiheb08/vespa-vectorstore/internal/faults"
)

type Client struct {
	Client       *bedrockruntime.Client
	ChatModelID  string
	EmbedModelID string
	EmbedDim     int
}

func NewClient(ctx context.Context, region string, chatModelID string, embedModelID string, embedDim int) (*Client, error) {
	if region == "" {
		return nil, fmt.Errorf("AWS region is required")
	}
	if chatModelID == "" || embedModelID == "" {
		return nil, fmt.Errorf("bedrock chat and embed model IDs are required")
	}
	if embedDim <= 0 {
		return nil, fmt.Errorf("embedding dimension must be positive, got %d", embedDim)
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}

	return &Client{
		Client:       bedrockruntime.NewFromConfig(cfg),
		ChatModelID:  chatModelID,
		EmbedModelID: embedModelID,
		EmbedDim:     embedDim,
	}, nil
}

func (c *Client) Model() string { return c.EmbedModelID }
func (c *Client) Dim() int      { return c.EmbedDim }

// classify maps SDK errors onto the shared taxonomy. A missing model surfaces
// as ResourceNotFoundException; everything else is a provider outage from the
// pipeline's point of view.
func classify(modelID string, err error) error {
	var notFound *types.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return faults.Newf(faults.KindModelNotFound,
			"model %q is not available in this region: %s (check model access in the Bedrock console)", modelID, notFound.ErrorMessage())
	}
	return faults.Wrap(faults.KindProviderUnavailable, fmt.Sprintf("bedrock call to %q failed", modelID), err)
}
