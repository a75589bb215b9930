package inference

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/bedrock"
	"github.com/anthropics/anthropic-sdk-go/option"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	"github.com/devbridge-hq/devbridge-backend/config"
	"github.com/devbridge-hq/devbridge-backend/internal/backends/domain"
)

const (
	modelID   = "us.anthropic.claude-3-5-sonnet-20240620-v1:0"
	maxTokens = 1000

	promptTemplate = "Write clean, well-commented code only. " +
		"Do not include any explanations, descriptions, greetings, or text outside the code. " +
		"Here is the description:\n%s"
)

// Client generates source code through Claude hosted on AWS Bedrock.
type Client struct {
	anthropic anthropic.Client
}

// NewClient builds a Bedrock-backed client from static AWS credentials.
func NewClient(ctx context.Context, cfg config.AWSConfig) (*Client, error) {
	awsCfg, err := awscfg.LoadDefaultConfig(ctx,
		awscfg.WithRegion(cfg.Region),
		awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &Client{
		anthropic: anthropic.NewClient(
			bedrock.WithConfig(awsCfg),
			option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		),
	}, nil
}

// GenerateCode sends one synchronous prompt and returns the generated
// source text. No retry, no streaming.
func (c *Client) GenerateCode(ctx context.Context, description string) (string, error) {
	msg, err := c.anthropic.Messages.New(ctx, anthropic.MessageNewParams{
		Model:         modelID,
		MaxTokens:     maxTokens,
		Temperature:   anthropic.Float(0),
		TopP:          anthropic.Float(0.999),
		TopK:          anthropic.Int(250),
		StopSequences: []string{"\n\nHuman:"},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(fmt.Sprintf(promptTemplate, description))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("invoke model: %v: %w", err, domain.ErrUpstream)
	}

	var reply strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			reply.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(reply.String())
	if text == "" {
		return "", fmt.Errorf("model returned no text: %w", domain.ErrInvalidResponse)
	}
	return ExtractCode(text), nil
}

// ExtractCode returns the contents of the first fenced code block in a
// model reply, dropping the language tag line. A reply with no
// complete fence is returned verbatim.
func ExtractCode(reply string) string {
	start := strings.Index(reply, "```")
	if start == -1 {
		return reply
	}
	rest := reply[start+3:]
	end := strings.Index(rest, "```")
	if end == -1 {
		return reply
	}
	block := rest[:end]
	if nl := strings.Index(block, "\n"); nl != -1 {
		block = block[nl+1:]
	}
	return strings.TrimRight(block, "\n")
}
