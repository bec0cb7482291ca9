package s3

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/easybody/easybody-backend/pkg/config"
)

const defaultUploadExpiry = time.Hour

type presignAPI interface {
	PresignPutObject(ctx context.Context, input *awss3.PutObjectInput, optFns ...func(*awss3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Client issues presigned upload URLs against an S3-compatible bucket.
type Client struct {
	cfg       config.S3Config
	presigner presignAPI
	now       func() time.Time
}

// UploadTicket is handed to API clients so they can PUT the object directly.
type UploadTicket struct {
	UploadURL string        `json:"upload_url"`
	PublicURL string        `json:"public_url"`
	Key       string        `json:"key"`
	ExpiresIn time.Duration `json:"expires_in"`
}

// NewClient wires an S3 client from static credentials. A custom endpoint
// supports R2/minio style deployments.
func NewClient(cfg config.S3Config) (*Client, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}
	opts := awss3.Options{
		Region: cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	raw := awss3.New(opts)
	return &Client{
		cfg:       cfg,
		presigner: awss3.NewPresignClient(raw),
		now:       time.Now,
	}, nil
}

// PresignUpload returns a short-lived PUT URL for the given object key.
func (c *Client) PresignUpload(ctx context.Context, key, contentType string) (*UploadTicket, error) {
	if c.presigner == nil {
		return nil, errors.New("storage client not initialized")
	}
	if key == "" {
		return nil, errors.New("object key is required")
	}

	expiry := c.cfg.UploadURLExpiry
	if expiry <= 0 {
		expiry = defaultUploadExpiry
	}

	input := &awss3.PutObjectInput{
		Bucket:      aws.String(c.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}
	req, err := c.presigner.PresignPutObject(ctx, input, func(opts *awss3.PresignOptions) {
		opts.Expires = expiry
	})
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}

	return &UploadTicket{
		UploadURL: req.URL,
		PublicURL: c.PublicURL(key),
		Key:       key,
		ExpiresIn: expiry,
	}, nil
}

// ObjectKey builds a collision-free key under the given folder, scoped
// to the uploading user.
func (c *Client) ObjectKey(folder string, userID uuid.UUID, fileName string) string {
	ext := path.Ext(fileName)
	return fmt.Sprintf("%s/%s/%d_%s%s", folder, userID, c.now().Unix(), uuid.New(), ext)
}

// PublicURL maps an object key to its public address, when one is configured.
func (c *Client) PublicURL(key string) string {
	if c.cfg.PublicBaseURL == "" {
		return ""
	}
	return strings.TrimSuffix(c.cfg.PublicBaseURL, "/") + "/" + key
}
