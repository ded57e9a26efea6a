package storage

import (
	"fmt"
	"io"
	"strings"
	"time"

	"sceneyard/pkg/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Client wraps an S3-compatible bucket (Cloudflare R2 in production, MinIO in
// local development). Asset rows store opaque keys; reads go through the public
// CDN base URL, writes through presigned PUT URLs.
type Client struct {
	s3Client   *s3.S3
	bucket     string
	cdnBaseURL string
}

func NewClient(cfg *config.Config) (*Client, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.StorageRegion),
		Credentials: credentials.NewStaticCredentials(
			cfg.StorageAccessKeyID,
			cfg.StorageSecretAccessKey,
			"",
		),
	}

	// R2 and MinIO both use a custom endpoint with path-style addressing
	if cfg.StorageEndpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.StorageEndpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		if cfg.StorageUseSSL == "false" {
			awsConfig.DisableSSL = aws.Bool(true)
		}
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage session: %w", err)
	}

	return &Client{
		s3Client:   s3.New(sess),
		bucket:     cfg.StorageBucket,
		cdnBaseURL: strings.TrimSuffix(cfg.CDNBaseURL, "/"),
	}, nil
}

func (c *Client) UploadFile(key string, body io.ReadSeeker, contentType string) error {
	_, err := c.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	return nil
}

func (c *Client) DeleteFile(key string) error {
	_, err := c.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// PresignPut returns a short-lived URL that lets the admin UI upload an asset
// directly to the bucket.
func (c *Client) PresignPut(key, contentType string, expires time.Duration) (string, error) {
	req, _ := c.s3Client.PutObjectRequest(&s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	})
	url, err := req.Presign(expires)
	if err != nil {
		return "", fmt.Errorf("failed to presign put: %w", err)
	}
	return url, nil
}

// StreamObject fetches an object for the same-origin download proxy. The caller
// must close the returned body.
func (c *Client) StreamObject(key string) (io.ReadCloser, string, int64, error) {
	out, err := c.s3Client.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to get object: %w", err)
	}
	return out.Body, aws.StringValue(out.ContentType), aws.Int64Value(out.ContentLength), nil
}

// PublicURL resolves a storage key against the CDN base for read access.
func (c *Client) PublicURL(key string) string {
	if c.cdnBaseURL != "" {
		return fmt.Sprintf("%s/%s", c.cdnBaseURL, key)
	}

	region := aws.StringValue(c.s3Client.Config.Region)
	if region == "" || region == "auto" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, region, key)
}
