package source

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

func parseS3URL(rawURL string) (string, string, error) {
	parts := strings.SplitN(strings.TrimPrefix(rawURL, "s3://"), "/", 2)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid S3 url %q, expected s3://bucket/key", rawURL)
	}
	return parts[0], parts[1], nil
}

// EndpointEnv overrides the S3 endpoint (MinIO, LocalStack, ...). Requests to
// a custom endpoint use path-style addressing.
const EndpointEnv = "YTMP3_S3_ENDPOINT"

// newS3Client loads credentials the usual way; AWS_PROFILE selects the shared
// config profile.
func newS3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRetryMode("adaptive"))
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}
	endpoint := os.Getenv(EndpointEnv)
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.DisableLogOutputChecksumValidationSkipped = true
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func fetchS3(ctx context.Context, rawURL string) ([]byte, error) {
	bucket, key, err := parseS3URL(rawURL)
	if err != nil {
		return nil, err
	}
	client, err := newS3Client(ctx)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("op", "source/s3").Msgf("Fetching url list from bucket %s key %s", bucket, key)
	buf := manager.NewWriteAtBuffer(nil)
	downloader := manager.NewDownloader(client)
	if _, err := downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return nil, fmt.Errorf("error downloading url list from S3: %w", err)
	}
	return buf.Bytes(), nil
}
