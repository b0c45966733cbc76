package s3

import (
	"context"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Uploader is the part of manager.Uploader the publisher uses.
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// DefaultAWSConfig loads credentials and region the usual way: environment,
// shared config files, then instance metadata.
func DefaultAWSConfig(ctx context.Context) (aws.Config, error) {
	// avoid hitting the metadata service on every run
	if _, ok := os.LookupEnv("AWS_EC2_METADATA_TTL"); !ok {
		if err := os.Setenv("AWS_EC2_METADATA_TTL", "3600"); err != nil {
			return aws.Config{}, err
		}
	}
	return config.LoadDefaultConfig(ctx)
}

// NewUploader returns an uploader for the given endpoint and region. An
// empty endpoint uses AWS. Custom endpoints (MinIO, Ceph RGW) are addressed
// path style.
func NewUploader(awsConfig aws.Config, endpoint, region string) *manager.Uploader {
	s3Config := awsConfig.Copy()
	if region != "" {
		s3Config.Region = region
	}
	s3Config.HTTPClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	if endpoint != "" {
		s3Config.EndpointResolverWithOptions =
			aws.EndpointResolverWithOptionsFunc(func(service, resolvedRegion string, options ...any) (aws.Endpoint, error) {
				if region != "" {
					resolvedRegion = region
				}
				return aws.Endpoint{
					PartitionID:       "aws",
					URL:               endpoint,
					SigningRegion:     resolvedRegion,
					HostnameImmutable: true,
				}, nil
			})
	}

	client := s3.NewFromConfig(s3Config, func(o *s3.Options) {
		o.UsePathStyle = endpoint != ""
	})
	return manager.NewUploader(client)
}
