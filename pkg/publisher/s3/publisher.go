package s3

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/bacalhau-project/lambdapushdown/pkg/pderrors"
	"github.com/bacalhau-project/lambdapushdown/pkg/publisher"
	"github.com/bacalhau-project/lambdapushdown/pkg/util/closer"
)

type PublisherParams struct {
	Uploader Uploader
	Bucket   string
	// Path is the absolute object path; the key is Path without the leading slash.
	Path    string
	Timeout time.Duration
}

// Publisher uploads jars to an S3 compatible object store. The cluster
// reads them back through the s3a filesystem.
type Publisher struct {
	uploader Uploader
	bucket   string
	key      string
	timeout  time.Duration
}

// Compile-time check that publisher implements the correct interface:
var _ publisher.Publisher = (*Publisher)(nil)

func NewPublisher(params PublisherParams) *Publisher {
	return &Publisher{
		uploader: params.Uploader,
		bucket:   params.Bucket,
		key:      strings.TrimPrefix(params.Path, "/"),
		timeout:  params.Timeout,
	}
}

func (p *Publisher) Publish(ctx context.Context, localPath string) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	jar, err := os.Open(localPath)
	if err != nil {
		return "", errors.Wrap(err, "opening jar")
	}
	defer closer.CloseWithLogOnError("jar", jar)

	res, err := p.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(p.key),
		Body:        jar,
		ContentType: aws.String("application/java-archive"),
	})
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", pderrors.NewTimeoutError("publish", p.timeout, err)
		}
		return "", errors.Wrapf(err, "uploading to s3://%s/%s", p.bucket, p.key)
	}

	uri := fmt.Sprintf("s3a://%s/%s", p.bucket, p.key)
	log.Ctx(ctx).Debug().Str("uri", uri).Str("location", res.Location).Msg("published jar")
	return uri, nil
}
