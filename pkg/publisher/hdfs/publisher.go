package hdfs

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/bacalhau-project/lambdapushdown/pkg/executor/process"
	"github.com/bacalhau-project/lambdapushdown/pkg/publisher"
)

type PublisherParams struct {
	Runner process.Runner
	// Command is the distributed filesystem client, usually "hdfs".
	Command string
	// Address is the namenode host:port used to build the published URI.
	Address string
	// Path is the absolute destination path of the jar.
	Path    string
	Timeout time.Duration
}

// Publisher copies jars into HDFS with the hdfs command line client.
type Publisher struct {
	runner  process.Runner
	command string
	address string
	path    string
	timeout time.Duration
}

// Compile-time check that publisher implements the correct interface:
var _ publisher.Publisher = (*Publisher)(nil)

func NewPublisher(params PublisherParams) *Publisher {
	return &Publisher{
		runner:  params.Runner,
		command: params.Command,
		address: params.Address,
		path:    params.Path,
		timeout: params.Timeout,
	}
}

func (p *Publisher) Publish(ctx context.Context, localPath string) (string, error) {
	_, err := p.runner.Run(ctx, process.Command{
		Name:    "publish",
		Path:    p.command,
		Args:    []string{"dfs", "-put", "-f", localPath, p.path},
		Timeout: p.timeout,
	})
	if err != nil {
		return "", err
	}

	uri := fmt.Sprintf("hdfs://%s%s", p.address, p.path)
	log.Ctx(ctx).Debug().Str("uri", uri).Msg("published jar")
	return uri, nil
}
