package publisher

import "context"

// Publisher makes a locally built jar reachable by the cluster.
type Publisher interface {
	// Publish uploads localPath to the configured well-known location,
	// replacing any earlier version, and returns the URI the cluster
	// should load it from.
	Publish(ctx context.Context, localPath string) (string, error)
}
