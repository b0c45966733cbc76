//go:build unit || !integration

package system

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/bacalhau-project/lambdapushdown/pkg/logger"
)

type SystemSuite struct {
	suite.Suite
}

func TestSystemSuite(t *testing.T) {
	suite.Run(t, new(SystemSuite))
}

func (s *SystemSuite) SetupTest() {
	logger.ConfigureTestLogging(s.T())
}

func (s *SystemSuite) TestCleanupManager() {
	var order []string

	cm := NewCleanupManager()
	cm.RegisterCallback("flush traces", func() error {
		order = append(order, "flush traces")
		return nil
	})
	cm.RegisterCallback("remove build artifacts", func() error {
		order = append(order, "remove build artifacts")
		return errors.New("failed but others still run")
	})

	err := cm.Cleanup(context.Background())
	s.Require().Error(err)
	s.Contains(err.Error(), "failed but others still run")
	s.Equal([]string{"remove build artifacts", "flush traces"}, order)

	// second call is a no-op
	s.NoError(cm.Cleanup(context.Background()))
	s.Len(order, 2)

	cm.RegisterCallback("late", func() error {
		order = append(order, "late")
		return nil
	})
	s.NoError(cm.Cleanup(context.Background()))
	s.Len(order, 2)
}

func (s *SystemSuite) TestCleanupIgnoresCanceled() {
	cm := NewCleanupManager()
	cm.RegisterCallback("canceled", func() error { return context.Canceled })
	s.NoError(cm.Cleanup(context.Background()))
}

func (s *SystemSuite) TestWaitForFileAppears() {
	path := filepath.Join(s.T().TempDir(), "artifact.jar")
	go func() {
		time.Sleep(150 * time.Millisecond)
		_ = os.WriteFile(path, []byte("jar"), 0o600)
	}()
	s.Require().NoError(WaitForFile(context.Background(), path, 2*time.Second))
}

func (s *SystemSuite) TestWaitForFileMissing() {
	path := filepath.Join(s.T().TempDir(), "never.jar")
	err := WaitForFile(context.Background(), path, 0)
	require.Error(s.T(), err)
	s.Contains(err.Error(), "max attempts reached")
}

func (s *SystemSuite) TestFunctionWaiterHonoursContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	waiter := &FunctionWaiter{
		Name:        "never",
		MaxAttempts: 10,
		Delay:       time.Second,
		Handler:     func() (bool, error) { return false, nil },
	}
	s.ErrorIs(waiter.Wait(ctx), context.Canceled)
}
