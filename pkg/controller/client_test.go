//go:build unit || !integration

package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/phayes/freeport"
	"github.com/stretchr/testify/suite"

	"github.com/bacalhau-project/lambdapushdown/pkg/models"
	"github.com/bacalhau-project/lambdapushdown/pkg/pderrors"
)

type ClientSuite struct {
	suite.Suite
	server  *httptest.Server
	handler http.HandlerFunc
	client  *Client
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.handler(w, r)
	}))
	s.client = NewClient(Params{BaseURL: s.server.URL + "/", Timeout: 5 * time.Second})
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientSuite) TestListStaticPolicies() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodGet, r.Method)
		s.Equal("/controller/static_policy/", r.URL.Path)
		s.Equal("tok", r.Header.Get(AuthHeader))
		_, _ = io.WriteString(w, `[
			{"id": 7, "target_id": "AUTH_t/c1", "filter_name": "lambdapushdown", "params": ""},
			{"id": "8", "target_id": "AUTH_t/c2", "filter_name": "compression", "params": "x"}
		]`)
	}

	policies, err := s.client.ListStaticPolicies(context.Background(), "tok")
	s.Require().NoError(err)
	s.Equal([]models.FilterPolicy{
		{ID: "7", TargetID: "AUTH_t/c1", FilterName: "lambdapushdown"},
		{ID: "8", TargetID: "AUTH_t/c2", FilterName: "compression", Params: "x"},
	}, policies)
}

func (s *ClientSuite) TestListStaticPoliciesRejected() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, "token expired")
	}

	_, err := s.client.ListStaticPolicies(context.Background(), "tok")
	var reconcileErr *pderrors.ReconcileError
	s.Require().True(errors.As(err, &reconcileErr))
	s.Equal(http.StatusUnauthorized, reconcileErr.Status)
	s.Contains(err.Error(), "token expired")
}

func (s *ClientSuite) TestUpdatePolicyParams() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPut, r.Method)
		s.Equal("/controller/static_policy/AUTH_t/c1:7", r.URL.Path)
		s.Equal("tok", r.Header.Get(AuthHeader))
		s.Equal("application/json", r.Header.Get("Content-Type"))

		var body models.PolicyParamsUpdate
		s.NoError(json.NewDecoder(r.Body).Decode(&body))
		s.Equal("0-lambda=map:x->x+1", body.Params)
		w.WriteHeader(http.StatusCreated)
	}

	status, err := s.client.UpdatePolicyParams(context.Background(), "tok", "AUTH_t/c1:7", "0-lambda=map:x->x+1")
	s.Require().NoError(err)
	s.Equal(http.StatusCreated, status)
}

func (s *ClientSuite) TestUpdatePolicyParamsEscapesReservedCharacters() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/controller/static_policy/AUTH_t/logs#2024?v=100%:7", r.URL.Path)
		s.Equal("/controller/static_policy/AUTH_t/logs%232024%3Fv=100%25:7", r.URL.EscapedPath())
		s.Empty(r.URL.RawQuery)
		w.WriteHeader(http.StatusOK)
	}

	status, err := s.client.UpdatePolicyParams(context.Background(), "tok", "AUTH_t/logs#2024?v=100%:7", "")
	s.Require().NoError(err)
	s.Equal(http.StatusOK, status)
}

func (s *ClientSuite) TestUpdatePolicyParamsServerError() {
	var calls int32
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}

	status, err := s.client.UpdatePolicyParams(context.Background(), "tok", "t:1", "")
	s.Require().Error(err)
	s.Equal(http.StatusInternalServerError, status)
	s.Equal(pderrors.ExitReconcile, pderrors.ExitCodeFor(err))
	s.Equal(int32(1), atomic.LoadInt32(&calls), "updates must not be retried by default")
}

func (s *ClientSuite) TestRetriesWhenConfigured() {
	var calls int32
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, `[]`)
	}
	client := NewClient(Params{BaseURL: s.server.URL, Timeout: 5 * time.Second, Retries: 1})
	client.client.RetryWaitMin = time.Millisecond
	client.client.RetryWaitMax = time.Millisecond

	policies, err := client.ListStaticPolicies(context.Background(), "tok")
	s.Require().NoError(err)
	s.Empty(policies)
	s.Equal(int32(2), atomic.LoadInt32(&calls))
}

func (s *ClientSuite) TestTimeout() {
	release := make(chan struct{})
	defer close(release)
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}
	client := NewClient(Params{BaseURL: s.server.URL, Timeout: 50 * time.Millisecond})

	_, err := client.ListStaticPolicies(context.Background(), "tok")
	var timeoutErr *pderrors.TimeoutError
	s.Require().True(errors.As(err, &timeoutErr))
	s.Equal(pderrors.ExitTimeout, pderrors.ExitCodeFor(err))
}

func (s *ClientSuite) TestUnreachable() {
	port, err := freeport.GetFreePort()
	s.Require().NoError(err)
	client := NewClient(Params{BaseURL: fmt.Sprintf("http://127.0.0.1:%d", port), Timeout: 5 * time.Second})

	_, err = client.UpdatePolicyParams(context.Background(), "tok", "t:1", "")
	s.Require().Error(err)
	s.Equal(pderrors.ExitReconcile, pderrors.ExitCodeFor(err))
}
