//go:build unit || !integration

package reconciler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/bacalhau-project/lambdapushdown/pkg/auth"
	"github.com/bacalhau-project/lambdapushdown/pkg/models"
	"github.com/bacalhau-project/lambdapushdown/pkg/pderrors"
)

const filterName = "lambdapushdown"

var testPolicies = []models.FilterPolicy{
	{ID: "1", TargetID: "AUTH_t/c1", FilterName: filterName},
	{ID: "2", TargetID: "AUTH_t/c2", FilterName: filterName},
	{ID: "3", TargetID: "AUTH_t/c3", FilterName: "compression"},
}

type ReconcilerSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	tokens     *auth.MockTokenSource
	client     *MockPolicyClient
	reconciler *Reconciler
}

func TestReconcilerSuite(t *testing.T) {
	suite.Run(t, new(ReconcilerSuite))
}

func (s *ReconcilerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.tokens = auth.NewMockTokenSource(s.ctrl)
	s.client = NewMockPolicyClient(s.ctrl)
	s.reconciler = NewReconciler(Params{Tokens: s.tokens, Client: s.client, FilterName: filterName})
	s.tokens.EXPECT().Token(gomock.Any()).Return(auth.Token("tok"), nil).AnyTimes()
}

func (s *ReconcilerSuite) TestEmptyMappingStillFetchesAndSucceeds() {
	s.client.EXPECT().ListStaticPolicies(gomock.Any(), auth.Token("tok")).Return(testPolicies, nil)
	s.client.EXPECT().UpdatePolicyParams(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	outcome, err := s.reconciler.Reconcile(context.Background(), map[string][]models.LambdaCandidate{})
	s.Require().NoError(err)
	s.Equal(models.AllUpdated, outcome.Status)
	s.Nil(outcome.LastHTTPStatus)
	s.Empty(outcome.Containers)
}

func (s *ReconcilerSuite) TestUpdatesEveryContainer() {
	s.client.EXPECT().ListStaticPolicies(gomock.Any(), gomock.Any()).Return(testPolicies, nil)
	gomock.InOrder(
		s.client.EXPECT().UpdatePolicyParams(gomock.Any(), auth.Token("tok"), "AUTH_t/c1:1", "0-lambda=map:x->x+1,1-lambda=filter:x->x>0").
			Return(http.StatusCreated, nil),
		s.client.EXPECT().UpdatePolicyParams(gomock.Any(), auth.Token("tok"), "AUTH_t/c2:2", "0-lambda=map:y->y").
			Return(http.StatusOK, nil),
	)

	outcome, err := s.reconciler.Reconcile(context.Background(), map[string][]models.LambdaCandidate{
		"c2": {{TypeAndBody: "map:y->y"}},
		"c1": {{TypeAndBody: "map:x->x+1"}, {TypeAndBody: "filter:x->x>0"}},
	})
	s.Require().NoError(err)
	s.Equal(models.AllUpdated, outcome.Status)
	s.True(outcome.Succeeded())
	s.Require().NotNil(outcome.LastHTTPStatus)
	s.Equal(http.StatusOK, *outcome.LastHTTPStatus)
	s.Require().Len(outcome.Containers, 2)
	s.Equal("c1", outcome.Containers[0].Container)
	s.Equal("c2", outcome.Containers[1].Container)
}

func (s *ReconcilerSuite) TestMissingPolicyIssuesNoUpdates() {
	s.client.EXPECT().ListStaticPolicies(gomock.Any(), gomock.Any()).Return(testPolicies, nil)
	s.client.EXPECT().UpdatePolicyParams(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	outcome, err := s.reconciler.Reconcile(context.Background(), map[string][]models.LambdaCandidate{
		"c1": {{TypeAndBody: "map:x->x+1"}},
		"c9": {{TypeAndBody: "map:x->x+1"}},
	})
	s.Require().NoError(err)
	s.Equal(models.PolicyMissing, outcome.Status)
	var missing *pderrors.PolicyMissingError
	s.Require().True(errors.As(outcome.Err, &missing))
	s.Equal("c9", missing.Container)
	s.Nil(outcome.LastHTTPStatus)
}

func (s *ReconcilerSuite) TestOtherFilterDoesNotMatch() {
	s.client.EXPECT().ListStaticPolicies(gomock.Any(), gomock.Any()).Return(testPolicies, nil)

	outcome, err := s.reconciler.Reconcile(context.Background(), map[string][]models.LambdaCandidate{
		"c3": {{TypeAndBody: "map:x->x+1"}},
	})
	s.Require().NoError(err)
	s.Equal(models.PolicyMissing, outcome.Status)
}

func (s *ReconcilerSuite) TestPartialFailureIsReported() {
	failure := pderrors.NewReconcileError("update policy AUTH_t/c1:1", http.StatusInternalServerError, nil)
	s.client.EXPECT().ListStaticPolicies(gomock.Any(), gomock.Any()).Return(testPolicies, nil)
	s.client.EXPECT().UpdatePolicyParams(gomock.Any(), gomock.Any(), "AUTH_t/c1:1", gomock.Any()).
		Return(http.StatusInternalServerError, failure)
	s.client.EXPECT().UpdatePolicyParams(gomock.Any(), gomock.Any(), "AUTH_t/c2:2", gomock.Any()).
		Return(http.StatusOK, nil)

	outcome, err := s.reconciler.Reconcile(context.Background(), map[string][]models.LambdaCandidate{
		"c1": {{TypeAndBody: "a"}},
		"c2": {{TypeAndBody: "b"}},
	})
	s.Require().NoError(err)
	s.Equal(models.TransportFailure, outcome.Status)
	s.True(outcome.Partial())
	s.False(outcome.Containers[0].Updated())
	s.True(outcome.Containers[1].Updated())
	s.Equal(http.StatusOK, *outcome.LastHTTPStatus)
	s.ErrorIs(outcome.Err, failure)
}

func (s *ReconcilerSuite) TestListFailure() {
	failure := pderrors.NewReconcileError("list static policies", 0, errors.New("connection refused"))
	s.client.EXPECT().ListStaticPolicies(gomock.Any(), gomock.Any()).Return(nil, failure)

	outcome, err := s.reconciler.Reconcile(context.Background(), map[string][]models.LambdaCandidate{})
	s.Require().NoError(err)
	s.Equal(models.TransportFailure, outcome.Status)
	s.ErrorIs(outcome.Err, failure)
}

func TestAuthFailureIsFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := auth.NewMockTokenSource(ctrl)
	client := NewMockPolicyClient(ctrl)
	authErr := pderrors.NewAuthError("http://keystone", errors.New("rejected"))
	tokens.EXPECT().Token(gomock.Any()).Return(auth.Token(""), authErr)

	reconciler := NewReconciler(Params{Tokens: tokens, Client: client, FilterName: filterName})
	_, err := reconciler.Reconcile(context.Background(), nil)
	if pderrors.ExitCodeFor(err) != pderrors.ExitAuth {
		t.Fatalf("expected auth failure, got %v", err)
	}
}

func TestEncodeParams(t *testing.T) {
	testCases := []struct {
		name    string
		lambdas []models.LambdaCandidate
		want    string
	}{
		{name: "none", lambdas: nil, want: ""},
		{name: "one", lambdas: []models.LambdaCandidate{{TypeAndBody: "map:x->x+1"}}, want: "0-lambda=map:x->x+1"},
		{
			name: "keeps order",
			lambdas: []models.LambdaCandidate{
				{TypeAndBody: "b0"}, {TypeAndBody: "b1"}, {TypeAndBody: "b2"},
			},
			want: "0-lambda=b0,1-lambda=b1,2-lambda=b2",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EncodeParams(tc.lambdas); got != tc.want {
				t.Errorf("EncodeParams() = %q, want %q", got, tc.want)
			}
		})
	}
}
