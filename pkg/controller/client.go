package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"

	"github.com/bacalhau-project/lambdapushdown/pkg/auth"
	"github.com/bacalhau-project/lambdapushdown/pkg/models"
	"github.com/bacalhau-project/lambdapushdown/pkg/pderrors"
	"github.com/bacalhau-project/lambdapushdown/pkg/telemetry"
	"github.com/bacalhau-project/lambdapushdown/pkg/util/closer"
)

const (
	// AuthHeader carries the identity token on every controller call.
	AuthHeader = "X-Auth-Token"

	staticPolicyPath = "controller/static_policy/"

	// error bodies are only read for diagnostics
	maxErrorBody = 4 * 1024
)

type Params struct {
	// BaseURL is the controller root, e.g. http://127.0.0.1:9000/.
	BaseURL string
	Timeout time.Duration
	// Retries is the number of extra attempts on connection errors and 5xx.
	Retries int
}

// Client talks to the policy controller's static policy API.
type Client struct {
	baseURL string
	timeout time.Duration
	client  *retryablehttp.Client
}

func NewClient(params Params) *Client {
	client := retryablehttp.NewClient()
	client.HTTPClient = &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	client.RetryMax = params.Retries
	client.RetryWaitMin = 500 * time.Millisecond
	client.RetryWaitMax = 5 * time.Second
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.Logger = zerologAdapter{}

	return &Client{
		baseURL: strings.TrimRight(params.BaseURL, "/") + "/",
		timeout: params.Timeout,
		client:  client,
	}
}

// ListStaticPolicies fetches every static policy visible to the token.
func (c *Client) ListStaticPolicies(ctx context.Context, token auth.Token) ([]models.FilterPolicy, error) {
	ctx, span := telemetry.NewSpan(ctx, "pushdown.controller.Client.ListStaticPolicies")
	defer span.End()

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	const operation = "list static policies"
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+staticPolicyPath, nil)
	if err != nil {
		return nil, telemetry.RecordError(span, pderrors.NewReconcileError(operation, 0, err))
	}
	req.Header.Set(AuthHeader, string(token))
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, telemetry.RecordError(span, c.transportError(ctx, operation, err))
	}
	defer closer.DrainAndCloseWithLogOnError(ctx, "list static policies response", res.Body)

	if res.StatusCode != http.StatusOK {
		return nil, telemetry.RecordError(span,
			pderrors.NewReconcileError(operation, res.StatusCode, errorBody(res)))
	}

	var policies []models.FilterPolicy
	if err := json.NewDecoder(res.Body).Decode(&policies); err != nil {
		return nil, telemetry.RecordError(span,
			pderrors.NewReconcileError(operation, res.StatusCode, errors.Wrap(err, "decoding policies")))
	}
	return policies, nil
}

// UpdatePolicyParams replaces the params of the policy addressed by key
// (target_id:policy_id) and returns the HTTP status the controller answered
// with. Status is zero when no response was received.
func (c *Client) UpdatePolicyParams(ctx context.Context, token auth.Token, key, params string) (int, error) {
	ctx, span := telemetry.NewSpan(ctx, "pushdown.controller.Client.UpdatePolicyParams",
		attribute.String("policy", key))
	defer span.End()

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	operation := fmt.Sprintf("update policy %s", key)
	body, err := json.Marshal(models.PolicyParamsUpdate{Params: params})
	if err != nil {
		return 0, telemetry.RecordError(span, pderrors.NewReconcileError(operation, 0, err))
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+policyPath(key), bytes.NewReader(body))
	if err != nil {
		return 0, telemetry.RecordError(span, pderrors.NewReconcileError(operation, 0, err))
	}
	req.Header.Set(AuthHeader, string(token))
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return 0, telemetry.RecordError(span, c.transportError(ctx, operation, err))
	}
	defer closer.DrainAndCloseWithLogOnError(ctx, "update policy response", res.Body)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return res.StatusCode, telemetry.RecordError(span,
			pderrors.NewReconcileError(operation, res.StatusCode, errorBody(res)))
	}
	return res.StatusCode, nil
}

// policyPath escapes each segment of key so reserved characters in a
// container name stay part of the path. The slashes of a target_id are kept.
func policyPath(key string) string {
	segments := strings.Split(key, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return staticPolicyPath + strings.Join(segments, "/")
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) transportError(ctx context.Context, operation string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return pderrors.NewTimeoutError(operation, c.timeout, err)
	}
	return pderrors.NewReconcileError(operation, 0, err)
}

func errorBody(res *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	if err != nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	return errors.New(string(bytes.TrimSpace(body)))
}
