// Package authz evaluates the access policy of the API. The policy is an
// embedded rego module prepared once at start-up.
package authz

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/open-policy-agent/opa/rego"

	"railway/internal/domain"
)

//go:embed policy.rego
var policySource string

const decisionQuery = "data.railway.authz.allow"

// Request is one access decision input.
type Request struct {
	Method   string
	Resource string
	Identity *domain.Identity
}

// Policy is safe for concurrent use.
type Policy struct {
	query rego.PreparedEvalQuery
}

// NewPolicy compiles the embedded policy.
func NewPolicy(ctx context.Context) (*Policy, error) {
	return NewPolicyFromSource(ctx, policySource)
}

// NewPolicyFromSource compiles a custom rego module that defines
// data.railway.authz.allow.
func NewPolicyFromSource(ctx context.Context, src string) (*Policy, error) {
	pq, err := rego.New(
		rego.Query(decisionQuery),
		rego.Module("policy.rego", src),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("prepare policy: %w", err)
	}
	return &Policy{query: pq}, nil
}

// Allow reports whether the request may proceed.
func (p *Policy) Allow(ctx context.Context, req Request) (bool, error) {
	input := map[string]any{
		"method":        strings.ToUpper(req.Method),
		"resource":      req.Resource,
		"authenticated": req.Identity != nil,
	}
	if req.Identity != nil {
		input["identity"] = map[string]any{
			"user_id": req.Identity.UserID,
			"role":    req.Identity.Role,
			"staff":   req.Identity.IsStaff(),
		}
	}

	rs, err := p.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return false, fmt.Errorf("evaluate policy: %w", err)
	}
	return rs.Allowed(), nil
}
