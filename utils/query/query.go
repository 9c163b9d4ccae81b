package query

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Endpoint is a query server method under test.
// R is the request type. S is the response type.
type Endpoint[R any, S any] struct {
	Name  string
	Query func(goCtx context.Context, req *R) (*S, error)
	// Check runs followup assertions on a successful response. When set it
	// replaces the equality check against Case.Expected.
	Check func(actual *S)
}

// Case is a single request against an Endpoint.
type Case[R any, S any] struct {
	Name string
	// Setup runs against the cached context, so its writes do not outlive the case.
	Setup    func()
	Req      *R
	Expected *S
	// Code is the expected gRPC status code. codes.OK means the call must succeed.
	Code codes.Code
	// ErrSubstrs must all appear in the returned error message.
	ErrSubstrs []string
}

type TestSuiter interface {
	Context() sdk.Context
	SetContext(ctx sdk.Context)
	Require() *require.Assertions
	Assert() *assert.Assertions
}

// Run executes tc against a cached copy of the suite context and restores the
// original context afterwards.
func Run[R any, S any](s TestSuiter, ep Endpoint[R, S], tc Case[R, S]) {
	origCtx := s.Context()
	defer s.SetContext(origCtx)
	ctx, _ := origCtx.CacheContext()
	s.SetContext(ctx)

	if tc.Setup != nil {
		tc.Setup()
	}

	var resp *S
	var err error
	s.Require().NotPanics(func() {
		resp, err = ep.Query(s.Context(), tc.Req)
	}, ep.Name)

	if tc.Code != codes.OK {
		s.Require().Errorf(err, "%s error", ep.Name)
		s.Assert().Equalf(tc.Code, status.Code(err), "%s status code: %v", ep.Name, err)
		for _, substr := range tc.ErrSubstrs {
			s.Assert().Containsf(err.Error(), substr, "%s error missing expected substring", ep.Name)
		}
		return
	}

	s.Require().NoErrorf(err, "%s error", ep.Name)
	if ep.Check != nil {
		ep.Check(resp)
		return
	}
	s.Assert().Equalf(tc.Expected, resp, "%s response", ep.Name)
}
