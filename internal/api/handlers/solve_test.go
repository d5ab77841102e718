package handlers

import (
	"context"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/ga"
	"delivery-route-optimizer/internal/services"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type stubSolver struct {
	err   error
	calls int
	got   services.SolveRequest
}

func (s *stubSolver) Solve(_ context.Context, req services.SolveRequest) (*domain.Run, error) {
	s.calls++
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Run{ID: "run-1", Instance: req.Instance, Seed: req.Seed, Config: req.Config.AsMap()}, nil
}

func postSolve(h *SolveHandler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Solve(rec, httptest.NewRequest(http.MethodPost, "/solve", strings.NewReader(body)))
	return rec
}

func TestSolveClientGoneIsNotServerError(t *testing.T) {
	stub := &stubSolver{err: fmt.Errorf("solve \"line\": %w", context.Canceled)}
	h := &SolveHandler{Service: stub, Defaults: ga.DefaultConfig()}

	rec := postSolve(h, `{"instance": "line", "seed": 1}`)
	if rec.Code != statusClientClosedRequest {
		t.Fatalf("status = %d, want %d", rec.Code, statusClientClosedRequest)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("body = %q, want empty", rec.Body.String())
	}
}

func TestSolveDeadlineIsGatewayTimeout(t *testing.T) {
	stub := &stubSolver{err: fmt.Errorf("solve: %w", context.DeadlineExceeded)}
	h := &SolveHandler{Service: stub, Defaults: ga.DefaultConfig()}

	if rec := postSolve(h, `{"instance": "line", "seed": 1}`); rec.Code != http.StatusGatewayTimeout {
		t.Fatalf("status = %d, want 504", rec.Code)
	}
}

func TestSolveRejectsOversizedRuns(t *testing.T) {
	stub := &stubSolver{}
	h := &SolveHandler{Service: stub, Defaults: ga.DefaultConfig(), MaxPopulation: 500, MaxGenerations: 100}

	cases := map[string]string{
		"population":  `{"instance": "line", "config": {"population": 501}}`,
		"generations": `{"instance": "line", "config": {"generations": 101}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if rec := postSolve(h, body); rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
		})
	}
	if stub.calls != 0 {
		t.Fatalf("service called %d times for rejected requests", stub.calls)
	}

	rec := postSolve(h, `{"instance": "line", "seed": 3, "config": {"population": 500, "generations": 100}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status at the limits = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if stub.got.Config.Population != 500 || stub.got.Config.Generations != 100 || stub.got.Seed != 3 {
		t.Fatalf("request = %+v", stub.got)
	}
}

func TestSolveDefaultLimits(t *testing.T) {
	h := &SolveHandler{Service: &stubSolver{}, Defaults: ga.DefaultConfig()}

	body := fmt.Sprintf(`{"instance": "line", "config": {"population": %d}}`, DefaultMaxPopulation+1)
	if rec := postSolve(h, body); rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
