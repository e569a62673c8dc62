package rpcserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/StephenWattam/lpsolve/internal/cache"
	"github.com/StephenWattam/lpsolve/internal/simplex"
)

const sampleLP = `Maximize
 obj: 3 x + 5 y
Subject To
 c1: x + y <= 4
Bounds
 0 <= x
 0 <= y
End
`

func TestServerSolveReturnsOptimalSolution(t *testing.T) {
	s := &server{opts: simplex.DefaultOptions()}
	resp, err := s.Solve(context.Background(), &SolveRequest{LP: sampleLP})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if resp.Error != "" {
		t.Fatalf("unexpected response error: %s", resp.Error)
	}
	if !resp.Optimal {
		t.Errorf("Optimal: got false, want true")
	}
	if resp.Variables["y"] != 4 {
		t.Errorf("y: got %v, want 4", resp.Variables["y"])
	}
}

func TestServerSolveReportsParseErrorsInline(t *testing.T) {
	s := &server{opts: simplex.DefaultOptions()}
	resp, err := s.Solve(context.Background(), &SolveRequest{LP: "not a valid lp document"})
	if err != nil {
		t.Fatalf("Solve should report parse failures via SolveResponse.Error, not a Go error: %v", err)
	}
	if resp.Error == "" {
		t.Errorf("expected a non-empty Error field for an unparsable document")
	}
}

func TestHTTPSolveRoundTrip(t *testing.T) {
	s := &server{opts: simplex.DefaultOptions()}
	body, err := json.Marshal(SolveRequest{LP: sampleLP})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/solve", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	httpSolve(rec, req, s)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body=%s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp SolveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal response: %v", err)
	}
	if !resp.Optimal {
		t.Errorf("Optimal: got false, want true")
	}
}

func TestHTTPSolveRejectsMalformedJSON(t *testing.T) {
	s := &server{opts: simplex.DefaultOptions()}
	req := httptest.NewRequest(http.MethodPost, "/solve", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	httpSolve(rec, req, s)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestServerSolveReusesCachedProblem(t *testing.T) {
	c := cache.New(10)
	s := &server{opts: simplex.DefaultOptions(), problemCache: c}

	if _, err := s.Solve(context.Background(), &SolveRequest{LP: sampleLP}); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("cache Len after first solve: got %d, want 1", c.Len())
	}

	if _, err := s.Solve(context.Background(), &SolveRequest{LP: sampleLP}); err != nil {
		t.Fatalf("Solve (second call): %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("resubmitting the same LP source should reuse the cached problem, not grow the cache: got Len=%d", c.Len())
	}
}

func TestJSONCodecRoundTrip(t *testing.T) {
	c := jsonCodec{}
	if c.Name() != "json" {
		t.Errorf("Name: got %q, want json", c.Name())
	}

	data, err := c.Marshal(SolveRequest{LP: "x"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out SolveRequest
	if err := c.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.LP != "x" {
		t.Errorf("round trip: got %q, want %q", out.LP, "x")
	}
}
