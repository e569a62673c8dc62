// Package rpcserver exposes Solve over gRPC (manual service descriptors,
// no protobuf) with a JSON wire codec, plus a sibling HTTP+JSON endpoint
// serving the same request/response shapes.
//
// What: a LPSolveServer interface with one method, Solve, registered by
// hand against grpc.ServiceDesc and also reachable over plain HTTP.
// How: copies this codebase's server wiring verbatim in shape — a
// package-level jsonCodec implementing the grpc encoding.Codec interface,
// a hand-written ServiceDesc with one grpc.MethodDesc per RPC, and
// matching _Handler trampoline functions — because LP documents marshal
// naturally to JSON and protobuf code generation buys nothing here. Parsed
// problems are kept in an internal/cache.ProblemCache keyed by source
// text, since the same LP document is commonly resubmitted by repeated
// callers.
// Why: the CLI's --rpc-grpc and --rpc-http flags need a way to offer solving as a service
// without pulling in a protoc toolchain dependency.
package rpcserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"

	"github.com/StephenWattam/lpsolve/internal/cache"
	"github.com/StephenWattam/lpsolve/internal/ir"
	"github.com/StephenWattam/lpsolve/internal/lpparser"
	"github.com/StephenWattam/lpsolve/internal/presolve"
	"github.com/StephenWattam/lpsolve/internal/simplex"
)

// SolveRequest is the wire request: raw LP-format source text.
type SolveRequest struct {
	LP string `json:"lp"`
}

// SolveResponse is the wire response: a variable/value map plus status.
type SolveResponse struct {
	Optimal   bool               `json:"optimal"`
	Mode      string             `json:"mode"`
	Variables map[string]float64 `json:"variables"`
	Error     string             `json:"error,omitempty"`
}

// jsonCodec implements google.golang.org/grpc/encoding.Codec using
// encoding/json, registered under the name "json" so clients can force it
// via grpc.ForceCodec.
type jsonCodec struct{}

func (jsonCodec) Name() string                       { return "json" }
func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// LPSolveServer is the gRPC service interface (manual, no protobuf).
type LPSolveServer interface {
	Solve(context.Context, *SolveRequest) (*SolveResponse, error)
}

func registerLPSolveServer(s *grpc.Server, srv LPSolveServer) {
	s.RegisterService(&grpc.ServiceDesc{
		ServiceName: "lpsolve.LPSolve",
		HandlerType: (*LPSolveServer)(nil),
		Methods: []grpc.MethodDesc{
			{MethodName: "Solve", Handler: _LPSolve_Solve_Handler},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "lpsolve",
	}, srv)
}

func _LPSolve_Solve_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SolveRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LPSolveServer).Solve(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/lpsolve.LPSolve/Solve"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LPSolveServer).Solve(ctx, req.(*SolveRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// server implements LPSolveServer by running the full parse/presolve/solve
// pipeline over each request's LP source text, consulting problemCache
// first when one is configured.
type server struct {
	opts         simplex.Options
	problemCache *cache.ProblemCache
}

func (s *server) Solve(ctx context.Context, req *SolveRequest) (*SolveResponse, error) {
	build := func() (*ir.Problem, error) {
		problem, err := lpparser.ParseString(req.LP)
		if err != nil {
			return nil, fmt.Errorf("parsing: %w", err)
		}
		if err := presolve.ToStandardForm(problem); err != nil {
			return nil, fmt.Errorf("presolving: %w", err)
		}
		return problem, nil
	}

	var problem *ir.Problem
	var err error
	if s.problemCache != nil {
		problem, err = s.problemCache.GetOrBuild(req.LP, build)
	} else {
		problem, err = build()
	}
	if err != nil {
		return &SolveResponse{Error: err.Error()}, nil
	}

	sol, err := simplex.Solve(problem, s.opts)
	if err != nil {
		return &SolveResponse{Error: fmt.Sprintf("solving: %v", err)}, nil
	}

	return &SolveResponse{
		Optimal:   sol.Optimal,
		Mode:      problem.Mode.String(),
		Variables: valuesByName(sol),
	}, nil
}

func valuesByName(sol *ir.Solution) map[string]float64 {
	out := make(map[string]float64, len(sol.Values))
	for v, val := range sol.Values {
		out[v.Name] = val
	}
	return out
}

// Serve starts the gRPC server (if grpcAddr is non-empty) and the HTTP
// JSON server (if httpAddr is non-empty), blocking until either listener
// fails. It registers the "json" grpc codec on every call.
func Serve(grpcAddr, httpAddr string, opts simplex.Options) error {
	encoding.RegisterCodec(jsonCodec{})
	srv := &server{opts: opts, problemCache: cache.New(0)}

	errCh := make(chan error, 2)

	if grpcAddr != "" {
		lis, err := net.Listen("tcp", grpcAddr)
		if err != nil {
			return fmt.Errorf("listening on %s: %w", grpcAddr, err)
		}
		gs := grpc.NewServer()
		registerLPSolveServer(gs, srv)
		log.Printf("rpcserver: gRPC listening on %s", grpcAddr)
		go func() { errCh <- gs.Serve(lis) }()
	}

	if httpAddr != "" {
		mux := http.NewServeMux()
		mux.HandleFunc("/solve", func(w http.ResponseWriter, r *http.Request) {
			httpSolve(w, r, srv)
		})
		hs := &http.Server{Addr: httpAddr, Handler: mux, ReadTimeout: 10 * time.Second}
		log.Printf("rpcserver: HTTP listening on %s", httpAddr)
		go func() { errCh <- hs.ListenAndServe() }()
	}

	return <-errCh
}

func httpSolve(w http.ResponseWriter, r *http.Request, srv *server) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 10<<20))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req SolveRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := srv.Solve(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(resp); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(buf.Bytes())
}
