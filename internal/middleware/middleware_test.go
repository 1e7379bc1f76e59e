package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/billsplit/pkg/api"
	"github.com/mmynk/billsplit/pkg/api/apiconnect"
)

// stubService echoes the request ID it sees as the allocation ID and fails
// when asked for negative days.
type stubService struct {
	apiconnect.UnimplementedAllocationServiceHandler
}

func (stubService) Allocate(ctx context.Context, req *connect.Request[api.AllocateRequest]) (*connect.Response[api.AllocateResponse], error) {
	if req.Msg.TotalDays < 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("negative days"))
	}
	return connect.NewResponse(&api.AllocateResponse{AllocationID: GetRequestID(ctx)}), nil
}

func setupTestServer(t *testing.T, m *Metrics) (apiconnect.AllocationServiceClient, *httptest.Server) {
	t.Helper()

	path, handler := apiconnect.NewAllocationServiceHandler(stubService{}, connect.WithInterceptors(
		RequestIDInterceptor(),
		LoggingInterceptor(),
		m.Interceptor(),
	))
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	mux.Handle("/metrics", m.Handler())
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return apiconnect.NewAllocationServiceClient(http.DefaultClient, server.URL), server
}

func TestRequestIDInterceptor(t *testing.T) {
	client, _ := setupTestServer(t, NewMetrics())

	resp, err := client.Allocate(context.Background(), connect.NewRequest(&api.AllocateRequest{TotalDays: 1}))
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	id := resp.Header().Get(RequestIDHeader)
	if id == "" {
		t.Fatal("expected generated request ID")
	}
	if resp.Msg.AllocationID != id {
		t.Errorf("handler saw request ID %q, header has %q", resp.Msg.AllocationID, id)
	}

	_, err = client.Allocate(context.Background(), connect.NewRequest(&api.AllocateRequest{TotalDays: -1}))
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect error, got %v", err)
	}
	if connectErr.Meta().Get(RequestIDHeader) == "" {
		t.Error("expected request ID on error metadata")
	}
}

func TestRequestIDInterceptor_ErrorWithTypedNilResponse(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode connect.Code
	}{
		{"connect error", connect.NewError(connect.CodeInvalidArgument, errors.New("negative days")), connect.CodeInvalidArgument},
		{"plain error", errors.New("boom"), connect.CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
				var resp *connect.Response[api.AllocateResponse]
				return resp, tt.err
			}
			req := connect.NewRequest(&api.AllocateRequest{})
			req.Header().Set(RequestIDHeader, "req-err")

			_, err := RequestIDInterceptor()(next)(context.Background(), req)

			var connectErr *connect.Error
			if !errors.As(err, &connectErr) {
				t.Fatalf("expected connect error, got %v", err)
			}
			if connectErr.Code() != tt.wantCode {
				t.Errorf("code = %v, want %v", connectErr.Code(), tt.wantCode)
			}
			if got := connectErr.Meta().Get(RequestIDHeader); got != "req-err" {
				t.Errorf("request ID metadata = %q, want req-err", got)
			}
		})
	}
}

func TestRequestIDInterceptor_Unimplemented(t *testing.T) {
	path, handler := apiconnect.NewAllocationServiceHandler(apiconnect.UnimplementedAllocationServiceHandler{},
		connect.WithInterceptors(RequestIDInterceptor(), LoggingInterceptor()))
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	defer server.Close()

	client := apiconnect.NewAllocationServiceClient(http.DefaultClient, server.URL)
	_, err := client.Allocate(context.Background(), connect.NewRequest(&api.AllocateRequest{}))
	if code := connect.CodeOf(err); code != connect.CodeUnimplemented {
		t.Errorf("code = %v, want %v", code, connect.CodeUnimplemented)
	}
}

func TestGetRequestID_Missing(t *testing.T) {
	if id := GetRequestID(context.Background()); id != "" {
		t.Errorf("GetRequestID() = %q, want empty", id)
	}
}

func TestMetricsInterceptor(t *testing.T) {
	m := NewMetrics()
	client, server := setupTestServer(t, m)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := client.Allocate(ctx, connect.NewRequest(&api.AllocateRequest{TotalDays: 1})); err != nil {
			t.Fatalf("Allocate failed: %v", err)
		}
	}
	if _, err := client.Allocate(ctx, connect.NewRequest(&api.AllocateRequest{TotalDays: -1})); err == nil {
		t.Fatal("expected error")
	}

	procedure := apiconnect.AllocationServiceAllocateProcedure
	if got := testutil.ToFloat64(m.requests.WithLabelValues(procedure, "ok")); got != 2 {
		t.Errorf("ok count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues(procedure, "invalid_argument")); got != 1 {
		t.Errorf("invalid_argument count = %v, want 1", got)
	}

	resp, err := http.Get(server.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "billsplit_rpc_duration_seconds") {
		t.Error("expected duration histogram in /metrics output")
	}
}
