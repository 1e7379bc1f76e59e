// Package apiconnect wires the billsplit.v1 AllocationService to Connect.
package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplit/pkg/api"
)

const (
	// AllocationServiceName is the fully-qualified name of the AllocationService.
	AllocationServiceName = "billsplit.v1.AllocationService"

	// AllocationServiceAllocateProcedure is the route for AllocationService.Allocate.
	AllocationServiceAllocateProcedure = "/billsplit.v1.AllocationService/Allocate"
)

// AllocationServiceHandler is implemented by the server side of AllocationService.
type AllocationServiceHandler interface {
	Allocate(context.Context, *connect.Request[api.AllocateRequest]) (*connect.Response[api.AllocateResponse], error)
}

// AllocationServiceClient is a client for AllocationService.
type AllocationServiceClient interface {
	Allocate(context.Context, *connect.Request[api.AllocateRequest]) (*connect.Response[api.AllocateResponse], error)
}

// NewAllocationServiceHandler builds an HTTP handler for the service. It
// returns the path to mount the handler on.
func NewAllocationServiceHandler(svc AllocationServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.Codec())}, opts...)
	allocateHandler := connect.NewUnaryHandler(
		AllocationServiceAllocateProcedure,
		svc.Allocate,
		opts...,
	)
	return "/" + AllocationServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AllocationServiceAllocateProcedure:
			allocateHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

type allocationServiceClient struct {
	allocate *connect.Client[api.AllocateRequest, api.AllocateResponse]
}

// NewAllocationServiceClient builds a client for the service at baseURL
// (e.g. http://localhost:8080).
func NewAllocationServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AllocationServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.Codec())}, opts...)
	return &allocationServiceClient{
		allocate: connect.NewClient[api.AllocateRequest, api.AllocateResponse](
			httpClient,
			baseURL+AllocationServiceAllocateProcedure,
			opts...,
		),
	}
}

func (c *allocationServiceClient) Allocate(ctx context.Context, req *connect.Request[api.AllocateRequest]) (*connect.Response[api.AllocateResponse], error) {
	return c.allocate.CallUnary(ctx, req)
}

// UnimplementedAllocationServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedAllocationServiceHandler struct{}

func (UnimplementedAllocationServiceHandler) Allocate(context.Context, *connect.Request[api.AllocateRequest]) (*connect.Response[api.AllocateResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("billsplit.v1.AllocationService.Allocate is not implemented"))
}
