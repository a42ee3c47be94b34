package umbralv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "umbral.v1.UmbralService"

// UmbralServiceServer is the server API for UmbralService
type UmbralServiceServer interface {
	GetProfile(context.Context, *GetProfileRequest) (*ProfileResponse, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*ProfileResponse, error)
	ToggleCurrency(context.Context, *ToggleCurrencyRequest) (*ProfileResponse, error)
	ListEnvelopes(context.Context, *ListEnvelopesRequest) (*ListEnvelopesResponse, error)
	CreateEnvelope(context.Context, *CreateEnvelopeRequest) (*EnvelopeResponse, error)
	UpdateEnvelope(context.Context, *UpdateEnvelopeRequest) (*EnvelopeResponse, error)
	DeleteEnvelope(context.Context, *DeleteEnvelopeRequest) (*DeleteResponse, error)
	ListAccounts(context.Context, *ListAccountsRequest) (*ListAccountsResponse, error)
	CreateAccount(context.Context, *CreateAccountRequest) (*AccountResponse, error)
	UpdateAccount(context.Context, *UpdateAccountRequest) (*AccountResponse, error)
	DeleteAccount(context.Context, *DeleteAccountRequest) (*DeleteResponse, error)
	GetRates(context.Context, *GetRatesRequest) (*GetRatesResponse, error)
	GetDashboard(context.Context, *GetDashboardRequest) (*GetDashboardResponse, error)
	GetProjection(context.Context, *GetProjectionRequest) (*GetProjectionResponse, error)
	Ask(context.Context, *AskRequest) (*AskResponse, error)
	GetInsight(context.Context, *GetInsightRequest) (*GetInsightResponse, error)
}

// UnimplementedUmbralServiceServer can be embedded to have forward compatible implementations
type UnimplementedUmbralServiceServer struct{}

func (UnimplementedUmbralServiceServer) GetProfile(context.Context, *GetProfileRequest) (*ProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProfile not implemented")
}
func (UnimplementedUmbralServiceServer) UpdateProfile(context.Context, *UpdateProfileRequest) (*ProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateProfile not implemented")
}
func (UnimplementedUmbralServiceServer) ToggleCurrency(context.Context, *ToggleCurrencyRequest) (*ProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ToggleCurrency not implemented")
}
func (UnimplementedUmbralServiceServer) ListEnvelopes(context.Context, *ListEnvelopesRequest) (*ListEnvelopesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListEnvelopes not implemented")
}
func (UnimplementedUmbralServiceServer) CreateEnvelope(context.Context, *CreateEnvelopeRequest) (*EnvelopeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateEnvelope not implemented")
}
func (UnimplementedUmbralServiceServer) UpdateEnvelope(context.Context, *UpdateEnvelopeRequest) (*EnvelopeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateEnvelope not implemented")
}
func (UnimplementedUmbralServiceServer) DeleteEnvelope(context.Context, *DeleteEnvelopeRequest) (*DeleteResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteEnvelope not implemented")
}
func (UnimplementedUmbralServiceServer) ListAccounts(context.Context, *ListAccountsRequest) (*ListAccountsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListAccounts not implemented")
}
func (UnimplementedUmbralServiceServer) CreateAccount(context.Context, *CreateAccountRequest) (*AccountResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateAccount not implemented")
}
func (UnimplementedUmbralServiceServer) UpdateAccount(context.Context, *UpdateAccountRequest) (*AccountResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateAccount not implemented")
}
func (UnimplementedUmbralServiceServer) DeleteAccount(context.Context, *DeleteAccountRequest) (*DeleteResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteAccount not implemented")
}
func (UnimplementedUmbralServiceServer) GetRates(context.Context, *GetRatesRequest) (*GetRatesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetRates not implemented")
}
func (UnimplementedUmbralServiceServer) GetDashboard(context.Context, *GetDashboardRequest) (*GetDashboardResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetDashboard not implemented")
}
func (UnimplementedUmbralServiceServer) GetProjection(context.Context, *GetProjectionRequest) (*GetProjectionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProjection not implemented")
}
func (UnimplementedUmbralServiceServer) Ask(context.Context, *AskRequest) (*AskResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ask not implemented")
}
func (UnimplementedUmbralServiceServer) GetInsight(context.Context, *GetInsightRequest) (*GetInsightResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetInsight not implemented")
}

// RegisterUmbralServiceServer registers the service implementation with a gRPC server
func RegisterUmbralServiceServer(s grpc.ServiceRegistrar, srv UmbralServiceServer) {
	s.RegisterService(&UmbralService_ServiceDesc, srv)
}

// UmbralService_ServiceDesc describes UmbralService for grpc.ServiceRegistrar
var UmbralService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*UmbralServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("GetProfile", UmbralServiceServer.GetProfile),
		unary("UpdateProfile", UmbralServiceServer.UpdateProfile),
		unary("ToggleCurrency", UmbralServiceServer.ToggleCurrency),
		unary("ListEnvelopes", UmbralServiceServer.ListEnvelopes),
		unary("CreateEnvelope", UmbralServiceServer.CreateEnvelope),
		unary("UpdateEnvelope", UmbralServiceServer.UpdateEnvelope),
		unary("DeleteEnvelope", UmbralServiceServer.DeleteEnvelope),
		unary("ListAccounts", UmbralServiceServer.ListAccounts),
		unary("CreateAccount", UmbralServiceServer.CreateAccount),
		unary("UpdateAccount", UmbralServiceServer.UpdateAccount),
		unary("DeleteAccount", UmbralServiceServer.DeleteAccount),
		unary("GetRates", UmbralServiceServer.GetRates),
		unary("GetDashboard", UmbralServiceServer.GetDashboard),
		unary("GetProjection", UmbralServiceServer.GetProjection),
		unary("Ask", UmbralServiceServer.Ask),
		unary("GetInsight", UmbralServiceServer.GetInsight),
	},
	Streams: []grpc.StreamDesc{},
}

// FullMethod returns the gRPC method path of an UmbralService method
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

func unary[Req, Resp any](method string, call func(UmbralServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(UmbralServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(method),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(UmbralServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// UmbralServiceClient is the client API for UmbralService
type UmbralServiceClient interface {
	GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error)
	UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error)
	ToggleCurrency(ctx context.Context, in *ToggleCurrencyRequest, opts ...grpc.CallOption) (*ProfileResponse, error)
	ListEnvelopes(ctx context.Context, in *ListEnvelopesRequest, opts ...grpc.CallOption) (*ListEnvelopesResponse, error)
	CreateEnvelope(ctx context.Context, in *CreateEnvelopeRequest, opts ...grpc.CallOption) (*EnvelopeResponse, error)
	UpdateEnvelope(ctx context.Context, in *UpdateEnvelopeRequest, opts ...grpc.CallOption) (*EnvelopeResponse, error)
	DeleteEnvelope(ctx context.Context, in *DeleteEnvelopeRequest, opts ...grpc.CallOption) (*DeleteResponse, error)
	ListAccounts(ctx context.Context, in *ListAccountsRequest, opts ...grpc.CallOption) (*ListAccountsResponse, error)
	CreateAccount(ctx context.Context, in *CreateAccountRequest, opts ...grpc.CallOption) (*AccountResponse, error)
	UpdateAccount(ctx context.Context, in *UpdateAccountRequest, opts ...grpc.CallOption) (*AccountResponse, error)
	DeleteAccount(ctx context.Context, in *DeleteAccountRequest, opts ...grpc.CallOption) (*DeleteResponse, error)
	GetRates(ctx context.Context, in *GetRatesRequest, opts ...grpc.CallOption) (*GetRatesResponse, error)
	GetDashboard(ctx context.Context, in *GetDashboardRequest, opts ...grpc.CallOption) (*GetDashboardResponse, error)
	GetProjection(ctx context.Context, in *GetProjectionRequest, opts ...grpc.CallOption) (*GetProjectionResponse, error)
	Ask(ctx context.Context, in *AskRequest, opts ...grpc.CallOption) (*AskResponse, error)
	GetInsight(ctx context.Context, in *GetInsightRequest, opts ...grpc.CallOption) (*GetInsightResponse, error)
}

type umbralServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewUmbralServiceClient creates a client that sends JSON-encoded requests
func NewUmbralServiceClient(cc grpc.ClientConnInterface) UmbralServiceClient {
	return &umbralServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *umbralServiceClient) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, "GetProfile", in, opts)
}

func (c *umbralServiceClient) UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, "UpdateProfile", in, opts)
}

func (c *umbralServiceClient) ToggleCurrency(ctx context.Context, in *ToggleCurrencyRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, "ToggleCurrency", in, opts)
}

func (c *umbralServiceClient) ListEnvelopes(ctx context.Context, in *ListEnvelopesRequest, opts ...grpc.CallOption) (*ListEnvelopesResponse, error) {
	return invoke[ListEnvelopesResponse](ctx, c.cc, "ListEnvelopes", in, opts)
}

func (c *umbralServiceClient) CreateEnvelope(ctx context.Context, in *CreateEnvelopeRequest, opts ...grpc.CallOption) (*EnvelopeResponse, error) {
	return invoke[EnvelopeResponse](ctx, c.cc, "CreateEnvelope", in, opts)
}

func (c *umbralServiceClient) UpdateEnvelope(ctx context.Context, in *UpdateEnvelopeRequest, opts ...grpc.CallOption) (*EnvelopeResponse, error) {
	return invoke[EnvelopeResponse](ctx, c.cc, "UpdateEnvelope", in, opts)
}

func (c *umbralServiceClient) DeleteEnvelope(ctx context.Context, in *DeleteEnvelopeRequest, opts ...grpc.CallOption) (*DeleteResponse, error) {
	return invoke[DeleteResponse](ctx, c.cc, "DeleteEnvelope", in, opts)
}

func (c *umbralServiceClient) ListAccounts(ctx context.Context, in *ListAccountsRequest, opts ...grpc.CallOption) (*ListAccountsResponse, error) {
	return invoke[ListAccountsResponse](ctx, c.cc, "ListAccounts", in, opts)
}

func (c *umbralServiceClient) CreateAccount(ctx context.Context, in *CreateAccountRequest, opts ...grpc.CallOption) (*AccountResponse, error) {
	return invoke[AccountResponse](ctx, c.cc, "CreateAccount", in, opts)
}

func (c *umbralServiceClient) UpdateAccount(ctx context.Context, in *UpdateAccountRequest, opts ...grpc.CallOption) (*AccountResponse, error) {
	return invoke[AccountResponse](ctx, c.cc, "UpdateAccount", in, opts)
}

func (c *umbralServiceClient) DeleteAccount(ctx context.Context, in *DeleteAccountRequest, opts ...grpc.CallOption) (*DeleteResponse, error) {
	return invoke[DeleteResponse](ctx, c.cc, "DeleteAccount", in, opts)
}

func (c *umbralServiceClient) GetRates(ctx context.Context, in *GetRatesRequest, opts ...grpc.CallOption) (*GetRatesResponse, error) {
	return invoke[GetRatesResponse](ctx, c.cc, "GetRates", in, opts)
}

func (c *umbralServiceClient) GetDashboard(ctx context.Context, in *GetDashboardRequest, opts ...grpc.CallOption) (*GetDashboardResponse, error) {
	return invoke[GetDashboardResponse](ctx, c.cc, "GetDashboard", in, opts)
}

func (c *umbralServiceClient) GetProjection(ctx context.Context, in *GetProjectionRequest, opts ...grpc.CallOption) (*GetProjectionResponse, error) {
	return invoke[GetProjectionResponse](ctx, c.cc, "GetProjection", in, opts)
}

func (c *umbralServiceClient) Ask(ctx context.Context, in *AskRequest, opts ...grpc.CallOption) (*AskResponse, error) {
	return invoke[AskResponse](ctx, c.cc, "Ask", in, opts)
}

func (c *umbralServiceClient) GetInsight(ctx context.Context, in *GetInsightRequest, opts ...grpc.CallOption) (*GetInsightResponse, error) {
	return invoke[GetInsightResponse](ctx, c.cc, "GetInsight", in, opts)
}
