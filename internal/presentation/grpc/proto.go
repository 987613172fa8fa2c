package grpc

// proto.go defines the gRPC server interface derived from
// aurumdesk/goldloan/v1/goldloan.proto. This file serves as a stand-in for
// buf-generated code. Once `buf generate` is run, replace this file with the
// import from github.com/aurumdesk/goldloan-service/api/gen/go/aurumdesk/goldloan/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// GoldLoanServiceServer is the server API for GoldLoanService.
// It mirrors the proto-generated interface from aurumdesk.goldloan.v1.GoldLoanService.
type GoldLoanServiceServer interface {
	CreateLoan(context.Context, *CreateLoanRequest) (*CreateLoanResponse, error)
	GetLoan(context.Context, *GetLoanRequest) (*GetLoanResponse, error)
	ApplyPayment(context.Context, *ApplyPaymentRequest) (*ApplyPaymentResponse, error)
	QuoteSettlement(context.Context, *QuoteSettlementRequest) (*QuoteSettlementResponse, error)
	RejectLoan(context.Context, *RejectLoanRequest) (*RejectLoanResponse, error)
	mustEmbedUnimplementedGoldLoanServiceServer()
}

// UnimplementedGoldLoanServiceServer provides forward-compatible default implementations.
type UnimplementedGoldLoanServiceServer struct{}

func (UnimplementedGoldLoanServiceServer) CreateLoan(context.Context, *CreateLoanRequest) (*CreateLoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateLoan not implemented")
}
func (UnimplementedGoldLoanServiceServer) GetLoan(context.Context, *GetLoanRequest) (*GetLoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetLoan not implemented")
}
func (UnimplementedGoldLoanServiceServer) ApplyPayment(context.Context, *ApplyPaymentRequest) (*ApplyPaymentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ApplyPayment not implemented")
}
func (UnimplementedGoldLoanServiceServer) QuoteSettlement(context.Context, *QuoteSettlementRequest) (*QuoteSettlementResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method QuoteSettlement not implemented")
}
func (UnimplementedGoldLoanServiceServer) RejectLoan(context.Context, *RejectLoanRequest) (*RejectLoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RejectLoan not implemented")
}
func (UnimplementedGoldLoanServiceServer) mustEmbedUnimplementedGoldLoanServiceServer() {}

// RegisterGoldLoanServiceServer registers the GoldLoanServiceServer with the gRPC server.
func RegisterGoldLoanServiceServer(s *grpclib.Server, srv GoldLoanServiceServer) {
	s.RegisterService(&_GoldLoanService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _GoldLoanService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "aurumdesk.goldloan.v1.GoldLoanService",
	HandlerType: (*GoldLoanServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "CreateLoan", Handler: _GoldLoanService_CreateLoan_Handler},           //nolint:revive // gRPC handler registration
		{MethodName: "GetLoan", Handler: _GoldLoanService_GetLoan_Handler},                 //nolint:revive // gRPC handler registration
		{MethodName: "ApplyPayment", Handler: _GoldLoanService_ApplyPayment_Handler},       //nolint:revive // gRPC handler registration
		{MethodName: "QuoteSettlement", Handler: _GoldLoanService_QuoteSettlement_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "RejectLoan", Handler: _GoldLoanService_RejectLoan_Handler},           //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _GoldLoanService_CreateLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CreateLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GoldLoanServiceServer).CreateLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/aurumdesk.goldloan.v1.GoldLoanService/CreateLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(GoldLoanServiceServer).CreateLoan(ctx, req.(*CreateLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _GoldLoanService_GetLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GoldLoanServiceServer).GetLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/aurumdesk.goldloan.v1.GoldLoanService/GetLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(GoldLoanServiceServer).GetLoan(ctx, req.(*GetLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _GoldLoanService_ApplyPayment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ApplyPaymentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GoldLoanServiceServer).ApplyPayment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/aurumdesk.goldloan.v1.GoldLoanService/ApplyPayment",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(GoldLoanServiceServer).ApplyPayment(ctx, req.(*ApplyPaymentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _GoldLoanService_QuoteSettlement_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(QuoteSettlementRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GoldLoanServiceServer).QuoteSettlement(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/aurumdesk.goldloan.v1.GoldLoanService/QuoteSettlement",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(GoldLoanServiceServer).QuoteSettlement(ctx, req.(*QuoteSettlementRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _GoldLoanService_RejectLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(RejectLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GoldLoanServiceServer).RejectLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/aurumdesk.goldloan.v1.GoldLoanService/RejectLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(GoldLoanServiceServer).RejectLoan(ctx, req.(*RejectLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}
