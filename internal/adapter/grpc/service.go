package grpc

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified name of the ATM service
const ServiceName = "atm.v1.ATMService"

const (
	ATMService_Register_FullMethodName     = "/" + ServiceName + "/Register"
	ATMService_Login_FullMethodName        = "/" + ServiceName + "/Login"
	ATMService_Logout_FullMethodName       = "/" + ServiceName + "/Logout"
	ATMService_Deposit_FullMethodName      = "/" + ServiceName + "/Deposit"
	ATMService_Withdraw_FullMethodName     = "/" + ServiceName + "/Withdraw"
	ATMService_Transfer_FullMethodName     = "/" + ServiceName + "/Transfer"
	ATMService_CheckBalance_FullMethodName = "/" + ServiceName + "/CheckBalance"
	ATMService_ViewHistory_FullMethodName  = "/" + ServiceName + "/ViewHistory"
)

// ATMServiceServer is the server API for the ATM service
type ATMServiceServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)
	Deposit(context.Context, *DepositRequest) (*TransactionResponse, error)
	Withdraw(context.Context, *WithdrawRequest) (*TransactionResponse, error)
	Transfer(context.Context, *TransferRequest) (*TransactionResponse, error)
	CheckBalance(context.Context, *CheckBalanceRequest) (*CheckBalanceResponse, error)
	ViewHistory(context.Context, *ViewHistoryRequest) (*ViewHistoryResponse, error)
}

// RegisterATMServiceServer registers srv on s
func RegisterATMServiceServer(s grpc.ServiceRegistrar, srv ATMServiceServer) {
	s.RegisterService(&ATMService_ServiceDesc, srv)
}

// unaryHandler adapts a typed server method to a grpc.MethodHandler
func unaryHandler[Req, Resp any](fullMethod string, call func(ATMServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ATMServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ATMServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ATMService_ServiceDesc is the grpc.ServiceDesc for the ATM service
var ATMService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ATMServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unaryHandler(ATMService_Register_FullMethodName, ATMServiceServer.Register)},
		{MethodName: "Login", Handler: unaryHandler(ATMService_Login_FullMethodName, ATMServiceServer.Login)},
		{MethodName: "Logout", Handler: unaryHandler(ATMService_Logout_FullMethodName, ATMServiceServer.Logout)},
		{MethodName: "Deposit", Handler: unaryHandler(ATMService_Deposit_FullMethodName, ATMServiceServer.Deposit)},
		{MethodName: "Withdraw", Handler: unaryHandler(ATMService_Withdraw_FullMethodName, ATMServiceServer.Withdraw)},
		{MethodName: "Transfer", Handler: unaryHandler(ATMService_Transfer_FullMethodName, ATMServiceServer.Transfer)},
		{MethodName: "CheckBalance", Handler: unaryHandler(ATMService_CheckBalance_FullMethodName, ATMServiceServer.CheckBalance)},
		{MethodName: "ViewHistory", Handler: unaryHandler(ATMService_ViewHistory_FullMethodName, ATMServiceServer.ViewHistory)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "atm/v1/atm.proto",
}

// ATMServiceClient is the client API for the ATM service
type ATMServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewATMServiceClient creates a client that speaks the JSON codec over cc
func NewATMServiceClient(cc grpc.ClientConnInterface) *ATMServiceClient {
	return &ATMServiceClient{cc: cc}
}

func (c *ATMServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *ATMServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	out := new(RegisterResponse)
	if err := c.invoke(ctx, ATMService_Register_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ATMServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	out := new(LoginResponse)
	if err := c.invoke(ctx, ATMService_Login_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ATMServiceClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error) {
	out := new(LogoutResponse)
	if err := c.invoke(ctx, ATMService_Logout_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ATMServiceClient) Deposit(ctx context.Context, in *DepositRequest, opts ...grpc.CallOption) (*TransactionResponse, error) {
	out := new(TransactionResponse)
	if err := c.invoke(ctx, ATMService_Deposit_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ATMServiceClient) Withdraw(ctx context.Context, in *WithdrawRequest, opts ...grpc.CallOption) (*TransactionResponse, error) {
	out := new(TransactionResponse)
	if err := c.invoke(ctx, ATMService_Withdraw_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ATMServiceClient) Transfer(ctx context.Context, in *TransferRequest, opts ...grpc.CallOption) (*TransactionResponse, error) {
	out := new(TransactionResponse)
	if err := c.invoke(ctx, ATMService_Transfer_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ATMServiceClient) CheckBalance(ctx context.Context, in *CheckBalanceRequest, opts ...grpc.CallOption) (*CheckBalanceResponse, error) {
	out := new(CheckBalanceResponse)
	if err := c.invoke(ctx, ATMService_CheckBalance_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ATMServiceClient) ViewHistory(ctx context.Context, in *ViewHistoryRequest, opts ...grpc.CallOption) (*ViewHistoryResponse, error) {
	out := new(ViewHistoryResponse)
	if err := c.invoke(ctx, ATMService_ViewHistory_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
