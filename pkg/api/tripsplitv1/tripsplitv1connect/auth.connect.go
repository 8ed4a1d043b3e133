package tripsplitv1connect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	v1 "github.com/mmynk/tripsplit/pkg/api/tripsplitv1"
)

// AuthServiceName is the fully-qualified name of the AuthService service.
const AuthServiceName = "tripsplit.v1.AuthService"

// Procedure paths of the AuthService RPCs.
const (
	AuthServiceAdminLoginProcedure = "/tripsplit.v1.AuthService/AdminLogin"
	AuthServiceGuestLoginProcedure = "/tripsplit.v1.AuthService/GuestLogin"
	AuthServiceWhoAmIProcedure     = "/tripsplit.v1.AuthService/WhoAmI"
)

// AuthServiceHandler is implemented by the server.
type AuthServiceHandler interface {
	AdminLogin(context.Context, *connect.Request[v1.AdminLoginRequest]) (*connect.Response[v1.AdminLoginResponse], error)
	GuestLogin(context.Context, *connect.Request[v1.GuestLoginRequest]) (*connect.Response[v1.GuestLoginResponse], error)
	WhoAmI(context.Context, *connect.Request[v1.WhoAmIRequest]) (*connect.Response[v1.WhoAmIResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	adminLogin := connect.NewUnaryHandler(AuthServiceAdminLoginProcedure, svc.AdminLogin, opts...)
	guestLogin := connect.NewUnaryHandler(AuthServiceGuestLoginProcedure, svc.GuestLogin, opts...)
	whoAmI := connect.NewUnaryHandler(AuthServiceWhoAmIProcedure, svc.WhoAmI, opts...)

	return "/" + AuthServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AuthServiceAdminLoginProcedure:
			adminLogin.ServeHTTP(w, r)
		case AuthServiceGuestLoginProcedure:
			guestLogin.ServeHTTP(w, r)
		case AuthServiceWhoAmIProcedure:
			whoAmI.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedAuthServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedAuthServiceHandler struct{}

func (UnimplementedAuthServiceHandler) AdminLogin(context.Context, *connect.Request[v1.AdminLoginRequest]) (*connect.Response[v1.AdminLoginResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tripsplit.v1.AuthService.AdminLogin is not implemented"))
}

func (UnimplementedAuthServiceHandler) GuestLogin(context.Context, *connect.Request[v1.GuestLoginRequest]) (*connect.Response[v1.GuestLoginResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tripsplit.v1.AuthService.GuestLogin is not implemented"))
}

func (UnimplementedAuthServiceHandler) WhoAmI(context.Context, *connect.Request[v1.WhoAmIRequest]) (*connect.Response[v1.WhoAmIResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tripsplit.v1.AuthService.WhoAmI is not implemented"))
}

// AuthServiceClient is a client for the tripsplit.v1.AuthService service.
type AuthServiceClient interface {
	AdminLogin(context.Context, *connect.Request[v1.AdminLoginRequest]) (*connect.Response[v1.AdminLoginResponse], error)
	GuestLogin(context.Context, *connect.Request[v1.GuestLoginRequest]) (*connect.Response[v1.GuestLoginResponse], error)
	WhoAmI(context.Context, *connect.Request[v1.WhoAmIRequest]) (*connect.Response[v1.WhoAmIResponse], error)
}

// NewAuthServiceClient constructs a client for the AuthService. baseURL is the
// server root, e.g. http://localhost:8080.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &authServiceClient{
		adminLogin: connect.NewClient[v1.AdminLoginRequest, v1.AdminLoginResponse](httpClient, baseURL+AuthServiceAdminLoginProcedure, opts...),
		guestLogin: connect.NewClient[v1.GuestLoginRequest, v1.GuestLoginResponse](httpClient, baseURL+AuthServiceGuestLoginProcedure, opts...),
		whoAmI:     connect.NewClient[v1.WhoAmIRequest, v1.WhoAmIResponse](httpClient, baseURL+AuthServiceWhoAmIProcedure, opts...),
	}
}

type authServiceClient struct {
	adminLogin *connect.Client[v1.AdminLoginRequest, v1.AdminLoginResponse]
	guestLogin *connect.Client[v1.GuestLoginRequest, v1.GuestLoginResponse]
	whoAmI     *connect.Client[v1.WhoAmIRequest, v1.WhoAmIResponse]
}

func (c *authServiceClient) AdminLogin(ctx context.Context, req *connect.Request[v1.AdminLoginRequest]) (*connect.Response[v1.AdminLoginResponse], error) {
	return c.adminLogin.CallUnary(ctx, req)
}

func (c *authServiceClient) GuestLogin(ctx context.Context, req *connect.Request[v1.GuestLoginRequest]) (*connect.Response[v1.GuestLoginResponse], error) {
	return c.guestLogin.CallUnary(ctx, req)
}

func (c *authServiceClient) WhoAmI(ctx context.Context, req *connect.Request[v1.WhoAmIRequest]) (*connect.Response[v1.WhoAmIResponse], error) {
	return c.whoAmI.CallUnary(ctx, req)
}
