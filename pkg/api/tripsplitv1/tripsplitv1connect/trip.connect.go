package tripsplitv1connect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	v1 "github.com/mmynk/tripsplit/pkg/api/tripsplitv1"
)

// TripServiceName is the fully-qualified name of the TripService service.
const TripServiceName = "tripsplit.v1.TripService"

// Procedure paths of the TripService RPCs.
const (
	TripServiceListTripsProcedure               = "/tripsplit.v1.TripService/ListTrips"
	TripServiceCreateTripProcedure              = "/tripsplit.v1.TripService/CreateTrip"
	TripServiceGetTripProcedure                 = "/tripsplit.v1.TripService/GetTrip"
	TripServiceDeleteTripProcedure              = "/tripsplit.v1.TripService/DeleteTrip"
	TripServiceAddParticipantProcedure          = "/tripsplit.v1.TripService/AddParticipant"
	TripServiceUpdateParticipantWeightProcedure = "/tripsplit.v1.TripService/UpdateParticipantWeight"
	TripServiceRemoveParticipantProcedure       = "/tripsplit.v1.TripService/RemoveParticipant"
	TripServiceAddExpenseProcedure              = "/tripsplit.v1.TripService/AddExpense"
	TripServiceRemoveExpenseProcedure           = "/tripsplit.v1.TripService/RemoveExpense"
	TripServiceGetSettlementProcedure           = "/tripsplit.v1.TripService/GetSettlement"
	TripServiceGetInviteLinkProcedure           = "/tripsplit.v1.TripService/GetInviteLink"
)

// TripServiceHandler is implemented by the server.
type TripServiceHandler interface {
	ListTrips(context.Context, *connect.Request[v1.ListTripsRequest]) (*connect.Response[v1.ListTripsResponse], error)
	CreateTrip(context.Context, *connect.Request[v1.CreateTripRequest]) (*connect.Response[v1.CreateTripResponse], error)
	GetTrip(context.Context, *connect.Request[v1.GetTripRequest]) (*connect.Response[v1.GetTripResponse], error)
	DeleteTrip(context.Context, *connect.Request[v1.DeleteTripRequest]) (*connect.Response[v1.DeleteTripResponse], error)
	AddParticipant(context.Context, *connect.Request[v1.AddParticipantRequest]) (*connect.Response[v1.AddParticipantResponse], error)
	UpdateParticipantWeight(context.Context, *connect.Request[v1.UpdateParticipantWeightRequest]) (*connect.Response[v1.UpdateParticipantWeightResponse], error)
	RemoveParticipant(context.Context, *connect.Request[v1.RemoveParticipantRequest]) (*connect.Response[v1.RemoveParticipantResponse], error)
	AddExpense(context.Context, *connect.Request[v1.AddExpenseRequest]) (*connect.Response[v1.AddExpenseResponse], error)
	RemoveExpense(context.Context, *connect.Request[v1.RemoveExpenseRequest]) (*connect.Response[v1.RemoveExpenseResponse], error)
	GetSettlement(context.Context, *connect.Request[v1.GetSettlementRequest]) (*connect.Response[v1.GetSettlementResponse], error)
	GetInviteLink(context.Context, *connect.Request[v1.GetInviteLinkRequest]) (*connect.Response[v1.GetInviteLinkResponse], error)
}

// NewTripServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewTripServiceHandler(svc TripServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	handlers := map[string]http.Handler{
		TripServiceListTripsProcedure:               connect.NewUnaryHandler(TripServiceListTripsProcedure, svc.ListTrips, opts...),
		TripServiceCreateTripProcedure:              connect.NewUnaryHandler(TripServiceCreateTripProcedure, svc.CreateTrip, opts...),
		TripServiceGetTripProcedure:                 connect.NewUnaryHandler(TripServiceGetTripProcedure, svc.GetTrip, opts...),
		TripServiceDeleteTripProcedure:              connect.NewUnaryHandler(TripServiceDeleteTripProcedure, svc.DeleteTrip, opts...),
		TripServiceAddParticipantProcedure:          connect.NewUnaryHandler(TripServiceAddParticipantProcedure, svc.AddParticipant, opts...),
		TripServiceUpdateParticipantWeightProcedure: connect.NewUnaryHandler(TripServiceUpdateParticipantWeightProcedure, svc.UpdateParticipantWeight, opts...),
		TripServiceRemoveParticipantProcedure:       connect.NewUnaryHandler(TripServiceRemoveParticipantProcedure, svc.RemoveParticipant, opts...),
		TripServiceAddExpenseProcedure:              connect.NewUnaryHandler(TripServiceAddExpenseProcedure, svc.AddExpense, opts...),
		TripServiceRemoveExpenseProcedure:           connect.NewUnaryHandler(TripServiceRemoveExpenseProcedure, svc.RemoveExpense, opts...),
		TripServiceGetSettlementProcedure:           connect.NewUnaryHandler(TripServiceGetSettlementProcedure, svc.GetSettlement, opts...),
		TripServiceGetInviteLinkProcedure:           connect.NewUnaryHandler(TripServiceGetInviteLinkProcedure, svc.GetInviteLink, opts...),
	}

	return "/" + TripServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// UnimplementedTripServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedTripServiceHandler struct{}

func (UnimplementedTripServiceHandler) ListTrips(context.Context, *connect.Request[v1.ListTripsRequest]) (*connect.Response[v1.ListTripsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tripsplit.v1.TripService.ListTrips is not implemented"))
}

func (UnimplementedTripServiceHandler) CreateTrip(context.Context, *connect.Request[v1.CreateTripRequest]) (*connect.Response[v1.CreateTripResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tripsplit.v1.TripService.CreateTrip is not implemented"))
}

func (UnimplementedTripServiceHandler) GetTrip(context.Context, *connect.Request[v1.GetTripRequest]) (*connect.Response[v1.GetTripResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tripsplit.v1.TripService.GetTrip is not implemented"))
}

func (UnimplementedTripServiceHandler) DeleteTrip(context.Context, *connect.Request[v1.DeleteTripRequest]) (*connect.Response[v1.DeleteTripResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tripsplit.v1.TripService.DeleteTrip is not implemented"))
}

func (UnimplementedTripServiceHandler) AddParticipant(context.Context, *connect.Request[v1.AddParticipantRequest]) (*connect.Response[v1.AddParticipantResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tripsplit.v1.TripService.AddParticipant is not implemented"))
}

func (UnimplementedTripServiceHandler) UpdateParticipantWeight(context.Context, *connect.Request[v1.UpdateParticipantWeightRequest]) (*connect.Response[v1.UpdateParticipantWeightResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tripsplit.v1.TripService.UpdateParticipantWeight is not implemented"))
}

func (UnimplementedTripServiceHandler) RemoveParticipant(context.Context, *connect.Request[v1.RemoveParticipantRequest]) (*connect.Response[v1.RemoveParticipantResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tripsplit.v1.TripService.RemoveParticipant is not implemented"))
}

func (UnimplementedTripServiceHandler) AddExpense(context.Context, *connect.Request[v1.AddExpenseRequest]) (*connect.Response[v1.AddExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tripsplit.v1.TripService.AddExpense is not implemented"))
}

func (UnimplementedTripServiceHandler) RemoveExpense(context.Context, *connect.Request[v1.RemoveExpenseRequest]) (*connect.Response[v1.RemoveExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tripsplit.v1.TripService.RemoveExpense is not implemented"))
}

func (UnimplementedTripServiceHandler) GetSettlement(context.Context, *connect.Request[v1.GetSettlementRequest]) (*connect.Response[v1.GetSettlementResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tripsplit.v1.TripService.GetSettlement is not implemented"))
}

func (UnimplementedTripServiceHandler) GetInviteLink(context.Context, *connect.Request[v1.GetInviteLinkRequest]) (*connect.Response[v1.GetInviteLinkResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tripsplit.v1.TripService.GetInviteLink is not implemented"))
}

// TripServiceClient is a client for the tripsplit.v1.TripService service.
type TripServiceClient interface {
	ListTrips(context.Context, *connect.Request[v1.ListTripsRequest]) (*connect.Response[v1.ListTripsResponse], error)
	CreateTrip(context.Context, *connect.Request[v1.CreateTripRequest]) (*connect.Response[v1.CreateTripResponse], error)
	GetTrip(context.Context, *connect.Request[v1.GetTripRequest]) (*connect.Response[v1.GetTripResponse], error)
	DeleteTrip(context.Context, *connect.Request[v1.DeleteTripRequest]) (*connect.Response[v1.DeleteTripResponse], error)
	AddParticipant(context.Context, *connect.Request[v1.AddParticipantRequest]) (*connect.Response[v1.AddParticipantResponse], error)
	UpdateParticipantWeight(context.Context, *connect.Request[v1.UpdateParticipantWeightRequest]) (*connect.Response[v1.UpdateParticipantWeightResponse], error)
	RemoveParticipant(context.Context, *connect.Request[v1.RemoveParticipantRequest]) (*connect.Response[v1.RemoveParticipantResponse], error)
	AddExpense(context.Context, *connect.Request[v1.AddExpenseRequest]) (*connect.Response[v1.AddExpenseResponse], error)
	RemoveExpense(context.Context, *connect.Request[v1.RemoveExpenseRequest]) (*connect.Response[v1.RemoveExpenseResponse], error)
	GetSettlement(context.Context, *connect.Request[v1.GetSettlementRequest]) (*connect.Response[v1.GetSettlementResponse], error)
	GetInviteLink(context.Context, *connect.Request[v1.GetInviteLinkRequest]) (*connect.Response[v1.GetInviteLinkResponse], error)
}

// NewTripServiceClient constructs a client for the TripService. baseURL is the
// server root, e.g. http://localhost:8080.
func NewTripServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TripServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &tripServiceClient{
		listTrips:               connect.NewClient[v1.ListTripsRequest, v1.ListTripsResponse](httpClient, baseURL+TripServiceListTripsProcedure, opts...),
		createTrip:              connect.NewClient[v1.CreateTripRequest, v1.CreateTripResponse](httpClient, baseURL+TripServiceCreateTripProcedure, opts...),
		getTrip:                 connect.NewClient[v1.GetTripRequest, v1.GetTripResponse](httpClient, baseURL+TripServiceGetTripProcedure, opts...),
		deleteTrip:              connect.NewClient[v1.DeleteTripRequest, v1.DeleteTripResponse](httpClient, baseURL+TripServiceDeleteTripProcedure, opts...),
		addParticipant:          connect.NewClient[v1.AddParticipantRequest, v1.AddParticipantResponse](httpClient, baseURL+TripServiceAddParticipantProcedure, opts...),
		updateParticipantWeight: connect.NewClient[v1.UpdateParticipantWeightRequest, v1.UpdateParticipantWeightResponse](httpClient, baseURL+TripServiceUpdateParticipantWeightProcedure, opts...),
		removeParticipant:       connect.NewClient[v1.RemoveParticipantRequest, v1.RemoveParticipantResponse](httpClient, baseURL+TripServiceRemoveParticipantProcedure, opts...),
		addExpense:              connect.NewClient[v1.AddExpenseRequest, v1.AddExpenseResponse](httpClient, baseURL+TripServiceAddExpenseProcedure, opts...),
		removeExpense:           connect.NewClient[v1.RemoveExpenseRequest, v1.RemoveExpenseResponse](httpClient, baseURL+TripServiceRemoveExpenseProcedure, opts...),
		getSettlement:           connect.NewClient[v1.GetSettlementRequest, v1.GetSettlementResponse](httpClient, baseURL+TripServiceGetSettlementProcedure, opts...),
		getInviteLink:           connect.NewClient[v1.GetInviteLinkRequest, v1.GetInviteLinkResponse](httpClient, baseURL+TripServiceGetInviteLinkProcedure, opts...),
	}
}

type tripServiceClient struct {
	listTrips               *connect.Client[v1.ListTripsRequest, v1.ListTripsResponse]
	createTrip              *connect.Client[v1.CreateTripRequest, v1.CreateTripResponse]
	getTrip                 *connect.Client[v1.GetTripRequest, v1.GetTripResponse]
	deleteTrip              *connect.Client[v1.DeleteTripRequest, v1.DeleteTripResponse]
	addParticipant          *connect.Client[v1.AddParticipantRequest, v1.AddParticipantResponse]
	updateParticipantWeight *connect.Client[v1.UpdateParticipantWeightRequest, v1.UpdateParticipantWeightResponse]
	removeParticipant       *connect.Client[v1.RemoveParticipantRequest, v1.RemoveParticipantResponse]
	addExpense              *connect.Client[v1.AddExpenseRequest, v1.AddExpenseResponse]
	removeExpense           *connect.Client[v1.RemoveExpenseRequest, v1.RemoveExpenseResponse]
	getSettlement           *connect.Client[v1.GetSettlementRequest, v1.GetSettlementResponse]
	getInviteLink           *connect.Client[v1.GetInviteLinkRequest, v1.GetInviteLinkResponse]
}

func (c *tripServiceClient) ListTrips(ctx context.Context, req *connect.Request[v1.ListTripsRequest]) (*connect.Response[v1.ListTripsResponse], error) {
	return c.listTrips.CallUnary(ctx, req)
}

func (c *tripServiceClient) CreateTrip(ctx context.Context, req *connect.Request[v1.CreateTripRequest]) (*connect.Response[v1.CreateTripResponse], error) {
	return c.createTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) GetTrip(ctx context.Context, req *connect.Request[v1.GetTripRequest]) (*connect.Response[v1.GetTripResponse], error) {
	return c.getTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) DeleteTrip(ctx context.Context, req *connect.Request[v1.DeleteTripRequest]) (*connect.Response[v1.DeleteTripResponse], error) {
	return c.deleteTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) AddParticipant(ctx context.Context, req *connect.Request[v1.AddParticipantRequest]) (*connect.Response[v1.AddParticipantResponse], error) {
	return c.addParticipant.CallUnary(ctx, req)
}

func (c *tripServiceClient) UpdateParticipantWeight(ctx context.Context, req *connect.Request[v1.UpdateParticipantWeightRequest]) (*connect.Response[v1.UpdateParticipantWeightResponse], error) {
	return c.updateParticipantWeight.CallUnary(ctx, req)
}

func (c *tripServiceClient) RemoveParticipant(ctx context.Context, req *connect.Request[v1.RemoveParticipantRequest]) (*connect.Response[v1.RemoveParticipantResponse], error) {
	return c.removeParticipant.CallUnary(ctx, req)
}

func (c *tripServiceClient) AddExpense(ctx context.Context, req *connect.Request[v1.AddExpenseRequest]) (*connect.Response[v1.AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *tripServiceClient) RemoveExpense(ctx context.Context, req *connect.Request[v1.RemoveExpenseRequest]) (*connect.Response[v1.RemoveExpenseResponse], error) {
	return c.removeExpense.CallUnary(ctx, req)
}

func (c *tripServiceClient) GetSettlement(ctx context.Context, req *connect.Request[v1.GetSettlementRequest]) (*connect.Response[v1.GetSettlementResponse], error) {
	return c.getSettlement.CallUnary(ctx, req)
}

func (c *tripServiceClient) GetInviteLink(ctx context.Context, req *connect.Request[v1.GetInviteLinkRequest]) (*connect.Response[v1.GetInviteLinkResponse], error) {
	return c.getInviteLink.CallUnary(ctx, req)
}
