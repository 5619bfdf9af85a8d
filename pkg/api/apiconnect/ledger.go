package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/pkg/api"
)

const (
	// LedgerServiceName is the fully-qualified name of the LedgerService service.
	LedgerServiceName = "splitledger.v1.LedgerService"
)

// Procedure names for LedgerService RPCs.
const (
	LedgerServiceGetSummaryProcedure        = "/splitledger.v1.LedgerService/GetSummary"
	LedgerServiceGetBalancesProcedure       = "/splitledger.v1.LedgerService/GetBalances"
	LedgerServiceCreateExpenseProcedure     = "/splitledger.v1.LedgerService/CreateExpense"
	LedgerServiceListExpensesProcedure      = "/splitledger.v1.LedgerService/ListExpenses"
	LedgerServiceListUsersProcedure         = "/splitledger.v1.LedgerService/ListUsers"
	LedgerServicePreviewEqualSplitProcedure = "/splitledger.v1.LedgerService/PreviewEqualSplit"
)

// LedgerServiceHandler is implemented by the ledger service.
type LedgerServiceHandler interface {
	GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	ListUsers(context.Context, *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error)
	PreviewEqualSplit(context.Context, *connect.Request[api.PreviewEqualSplitRequest]) (*connect.Response[api.PreviewEqualSplitResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	handlers := map[string]http.Handler{
		LedgerServiceGetSummaryProcedure:        connect.NewUnaryHandler(LedgerServiceGetSummaryProcedure, svc.GetSummary, opts...),
		LedgerServiceGetBalancesProcedure:       connect.NewUnaryHandler(LedgerServiceGetBalancesProcedure, svc.GetBalances, opts...),
		LedgerServiceCreateExpenseProcedure:     connect.NewUnaryHandler(LedgerServiceCreateExpenseProcedure, svc.CreateExpense, opts...),
		LedgerServiceListExpensesProcedure:      connect.NewUnaryHandler(LedgerServiceListExpensesProcedure, svc.ListExpenses, opts...),
		LedgerServiceListUsersProcedure:         connect.NewUnaryHandler(LedgerServiceListUsersProcedure, svc.ListUsers, opts...),
		LedgerServicePreviewEqualSplitProcedure: connect.NewUnaryHandler(LedgerServicePreviewEqualSplitProcedure, svc.PreviewEqualSplit, opts...),
	}
	return servicePath(LedgerServiceName), routeByProcedure(handlers)
}

// LedgerServiceClient calls a LedgerService over HTTP.
type LedgerServiceClient interface {
	GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	ListUsers(context.Context, *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error)
	PreviewEqualSplit(context.Context, *connect.Request[api.PreviewEqualSplitRequest]) (*connect.Response[api.PreviewEqualSplitResponse], error)
}

// NewLedgerServiceClient constructs a client for the LedgerService at baseURL
// (e.g. http://localhost:8080).
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &ledgerServiceClient{
		getSummary:        connect.NewClient[api.GetSummaryRequest, api.GetSummaryResponse](httpClient, baseURL+LedgerServiceGetSummaryProcedure, opts...),
		getBalances:       connect.NewClient[api.GetBalancesRequest, api.GetBalancesResponse](httpClient, baseURL+LedgerServiceGetBalancesProcedure, opts...),
		createExpense:     connect.NewClient[api.CreateExpenseRequest, api.CreateExpenseResponse](httpClient, baseURL+LedgerServiceCreateExpenseProcedure, opts...),
		listExpenses:      connect.NewClient[api.ListExpensesRequest, api.ListExpensesResponse](httpClient, baseURL+LedgerServiceListExpensesProcedure, opts...),
		listUsers:         connect.NewClient[api.ListUsersRequest, api.ListUsersResponse](httpClient, baseURL+LedgerServiceListUsersProcedure, opts...),
		previewEqualSplit: connect.NewClient[api.PreviewEqualSplitRequest, api.PreviewEqualSplitResponse](httpClient, baseURL+LedgerServicePreviewEqualSplitProcedure, opts...),
	}
}

type ledgerServiceClient struct {
	getSummary        *connect.Client[api.GetSummaryRequest, api.GetSummaryResponse]
	getBalances       *connect.Client[api.GetBalancesRequest, api.GetBalancesResponse]
	createExpense     *connect.Client[api.CreateExpenseRequest, api.CreateExpenseResponse]
	listExpenses      *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	listUsers         *connect.Client[api.ListUsersRequest, api.ListUsersResponse]
	previewEqualSplit *connect.Client[api.PreviewEqualSplitRequest, api.PreviewEqualSplitResponse]
}

func (c *ledgerServiceClient) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	return c.listUsers.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) PreviewEqualSplit(ctx context.Context, req *connect.Request[api.PreviewEqualSplitRequest]) (*connect.Response[api.PreviewEqualSplitResponse], error) {
	return c.previewEqualSplit.CallUnary(ctx, req)
}

func servicePath(name string) string {
	return "/" + name + "/"
}

// routeByProcedure dispatches on the full request path.
func routeByProcedure(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}
