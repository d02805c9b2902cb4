package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/arraygate/arrays"
	"github.com/kbukum/arraygate/observability"
	"github.com/kbukum/arraygate/server"
)

// Accounts is the part of the gateway the public handlers need.
type Accounts interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, error)
}

// Handler serves the HTTP API.
type Handler struct {
	accounts Accounts
	metrics  *observability.Metrics
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithMetrics records array input sizes on m.
func WithMetrics(m *observability.Metrics) HandlerOption {
	return func(h *Handler) { h.metrics = m }
}

// NewHandler creates a Handler.
func NewHandler(accounts Accounts, opts ...HandlerOption) *Handler {
	h := &Handler{accounts: accounts}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Register(c *gin.Context) {
	var req CredentialsRequest
	if err := bind(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}
	if err := h.accounts.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		server.RespondWithError(c, toAppError(err))
		return
	}
	server.RespondOK(c, MessageResponse{Message: msgRegistered})
}

func (h *Handler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := bind(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}
	token, err := h.accounts.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		server.RespondWithError(c, toAppError(err))
		return
	}
	server.RespondOK(c, TokenResponse{AccessToken: token})
}

func (h *Handler) BubbleSort(c *gin.Context) {
	if nums, ok := h.numbers(c, "bubble-sort"); ok {
		server.RespondOK(c, SortResponse{Numbers: arrays.BubbleSort(nums)})
	}
}

func (h *Handler) FilterEven(c *gin.Context) {
	if nums, ok := h.numbers(c, "filter-even"); ok {
		server.RespondOK(c, FilterResponse{EvenNumbers: arrays.FilterEven(nums)})
	}
}

func (h *Handler) SumElements(c *gin.Context) {
	if nums, ok := h.numbers(c, "sum-elements"); ok {
		server.RespondOK(c, SumResponse{Sum: arrays.Sum(nums)})
	}
}

func (h *Handler) MaxValue(c *gin.Context) {
	nums, ok := h.numbers(c, "max-value")
	if !ok {
		return
	}
	maxVal, err := arrays.Max(nums)
	if err != nil {
		server.RespondWithError(c, toAppError(err))
		return
	}
	server.RespondOK(c, MaxResponse{Max: maxVal})
}

func (h *Handler) BinarySearch(c *gin.Context) {
	var req SearchRequest
	if err := bind(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}
	h.metrics.ArrayInput(c.Request.Context(), "binary-search", len(req.Numbers))
	index, found := arrays.BinarySearch(req.Numbers, *req.Target)
	server.RespondOK(c, SearchResponse{Found: found, Index: index})
}

// numbers binds a NumbersRequest and records its size under op. On failure
// the error response has been written.
func (h *Handler) numbers(c *gin.Context, op string) ([]int, bool) {
	var req NumbersRequest
	if err := bind(c, &req); err != nil {
		server.RespondWithError(c, err)
		return nil, false
	}
	h.metrics.ArrayInput(c.Request.Context(), op, len(req.Numbers))
	return req.Numbers, true
}
