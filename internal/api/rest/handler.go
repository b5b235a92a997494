package rest

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/token-resolver/internal/domain"
	"github.com/feral-file/token-resolver/internal/registry"
	"github.com/feral-file/token-resolver/internal/resolver"
	"github.com/feral-file/token-resolver/internal/store"
)

// SearchSource performs cross-chain token search. The DexScreener
// client is the production implementation.
type SearchSource interface {
	Search(ctx context.Context, query string) ([]*domain.TokenSearchResult, error)
}

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// ResolveToken resolves a symbol to its contract address
	// GET /api/v1/resolve?symbol=<symbol>&chain=<chain>&force_refresh=<bool>
	ResolveToken(c *gin.Context)

	// ResolvePair resolves both legs of a trading pair
	// GET /api/v1/pair?pair=<BASE/QUOTE>&chain=<chain>
	ResolvePair(c *gin.Context)

	// GetStats returns provider call statistics and cache counters
	// GET /api/v1/stats?hours=<n>
	GetStats(c *gin.Context)

	// AddToken registers a token in the verification registry
	// POST /api/v1/tokens
	AddToken(c *gin.Context)

	// ResolveRegistrySymbol guesses the most liquid registered token for a symbol
	// GET /api/v1/tokens/resolve?symbol=<symbol>&chain=<chain>
	ResolveRegistrySymbol(c *gin.Context)

	// SearchTokens searches tokens by symbol or name across chains
	// GET /api/v1/tokens/search?q=<query>
	SearchTokens(c *gin.Context)

	// ListFailedLookups returns recent resolution failures
	// GET /api/v1/lookups/failed?limit=<n>
	ListFailedLookups(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	resolver resolver.Service
	registry registry.Registry
	search   SearchSource
	store    store.Store
}

// NewHandler creates a new REST API handler
func NewHandler(svc resolver.Service, reg registry.Registry, search SearchSource, st store.Store) Handler {
	return &handler{
		resolver: svc,
		registry: reg,
		search:   search,
		store:    st,
	}
}

// ResolveToken resolves a symbol to its contract address
func (h *handler) ResolveToken(c *gin.Context) {
	symbol := strings.TrimSpace(c.Query("symbol"))
	if symbol == "" {
		respondBadRequest(c, "Query parameter 'symbol' is required")
		return
	}
	chain := c.DefaultQuery("chain", "ethereum")
	forceRefresh := c.Query("force_refresh") == "true"

	resolution, err := h.resolver.Resolve(c.Request.Context(), symbol, chain, forceRefresh)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resolution)
}

// ResolvePair resolves both legs of a trading pair
func (h *handler) ResolvePair(c *gin.Context) {
	pair := strings.TrimSpace(c.Query("pair"))
	if pair == "" {
		respondBadRequest(c, "Query parameter 'pair' is required")
		return
	}
	chain := c.DefaultQuery("chain", "ethereum")

	resolution, err := h.resolver.ResolvePair(c.Request.Context(), pair, chain)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resolution)
}

// GetStats returns provider call statistics and cache counters
func (h *handler) GetStats(c *gin.Context) {
	hours := 24
	if raw := c.Query("hours"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondBadRequest(c, "Query parameter 'hours' must be a positive integer")
			return
		}
		hours = parsed
	}

	stats, err := h.resolver.Stats(c.Request.Context(), time.Duration(hours)*time.Hour)
	if err != nil {
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// addTokenRequest is the POST /api/v1/tokens body
type addTokenRequest struct {
	Chain   string `json:"chain_id" binding:"required"`
	Address string `json:"address" binding:"required"`
	Verify  *bool  `json:"verify"`
}

// AddToken registers a token in the verification registry
func (h *handler) AddToken(c *gin.Context) {
	var req addTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	chain, err := domain.NormalizeChain(req.Chain)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if strings.HasPrefix(req.Address, "0x") && !domain.IsEVMAddress(req.Address) {
		respondBadRequest(c, "Invalid contract address")
		return
	}

	verify := true
	if req.Verify != nil {
		verify = *req.Verify
	}

	token, err := h.registry.AddToken(c.Request.Context(), chain, req.Address, verify)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, token)
}

// ResolveRegistrySymbol guesses the most liquid registered token for a symbol
func (h *handler) ResolveRegistrySymbol(c *gin.Context) {
	symbol := strings.TrimSpace(c.Query("symbol"))
	if symbol == "" {
		respondBadRequest(c, "Query parameter 'symbol' is required")
		return
	}
	chain, err := domain.NormalizeChain(c.DefaultQuery("chain", "ethereum"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	token, err := h.registry.ResolveSymbol(c.Request.Context(), chain, symbol)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, token)
}

// SearchTokens searches tokens by symbol or name across chains
func (h *handler) SearchTokens(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		respondBadRequest(c, "Query parameter 'q' is required")
		return
	}

	results, err := h.search.Search(c.Request.Context(), query)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// ListFailedLookups returns recent resolution failures
func (h *handler) ListFailedLookups(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondBadRequest(c, "Query parameter 'limit' must be a positive integer")
			return
		}
		limit = parsed
	}

	lookups, err := h.store.ListFailedLookups(c.Request.Context(), limit)
	if err != nil {
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"failed_lookups": lookups})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}
