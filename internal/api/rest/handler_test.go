package rest_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/feral-file/token-resolver/internal/api/middleware"
	"github.com/feral-file/token-resolver/internal/api/rest"
	"github.com/feral-file/token-resolver/internal/domain"
	"github.com/feral-file/token-resolver/internal/logger"
	"github.com/feral-file/token-resolver/internal/mocks"
	"github.com/feral-file/token-resolver/internal/store/schema"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type testAPIMocks struct {
	ctrl     *gomock.Controller
	resolver *mocks.MockResolverService
	registry *mocks.MockRegistry
	search   *mocks.MockSearchSource
	store    *mocks.MockStore
	router   *gin.Engine
}

func setupTestAPI(t *testing.T) *testAPIMocks {
	ctrl := gomock.NewController(t)

	tm := &testAPIMocks{
		ctrl:     ctrl,
		resolver: mocks.NewMockResolverService(ctrl),
		registry: mocks.NewMockRegistry(ctrl),
		search:   mocks.NewMockSearchSource(ctrl),
		store:    mocks.NewMockStore(ctrl),
	}

	handler := rest.NewHandler(tm.resolver, tm.registry, tm.search, tm.store)
	tm.router = gin.New()
	rest.SetupRoutes(tm.router, handler, middleware.AuthConfig{
		APIKeys: []string{"test-api-key"},
	})
	return tm
}

func (tm *testAPIMocks) request(method, target string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	tm.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	detail, ok := body["error"].(map[string]any)
	assert.True(t, ok, "missing error envelope: %s", w.Body.String())
	return detail
}

func TestResolveToken_Success(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.ctrl.Finish()

	contract := "0xdac17f958d2ee523a2206206994597c13d831ec7"
	tm.resolver.EXPECT().
		Resolve(gomock.Any(), "USDT", "ethereum", false).
		Return(&domain.Resolution{
			Symbol:     "USDT",
			Contract:   &contract,
			Blockchain: domain.ChainEthereum,
			Decimals:   6,
			Name:       "Tether USD",
			Source:     domain.SourceCache,
			Verified:   true,
		}, nil)

	w := tm.request(http.MethodGet, "/api/v1/resolve?symbol=USDT", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var res domain.Resolution
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "USDT", res.Symbol)
	assert.Equal(t, contract, *res.Contract)
	assert.Equal(t, domain.SourceCache, res.Source)
}

func TestResolveToken_QueryFlags(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.ctrl.Finish()

	tm.resolver.EXPECT().
		Resolve(gomock.Any(), "CAKE", "bsc", true).
		Return(&domain.Resolution{Symbol: "CAKE", Blockchain: domain.ChainBSC, Source: domain.SourceAPI}, nil)

	w := tm.request(http.MethodGet, "/api/v1/resolve?symbol=CAKE&chain=bsc&force_refresh=true", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestResolveToken_MissingSymbol(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.ctrl.Finish()

	w := tm.request(http.MethodGet, "/api/v1/resolve", nil, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	detail := decodeError(t, w)
	assert.Equal(t, "bad_request", detail["code"])
}

func TestResolveToken_NotResolved(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.ctrl.Finish()

	tm.resolver.EXPECT().
		Resolve(gomock.Any(), "NOPE", "ethereum", false).
		Return(nil, &domain.ResolutionFailedError{Symbol: "NOPE", Chain: domain.ChainEthereum})

	w := tm.request(http.MethodGet, "/api/v1/resolve?symbol=NOPE", nil, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	detail := decodeError(t, w)
	assert.Equal(t, "not_found", detail["code"])
}

func TestResolveToken_InvalidChain(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.ctrl.Finish()

	tm.resolver.EXPECT().
		Resolve(gomock.Any(), "USDT", "dogechain", false).
		Return(nil, &domain.InvalidChainError{Input: "dogechain"})

	w := tm.request(http.MethodGet, "/api/v1/resolve?symbol=USDT&chain=dogechain", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResolvePair_Success(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.ctrl.Finish()

	tm.resolver.EXPECT().
		ResolvePair(gomock.Any(), "ETH/USDT", "ethereum").
		Return(&domain.PairResolution{
			Pair:       "ETH/USDT",
			BaseToken:  &domain.Resolution{Symbol: "ETH", Source: domain.SourceNative},
			QuoteToken: &domain.Resolution{Symbol: "USDT", Source: domain.SourceCache},
			Blockchain: domain.ChainEthereum,
		}, nil)

	w := tm.request(http.MethodGet, "/api/v1/pair?pair=ETH/USDT", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var res domain.PairResolution
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "ETH/USDT", res.Pair)
	assert.Equal(t, domain.SourceNative, res.BaseToken.Source)
}

func TestResolvePair_InvalidFormat(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.ctrl.Finish()

	tm.resolver.EXPECT().
		ResolvePair(gomock.Any(), "ETHUSDT", "ethereum").
		Return(nil, &domain.InvalidPairFormatError{Pair: "ETHUSDT"})

	w := tm.request(http.MethodGet, "/api/v1/pair?pair=ETHUSDT", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetStats(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.ctrl.Finish()

	tm.resolver.EXPECT().
		Stats(gomock.Any(), 6*time.Hour).
		Return(&domain.APIStats{TotalCalls: 42, CacheHits: 10, CacheHitRate: 23.81}, nil)

	w := tm.request(http.MethodGet, "/api/v1/stats?hours=6", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var stats domain.APIStats
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(42), stats.TotalCalls)
	assert.Equal(t, 23.81, stats.CacheHitRate)
}

func TestGetStats_InvalidHours(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.ctrl.Finish()

	for _, hours := range []string{"abc", "-1", "0"} {
		w := tm.request(http.MethodGet, "/api/v1/stats?hours="+hours, nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "hours=%s", hours)
	}
}

func TestAddToken_RequiresAuth(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.ctrl.Finish()

	body := []byte(`{"chain_id":"ethereum","address":"0x6982508145454Ce325dDbE47a25d4ec3d2311933"}`)

	w := tm.request(http.MethodPost, "/api/v1/tokens", body, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAddToken_Success(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.ctrl.Finish()

	address := "0x6982508145454Ce325dDbE47a25d4ec3d2311933"
	tm.registry.EXPECT().
		AddToken(gomock.Any(), domain.ChainEthereum, address, true).
		Return(&domain.VerifiedToken{
			Chain:        domain.ChainEthereum,
			Address:      "0x6982508145454ce325ddbe47a25d4ec3d2311933",
			Symbol:       "PEPE",
			IsVerified:   true,
			LiquidityUSD: 900_000,
		}, nil)

	body := []byte(`{"chain_id":"ethereum","address":"` + address + `"}`)
	w := tm.request(http.MethodPost, "/api/v1/tokens", body, map[string]string{
		"Authorization": "ApiKey test-api-key",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var token domain.VerifiedToken
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))
	assert.True(t, token.IsVerified)
	assert.Equal(t, "PEPE", token.Symbol)
}

func TestAddToken_SkipVerify(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.ctrl.Finish()

	address := "0x1111111111111111111111111111111111111111"
	tm.registry.EXPECT().
		AddToken(gomock.Any(), domain.ChainEthereum, address, false).
		Return(&domain.VerifiedToken{Address: address}, nil)

	body := []byte(`{"chain_id":"eth","address":"` + address + `","verify":false}`)
	w := tm.request(http.MethodPost, "/api/v1/tokens", body, map[string]string{
		"Authorization": "ApiKey test-api-key",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAddToken_ScamRejected(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.ctrl.Finish()

	address := "0x2222222222222222222222222222222222222222"
	key := domain.NewTokenKey(domain.ChainBSC, address)
	tm.registry.EXPECT().
		AddToken(gomock.Any(), domain.ChainBSC, address, true).
		Return(nil, &domain.ScamTokenError{Key: key, Reason: "low liquidity: $50"})

	body := []byte(`{"chain_id":"bsc","address":"` + address + `"}`)
	w := tm.request(http.MethodPost, "/api/v1/tokens", body, map[string]string{
		"Authorization": "ApiKey test-api-key",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	detail := decodeError(t, w)
	assert.Equal(t, "validation_failed", detail["code"])
}

func TestAddToken_InvalidBody(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.ctrl.Finish()

	headers := map[string]string{"Authorization": "ApiKey test-api-key"}

	// Missing required fields.
	w := tm.request(http.MethodPost, "/api/v1/tokens", []byte(`{"chain_id":"ethereum"}`), headers)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed hex address.
	w = tm.request(http.MethodPost, "/api/v1/tokens", []byte(`{"chain_id":"ethereum","address":"0x123"}`), headers)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResolveRegistrySymbol(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.ctrl.Finish()

	tm.registry.EXPECT().
		ResolveSymbol(gomock.Any(), domain.ChainEthereum, "DOGE").
		Return(&domain.VerifiedToken{
			Address:      "0x7777777777777777777777777777777777777777",
			Symbol:       "DOGE",
			LiquidityUSD: 900_000,
		}, nil)

	w := tm.request(http.MethodGet, "/api/v1/tokens/resolve?symbol=DOGE", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var token domain.VerifiedToken
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))
	assert.Equal(t, "0x7777777777777777777777777777777777777777", token.Address)
}

func TestResolveRegistrySymbol_Unknown(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.ctrl.Finish()

	tm.registry.EXPECT().
		ResolveSymbol(gomock.Any(), domain.ChainEthereum, "GHOST").
		Return(nil, domain.ErrNotFound)

	w := tm.request(http.MethodGet, "/api/v1/tokens/resolve?symbol=GHOST", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchTokens(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.ctrl.Finish()

	tm.search.EXPECT().
		Search(gomock.Any(), "pepe").
		Return([]*domain.TokenSearchResult{
			{Chain: domain.ChainEthereum, Symbol: "PEPE", PairsCount: 3, TotalLiquidity: 1_550_000},
		}, nil)

	w := tm.request(http.MethodGet, "/api/v1/tokens/search?q=pepe", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Results []*domain.TokenSearchResult `json:"results"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Results, 1)
	assert.Equal(t, "PEPE", body.Results[0].Symbol)
}

func TestSearchTokens_MissingQuery(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.ctrl.Finish()

	w := tm.request(http.MethodGet, "/api/v1/tokens/search", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListFailedLookups(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.ctrl.Finish()

	message := "all providers failed"
	tm.store.EXPECT().
		ListFailedLookups(gomock.Any(), 5).
		Return([]schema.FailedLookup{
			{TokenSymbol: "NOPE", Blockchain: "ethereum", ErrorMessage: &message, RetryCount: 3},
		}, nil)

	w := tm.request(http.MethodGet, "/api/v1/lookups/failed?limit=5", nil, map[string]string{
		"Authorization": "ApiKey test-api-key",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "NOPE")
}

func TestListFailedLookups_RequiresAuth(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.ctrl.Finish()

	w := tm.request(http.MethodGet, "/api/v1/lookups/failed", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthCheck(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.ctrl.Finish()

	w := tm.request(http.MethodGet, "/health", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
