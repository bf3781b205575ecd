package google

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/giladtamam/football-insights-sub001/internal/platform/cache"
	"github.com/giladtamam/football-insights-sub001/internal/platform/logging"
	"github.com/giladtamam/football-insights-sub001/internal/usecase"
)

const defaultTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// Client verifies Google ID tokens against the tokeninfo endpoint. Verified
// identities are cached briefly by token hash so a burst of sign-in retries
// does not hammer the endpoint.
type Client struct {
	httpClient   *http.Client
	tokenInfoURL string
	clientID     string
	store        *cache.Store
	logger       *logging.Logger
}

func NewClient(httpClient *http.Client, tokenInfoURL, clientID string, cacheTTL time.Duration, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	trimmed := strings.TrimSpace(tokenInfoURL)
	if trimmed == "" {
		trimmed = defaultTokenInfoURL
	}

	return &Client{
		httpClient:   httpClient,
		tokenInfoURL: trimmed,
		clientID:     strings.TrimSpace(clientID),
		store:        cache.NewStore(cacheTTL),
		logger:       logger,
	}
}

func (c *Client) VerifyIDToken(ctx context.Context, idToken string) (usecase.GoogleIdentity, error) {
	idToken = strings.TrimSpace(idToken)
	if idToken == "" {
		return usecase.GoogleIdentity{}, fmt.Errorf("%w: google id token is required", usecase.ErrUnauthorized)
	}

	cacheKey := "google:" + hashToken(idToken)
	value, err := c.store.GetOrLoad(ctx, cacheKey, func(ctx context.Context) (any, error) {
		return c.fetchTokenInfo(ctx, idToken)
	})
	if err != nil {
		return usecase.GoogleIdentity{}, err
	}

	identity, ok := value.(usecase.GoogleIdentity)
	if !ok {
		return usecase.GoogleIdentity{}, fmt.Errorf("unexpected cache payload type %T", value)
	}
	return identity, nil
}

func (c *Client) fetchTokenInfo(ctx context.Context, idToken string) (usecase.GoogleIdentity, error) {
	endpoint := c.tokenInfoURL + "?" + url.Values{"id_token": {idToken}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return usecase.GoogleIdentity{}, fmt.Errorf("build tokeninfo request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return usecase.GoogleIdentity{}, fmt.Errorf("%w: request tokeninfo: %v", usecase.ErrDependencyUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return usecase.GoogleIdentity{}, fmt.Errorf("read tokeninfo response: %w", err)
	}

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
		return usecase.GoogleIdentity{}, fmt.Errorf("%w: google rejected the id token", usecase.ErrUnauthorized)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "tokeninfo non-200", "status_code", resp.StatusCode)
		return usecase.GoogleIdentity{}, fmt.Errorf("tokeninfo failed with status %d", resp.StatusCode)
	}

	var decoded tokenInfoResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return usecase.GoogleIdentity{}, fmt.Errorf("unmarshal tokeninfo response: %w", err)
	}

	if c.clientID != "" && decoded.Audience != c.clientID {
		return usecase.GoogleIdentity{}, fmt.Errorf("%w: id token audience mismatch", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.Subject) == "" || strings.TrimSpace(decoded.Email) == "" {
		return usecase.GoogleIdentity{}, fmt.Errorf("invalid tokeninfo response: subject or email is empty")
	}

	return usecase.GoogleIdentity{
		Subject: decoded.Subject,
		Email:   strings.ToLower(strings.TrimSpace(decoded.Email)),
		Name:    strings.TrimSpace(decoded.Name),
		Picture: strings.TrimSpace(decoded.Picture),
	}, nil
}

type tokenInfoResponse struct {
	Audience string `json:"aud"`
	Subject  string `json:"sub"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Picture  string `json:"picture"`
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
