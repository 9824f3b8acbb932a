package app

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// APIClient wraps the content API. Every method is a single
// request/response mapping: no retries, no caching, no shared state.
type APIClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	if baseURL == "" {
		baseURL = defaultSiteBaseURL + "/api"
	}
	baseURL = strings.TrimRight(baseURL, "/")

	httpClient := &http.Client{Timeout: 30 * time.Second}

	// Skip TLS verification if WVA_SKIP_TLS_VERIFY is set (for container environments)
	if os.Getenv("WVA_SKIP_TLS_VERIFY") == "1" || os.Getenv("WVA_SKIP_TLS_VERIFY") == "true" {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &APIClient{BaseURL: baseURL, HTTP: httpClient}
}

func (c *APIClient) do(req *http.Request) (int, []byte, error) {
	req.Header.Set("Accept", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		// Network-level failure: propagate as-is, no status to report.
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %v", err)
	}
	return resp.StatusCode, body, nil
}

// apiError converts a non-2xx response into a message-bearing error: the
// body's message field when parseable, else a status-coded fallback.
func apiError(status int, body []byte, fallback string) error {
	var errResp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && strings.TrimSpace(errResp.Message) != "" {
		return errors.New(errResp.Message)
	}
	return fmt.Errorf("%s (%d)", fallback, status)
}

// Login exchanges credentials for a session. A 2xx body missing token or
// user is server misbehavior, distinct from transport failure.
func (c *APIClient) Login(ctx context.Context, email, password string) (*Session, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/login", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	status, body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, apiError(status, body, "Login failed")
	}

	var parsed struct {
		Token *string         `json:"token"`
		User  json.RawMessage `json:"user"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Token == nil || *parsed.Token == "" ||
		len(parsed.User) == 0 || string(parsed.User) == "null" {
		return nil, errors.New("Unexpected login response from server.")
	}
	var user AuthUser
	if err := json.Unmarshal(parsed.User, &user); err != nil {
		return nil, errors.New("Unexpected login response from server.")
	}
	return &Session{User: user, Token: *parsed.Token}, nil
}

// FetchNewsStoriesInput carries the optional query parameters of the news
// listing endpoint. Zero values are omitted from the query string.
type FetchNewsStoriesInput struct {
	Category string
	Page     int
	PerPage  int
}

type newsMetaFields struct {
	CurrentPage *int `json:"current_page"`
	LastPage    *int `json:"last_page"`
	PerPage     *int `json:"per_page"`
	Total       *int `json:"total"`
}

// FetchNewsStories lists stories with pagination metadata. Meta resolution
// is three-tier: a meta sub-object when present, else top-level fields, else
// the request's own page/perPage/item-count. The remote API shape is not
// guaranteed, so all three tiers matter.
func (c *APIClient) FetchNewsStories(ctx context.Context, input FetchNewsStoriesInput) ([]NewsStory, NewsListMeta, error) {
	params := url.Values{}
	if input.Category != "" {
		params.Set("category", input.Category)
	}
	if input.Page > 0 {
		params.Set("page", strconv.Itoa(input.Page))
	}
	if input.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(input.PerPage))
	}
	endpoint := c.BaseURL + "/news"
	if q := params.Encode(); q != "" {
		endpoint += "?" + q
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, NewsListMeta{}, err
	}
	status, body, err := c.do(req)
	if err != nil {
		return nil, NewsListMeta{}, err
	}
	if status < 200 || status >= 300 {
		return nil, NewsListMeta{}, apiError(status, body, "Unable to fetch news")
	}

	var payload struct {
		Data json.RawMessage `json:"data"`
		Meta *newsMetaFields `json:"meta"`
		newsMetaFields
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, NewsListMeta{}, fmt.Errorf("unexpected news response: %v", err)
	}

	items := []NewsStory{}
	if len(payload.Data) > 0 {
		// A missing or non-array data field degrades to an empty list.
		_ = json.Unmarshal(payload.Data, &items)
		if items == nil {
			items = []NewsStory{}
		}
	}

	metaSource := payload.newsMetaFields
	if payload.Meta != nil {
		metaSource = *payload.Meta
	}
	meta := NewsListMeta{
		CurrentPage: intOr(metaSource.CurrentPage, intOrDefault(input.Page, 1)),
		LastPage:    intOr(metaSource.LastPage, 1),
		PerPage:     intOr(metaSource.PerPage, intOrDefault(input.PerPage, len(items))),
		Total:       intOr(metaSource.Total, len(items)),
	}
	return items, meta, nil
}

func intOr(v *int, fallback int) int {
	if v != nil {
		return *v
	}
	return fallback
}

func intOrDefault(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

// FetchNewsStoryBySlug accepts either an envelope {data: story} or a bare
// story object.
func (c *APIClient) FetchNewsStoryBySlug(ctx context.Context, slug string) (*NewsStory, error) {
	endpoint := c.BaseURL + "/news/" + url.PathEscape(slug)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	status, body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, apiError(status, body, "Unable to fetch news story")
	}

	var envelope struct {
		Data *NewsStory `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data, nil
	}
	var story NewsStory
	if err := json.Unmarshal(body, &story); err != nil {
		return nil, fmt.Errorf("unexpected news story response: %v", err)
	}
	return &story, nil
}

// FetchSeaSkillsStatus loads the per-user activity list with bearer auth.
func (c *APIClient) FetchSeaSkillsStatus(ctx context.Context, userID int, token string) (*SeaSkillsStatusResponse, error) {
	endpoint := fmt.Sprintf("%s/sea-skills/status/%d", c.BaseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	status, body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, apiError(status, body, "Unable to load lesson status")
	}

	var probe struct {
		Activities json.RawMessage `json:"activities"`
	}
	if err := json.Unmarshal(body, &probe); err != nil || len(probe.Activities) == 0 || string(probe.Activities) == "null" {
		return nil, errors.New("Unexpected lesson status response from server.")
	}
	var parsed SeaSkillsStatusResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errors.New("Unexpected lesson status response from server.")
	}
	if parsed.Activities == nil {
		return nil, errors.New("Unexpected lesson status response from server.")
	}
	return &parsed, nil
}

// GetPushToken reads the push token currently associated with the account.
func (c *APIClient) GetPushToken(ctx context.Context, authToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/expo-token", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+authToken)

	status, body, err := c.do(req)
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return "", apiError(status, body, "Unable to fetch expo token")
	}
	var parsed struct {
		ExpoToken *string `json:"expo_token"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("unexpected expo token response: %v", err)
	}
	if parsed.ExpoToken == nil {
		return "", nil
	}
	return *parsed.ExpoToken, nil
}

// SetPushToken associates a device push token with the authenticated user.
func (c *APIClient) SetPushToken(ctx context.Context, authToken, pushToken string) error {
	payload, err := json.Marshal(map[string]string{"expo_token": pushToken})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.BaseURL+"/expo-token", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+authToken)

	status, body, err := c.do(req)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return apiError(status, body, "Unable to update expo token")
	}
	return nil
}
