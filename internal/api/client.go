package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	graphBase = "https://graph.facebook.com"

	// DefaultAPIVersion is used when neither the spec document nor the
	// --api-version flag names one.
	DefaultAPIVersion = "v21.0"
)

// Client wraps an HTTP client with Meta Graph API plumbing.
type Client struct {
	http       *http.Client
	baseURL    string
	apiVersion string
}

// New creates a new Client. httpClient should already carry the bearer
// token transport.
func New(httpClient *http.Client, apiVersion string) *Client {
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	return &Client{
		http:       httpClient,
		baseURL:    graphBase + "/" + apiVersion,
		apiVersion: apiVersion,
	}
}

// APIVersion returns the Graph API version this client talks to.
func (c *Client) APIVersion() string {
	return c.apiVersion
}

func (c *Client) doRequest(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, extractError(resp.StatusCode, body)
	}
	return body, nil
}

// extractError decodes Meta's {"error": {...}} envelope, falling back to a
// generic MetaError when the body is not in that shape.
func extractError(status int, body []byte) error {
	var env errorEnvelope
	if json.Unmarshal(body, &env) == nil && env.Error != nil && env.Error.Message != "" {
		return env.Error
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", status)
	}
	return &MetaError{Code: status, Message: msg}
}

func (c *Client) get(path string, params url.Values) ([]byte, error) {
	u := c.baseURL + "/" + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return c.getURL(u)
}

func (c *Client) getURL(u string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return c.doRequest(req)
}

func (c *Client) postForm(path string, params url.Values) ([]byte, error) {
	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/"+path, strings.NewReader(params.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.doRequest(req)
}

func (c *Client) postMultipart(path, field, filename string, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(data); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/"+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.doRequest(req)
}

// getList fetches a Graph API list endpoint and follows paging.next until
// the result set is exhausted.
func (c *Client) getList(path string, params url.Values) ([]json.RawMessage, error) {
	body, err := c.get(path, params)
	if err != nil {
		return nil, err
	}

	var all []json.RawMessage
	for {
		var env listEnvelope
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, fmt.Errorf("parsing list response: %w", err)
		}
		all = append(all, env.Data...)
		if env.Paging == nil || env.Paging.Next == "" {
			return all, nil
		}
		if body, err = c.getURL(env.Paging.Next); err != nil {
			return nil, err
		}
	}
}

// ---- read surface ----

// Me returns the user or system user the token belongs to.
func (c *Client) Me() (*User, error) {
	body, err := c.get("me", url.Values{"fields": {"id,name,email"}})
	if err != nil {
		return nil, err
	}
	var u User
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	return &u, nil
}

// ListAdAccounts returns the ad accounts accessible to the token.
func (c *Client) ListAdAccounts() ([]Account, error) {
	params := url.Values{"fields": {"id,name,currency,account_status,timezone_name,amount_spent,balance"}}
	rows, err := c.getList("me/adaccounts", params)
	if err != nil {
		return nil, err
	}
	return decodeRows[Account](rows)
}

// ListCampaigns returns the non-deleted campaigns in an ad account.
func (c *Client) ListCampaigns(accountID string) ([]Campaign, error) {
	params := url.Values{
		"fields": {"id,name,status,effective_status,objective,buying_type,daily_budget,lifetime_budget,start_time,stop_time"},
	}
	rows, err := c.getList(actPath(accountID)+"/campaigns", params)
	if err != nil {
		return nil, err
	}
	return decodeRows[Campaign](rows)
}

// GetCampaign returns full details for one campaign.
func (c *Client) GetCampaign(campaignID string) (*Campaign, error) {
	params := url.Values{
		"fields": {"id,name,status,effective_status,objective,buying_type,daily_budget,lifetime_budget,budget_remaining,bid_strategy,start_time,stop_time,created_time,updated_time"},
	}
	body, err := c.get(campaignID, params)
	if err != nil {
		return nil, err
	}
	var camp Campaign
	if err := json.Unmarshal(body, &camp); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	return &camp, nil
}

// ListAdSets returns the ad sets under a campaign.
func (c *Client) ListAdSets(campaignID string) ([]AdSet, error) {
	params := url.Values{
		"fields": {"id,name,status,effective_status,campaign_id,daily_budget,lifetime_budget,bid_amount,billing_event,optimization_goal,start_time,end_time"},
	}
	rows, err := c.getList(campaignID+"/adsets", params)
	if err != nil {
		return nil, err
	}
	return decodeRows[AdSet](rows)
}

// ListAds returns the ads under an ad set.
func (c *Client) ListAds(adSetID string) ([]Ad, error) {
	params := url.Values{
		"fields": {"id,name,status,effective_status,adset_id,campaign_id,creative,created_time"},
	}
	rows, err := c.getList(adSetID+"/ads", params)
	if err != nil {
		return nil, err
	}
	return decodeRows[Ad](rows)
}

// UpdateStatus sets the status of any campaign, ad set, or ad object.
func (c *Client) UpdateStatus(objectID, status string) error {
	_, err := c.postForm(objectID, url.Values{"status": {status}})
	return err
}

// UpdateCampaignBudget replaces the daily budget of a campaign. amount is
// in minor currency units.
func (c *Client) UpdateCampaignBudget(campaignID string, amount int64) error {
	_, err := c.postForm(campaignID, url.Values{"daily_budget": {strconv.FormatInt(amount, 10)}})
	return err
}

// ---- creation surface ----
//
// Every creation call sets status=PAUSED explicitly. Remote defaults are
// not trusted to keep new resources out of delivery.

// CampaignParams are the fields for a new campaign.
type CampaignParams struct {
	Name                string
	Objective           string
	BuyingType          string
	DailyBudget         int64
	LifetimeBudget      int64
	SpecialAdCategories []string
}

// AdSetParams are the fields for a new ad set.
type AdSetParams struct {
	Name             string
	CampaignID       string
	OptimizationGoal string
	BillingEvent     string
	Targeting        json.RawMessage
	DailyBudget      int64
	LifetimeBudget   int64
	BidAmount        int64
	StartTime        string
	EndTime          string
}

// CreativeParams are the fields for a new link-ad creative.
type CreativeParams struct {
	Name             string
	PageID           string
	ImageHash        string
	LinkURL          string
	Message          string
	Headline         string
	Description      string
	CallToActionType string
}

// AdParams are the fields for a new ad.
type AdParams struct {
	Name       string
	AdSetID    string
	CreativeID string
}

// UploadImage uploads image bytes to the account's ad image library and
// returns the content hash Meta assigns to it.
func (c *Client) UploadImage(accountID, filename string, data []byte) (string, error) {
	body, err := c.postMultipart(actPath(accountID)+"/adimages", "filename", filename, data)
	if err != nil {
		return "", err
	}
	var resp imageUploadResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parsing upload response: %w", err)
	}
	if img, ok := resp.Images[filename]; ok && img.Hash != "" {
		return img.Hash, nil
	}
	// Some versions key the map by the form field name instead.
	for _, img := range resp.Images {
		if img.Hash != "" {
			return img.Hash, nil
		}
	}
	return "", fmt.Errorf("upload response for %s carried no image hash", filename)
}

// CreateCampaign creates a paused campaign and returns its id.
func (c *Client) CreateCampaign(accountID string, p CampaignParams) (string, error) {
	v := url.Values{
		"name":      {p.Name},
		"objective": {p.Objective},
		"status":    {"PAUSED"},
	}
	cats := p.SpecialAdCategories
	if len(cats) == 0 {
		cats = []string{"NONE"}
	}
	v.Set("special_ad_categories", encodeJSONList(cats))
	if p.BuyingType != "" {
		v.Set("buying_type", p.BuyingType)
	}
	setBudget(v, p.DailyBudget, p.LifetimeBudget)
	return c.create(actPath(accountID)+"/campaigns", v)
}

// CreateAdSet creates a paused ad set under a campaign and returns its id.
func (c *Client) CreateAdSet(accountID string, p AdSetParams) (string, error) {
	v := url.Values{
		"name":              {p.Name},
		"campaign_id":       {p.CampaignID},
		"optimization_goal": {p.OptimizationGoal},
		"billing_event":     {p.BillingEvent},
		"status":            {"PAUSED"},
	}
	if len(p.Targeting) > 0 {
		v.Set("targeting", string(p.Targeting))
	}
	setBudget(v, p.DailyBudget, p.LifetimeBudget)
	if p.BidAmount > 0 {
		v.Set("bid_amount", strconv.FormatInt(p.BidAmount, 10))
	}
	if p.StartTime != "" {
		v.Set("start_time", p.StartTime)
	}
	if p.EndTime != "" {
		v.Set("end_time", p.EndTime)
	}
	return c.create(actPath(accountID)+"/adsets", v)
}

// CreateAdCreative creates a link-ad creative referencing an uploaded image
// hash and returns its id.
func (c *Client) CreateAdCreative(accountID string, p CreativeParams) (string, error) {
	linkData := map[string]any{
		"image_hash": p.ImageHash,
		"link":       p.LinkURL,
		"message":    p.Message,
		"name":       p.Headline,
	}
	if p.Description != "" {
		linkData["description"] = p.Description
	}
	if p.CallToActionType != "" {
		linkData["call_to_action"] = map[string]any{"type": p.CallToActionType}
	}
	story := map[string]any{
		"page_id":   p.PageID,
		"link_data": linkData,
	}
	storyJSON, err := json.Marshal(story)
	if err != nil {
		return "", fmt.Errorf("encoding object_story_spec: %w", err)
	}

	v := url.Values{
		"name":              {p.Name},
		"object_story_spec": {string(storyJSON)},
	}
	return c.create(actPath(accountID)+"/adcreatives", v)
}

// CreateAd creates a paused ad binding an ad set to a creative and returns
// its id.
func (c *Client) CreateAd(accountID string, p AdParams) (string, error) {
	v := url.Values{
		"name":     {p.Name},
		"adset_id": {p.AdSetID},
		"creative": {fmt.Sprintf(`{"creative_id":"%s"}`, p.CreativeID)},
		"status":   {"PAUSED"},
	}
	return c.create(actPath(accountID)+"/ads", v)
}

func (c *Client) create(path string, v url.Values) (string, error) {
	body, err := c.postForm(path, v)
	if err != nil {
		return "", err
	}
	var resp createResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parsing create response: %w", err)
	}
	if resp.ID == "" {
		return "", fmt.Errorf("create response carried no id")
	}
	return resp.ID, nil
}

func setBudget(v url.Values, daily, lifetime int64) {
	if daily > 0 {
		v.Set("daily_budget", strconv.FormatInt(daily, 10))
	}
	if lifetime > 0 {
		v.Set("lifetime_budget", strconv.FormatInt(lifetime, 10))
	}
}

func encodeJSONList(items []string) string {
	data, _ := json.Marshal(items)
	return string(data)
}

func decodeRows[T any](rows []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, raw := range rows {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

// actPath prefixes an ad account id with "act_" unless it already is.
// e.g. "1234567890" → "act_1234567890"
func actPath(accountID string) string {
	if strings.HasPrefix(accountID, "act_") {
		return accountID
	}
	return "act_" + accountID
}

// CleanAccountID strips an "act_" prefix for display.
func CleanAccountID(id string) string {
	return strings.TrimPrefix(id, "act_")
}

// MinorUnitsToCurrency converts minor currency units (int64-as-string) to a
// major-unit string. e.g. "5000" → "50.00"
func MinorUnitsToCurrency(units string) string {
	if units == "" {
		return "-"
	}
	n, err := strconv.ParseInt(units, 10, 64)
	if err != nil {
		return units
	}
	return fmt.Sprintf("%.2f", float64(n)/100)
}
