package api

import (
	"encoding/json"
	"fmt"
)

// MetaError wraps a Meta API error response.
type MetaError struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	Subcode   int    `json:"error_subcode"`
	FBTraceID string `json:"fbtrace_id,omitempty"`
}

func (e *MetaError) Error() string {
	if e.Subcode != 0 {
		return fmt.Sprintf("meta api error %d (subcode %d): %s", e.Code, e.Subcode, e.Message)
	}
	return fmt.Sprintf("meta api error %d: %s", e.Code, e.Message)
}

// Paging wraps the paging field in list responses.
type Paging struct {
	Cursors *struct {
		Before string `json:"before"`
		After  string `json:"after"`
	} `json:"cursors,omitempty"`
	Next     string `json:"next,omitempty"`
	Previous string `json:"previous,omitempty"`
}

// Account represents a Meta Ad Account.
type Account struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Currency     string `json:"currency"`
	Status       int    `json:"account_status"`
	TimezoneName string `json:"timezone_name"`
	AmountSpent  string `json:"amount_spent,omitempty"`
	Balance      string `json:"balance,omitempty"`
}

// Campaign represents a Meta campaign.
type Campaign struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Status          string `json:"status"`
	EffectiveStatus string `json:"effective_status,omitempty"`
	Objective       string `json:"objective"`
	BuyingType      string `json:"buying_type,omitempty"`
	DailyBudget     string `json:"daily_budget,omitempty"`
	LifetimeBudget  string `json:"lifetime_budget,omitempty"`
	BudgetRemaining string `json:"budget_remaining,omitempty"`
	BidStrategy     string `json:"bid_strategy,omitempty"`
	StartTime       string `json:"start_time,omitempty"`
	StopTime        string `json:"stop_time,omitempty"`
	CreatedTime     string `json:"created_time,omitempty"`
	UpdatedTime     string `json:"updated_time,omitempty"`
}

// AdSet represents a Meta ad set.
type AdSet struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Status           string `json:"status"`
	EffectiveStatus  string `json:"effective_status,omitempty"`
	CampaignID       string `json:"campaign_id"`
	DailyBudget      string `json:"daily_budget,omitempty"`
	LifetimeBudget   string `json:"lifetime_budget,omitempty"`
	BudgetRemaining  string `json:"budget_remaining,omitempty"`
	BidAmount        string `json:"bid_amount,omitempty"`
	BillingEvent     string `json:"billing_event,omitempty"`
	OptimizationGoal string `json:"optimization_goal,omitempty"`
	StartTime        string `json:"start_time,omitempty"`
	EndTime          string `json:"end_time,omitempty"`
	CreatedTime      string `json:"created_time,omitempty"`
	UpdatedTime      string `json:"updated_time,omitempty"`
}

// Ad represents a Meta ad.
type Ad struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Status          string          `json:"status"`
	EffectiveStatus string          `json:"effective_status,omitempty"`
	AdSetID         string          `json:"adset_id"`
	CampaignID      string          `json:"campaign_id"`
	Creative        json.RawMessage `json:"creative,omitempty"`
	CreatedTime     string          `json:"created_time,omitempty"`
	UpdatedTime     string          `json:"updated_time,omitempty"`
}

// User is returned by GET /me.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// errorEnvelope is the JSON body Meta returns on any non-2xx response.
type errorEnvelope struct {
	Error *MetaError `json:"error"`
}

// listEnvelope is the shape of every Graph API list endpoint.
type listEnvelope struct {
	Data   []json.RawMessage `json:"data"`
	Paging *Paging           `json:"paging,omitempty"`
}

// createResponse is returned by all object-creation endpoints.
type createResponse struct {
	ID string `json:"id"`
}

// imageUploadResponse is returned by POST act_<id>/adimages. The images map
// is keyed by the uploaded filename.
type imageUploadResponse struct {
	Images map[string]struct {
		Hash string `json:"hash"`
		URL  string `json:"url,omitempty"`
	} `json:"images"`
}
