// Package spec holds the declarative campaign-spec document model, its
// validation, and image-asset resolution. Everything here is pure and
// network-free: a document that survives this package is safe to hand to
// the apply engine.
package spec

import (
	"encoding/json"
	"fmt"
	"os"
)

// CampaignSpec is the root of a campaign-spec document.
type CampaignSpec struct {
	Meta     Meta           `json:"meta"`
	Campaign CampaignFields `json:"campaign"`
	AdGroups []AdGroupSpec  `json:"adGroups"`
	Ads      []AdSpec       `json:"ads"`
}

// Meta names the ad account, the environment variable carrying the access
// token, and optionally the Graph API version to use.
type Meta struct {
	AccountID          string `json:"accountId"`
	SystemUserTokenEnv string `json:"systemUserTokenEnv"`
	APIVersion         string `json:"apiVersion,omitempty"`
}

// CampaignFields describes the single campaign to create.
type CampaignFields struct {
	Name                string   `json:"name"`
	Objective           string   `json:"objective"`
	Budget              *Budget  `json:"budget,omitempty"`
	BuyingType          string   `json:"buyingType,omitempty"`
	SpecialAdCategories []string `json:"specialAdCategories,omitempty"`
}

// Budget carries exactly one of a daily or lifetime amount, in minor
// currency units. The daily/lifetime exclusivity is enforced by the schema.
type Budget struct {
	DailyBudget    int64 `json:"dailyBudget,omitempty"`
	LifetimeBudget int64 `json:"lifetimeBudget,omitempty"`
}

// AdGroupSpec describes one ad group (an ad set on the remote platform).
// Ref is a spec-local identifier: it exists so an AdSpec can point at an
// ad group before any remote id exists, and never leaves this tool.
type AdGroupSpec struct {
	Ref              string          `json:"ref"`
	Name             string          `json:"name"`
	OptimizationGoal string          `json:"optimizationGoal"`
	BillingEvent     string          `json:"billingEvent"`
	Targeting        json.RawMessage `json:"targeting"`
	Budget           *Budget         `json:"budget,omitempty"`
	BidAmount        int64           `json:"bidAmount,omitempty"`
	StartTime        string          `json:"startTime,omitempty"`
	EndTime          string          `json:"endTime,omitempty"`
}

// AdSpec describes one ad and the creative it should carry.
type AdSpec struct {
	Name       string       `json:"name"`
	AdGroupRef string       `json:"adGroupRef"`
	Creative   CreativeSpec `json:"creative"`
}

// CreativeSpec describes a link-ad creative referencing a local image file.
type CreativeSpec struct {
	ImagePath        string `json:"imagePath"`
	PageID           string `json:"pageId"`
	LinkURL          string `json:"linkUrl"`
	Message          string `json:"message"`
	Headline         string `json:"headline"`
	Description      string `json:"description,omitempty"`
	CallToActionType string `json:"callToActionType,omitempty"`
}

// Load reads and decodes a campaign-spec document. It returns the raw bytes
// alongside the decoded document so the schema validator can check the
// original input rather than the decoded form.
func Load(path string) (*CampaignSpec, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading spec file: %w", err)
	}
	var doc CampaignSpec
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("parsing spec file: %w", err)
	}
	return &doc, raw, nil
}
