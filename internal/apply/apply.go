// Package apply materializes a validated campaign spec against the Meta
// Marketing API: images, then the campaign, then ad sets, then creatives
// and ads, every one of them created PAUSED.
package apply

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/the20100/meta-ads-cli/internal/api"
	"github.com/the20100/meta-ads-cli/internal/spec"
)

// ResourceAPI is the slice of the remote platform the engine drives. It is
// satisfied by *api.Client and faked in tests.
type ResourceAPI interface {
	UploadImage(accountID, filename string, data []byte) (string, error)
	CreateCampaign(accountID string, p api.CampaignParams) (string, error)
	CreateAdSet(accountID string, p api.AdSetParams) (string, error)
	CreateAdCreative(accountID string, p api.CreativeParams) (string, error)
	CreateAd(accountID string, p api.AdParams) (string, error)
}

// MissingCredentialError reports an unset or empty token environment variable.
type MissingCredentialError struct {
	EnvVar string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("access token environment variable %s is not set", e.EnvVar)
}

// ResolveCredential reads the access token from the environment variable
// the spec names. An empty value is as fatal as an unset one; the engine
// never falls back to a placeholder token.
func ResolveCredential(envVar string) (string, error) {
	token := os.Getenv(envVar)
	if token == "" {
		return "", &MissingCredentialError{EnvVar: envVar}
	}
	return token, nil
}

// Result describes everything one apply run created, in spec input order.
type Result struct {
	CampaignID   string          `json:"campaignId"`
	CampaignName string          `json:"campaignName"`
	AdGroups     []AdGroupResult `json:"adGroups"`
	Ads          []AdResult      `json:"ads"`
	Images       []ImageResult   `json:"images"`
}

// AdGroupResult maps a spec-local ref to the remote ad set it became.
type AdGroupResult struct {
	Ref      string `json:"ref"`
	Name     string `json:"name"`
	RemoteID string `json:"remoteId"`
}

// AdResult records one created ad and its creative.
type AdResult struct {
	Name             string `json:"name"`
	AdGroupRef       string `json:"adGroupRef"`
	RemoteAdID       string `json:"remoteAdId"`
	RemoteCreativeID string `json:"remoteCreativeId"`
}

// ImageResult records one uploaded image.
type ImageResult struct {
	DeclaredPath string `json:"declaredPath"`
	ResolvedPath string `json:"resolvedPath"`
	RemoteHash   string `json:"remoteHash"`
}

// Empty reports whether the run created nothing remotely before failing.
func (r *Result) Empty() bool {
	return r.CampaignID == "" && len(r.AdGroups) == 0 && len(r.Ads) == 0 && len(r.Images) == 0
}

// Engine executes one apply run. The ref→id and path→hash tables are owned
// by the engine for the lifetime of the run, written once per key and read
// only afterwards. The dependency shape is fixed and shallow (images and
// ad sets feed ads), which is why two flat tables stand in for a graph.
type Engine struct {
	api       ResourceAPI
	accountID string
	log       *zap.Logger

	adSetIDs    map[string]string // ad group ref → remote ad set id
	imageHashes map[string]string // declared image path → remote hash
}

// NewEngine creates an engine bound to one ad account. A nil logger
// disables stage logging.
func NewEngine(client ResourceAPI, accountID string, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		api:         client,
		accountID:   accountID,
		log:         log,
		adSetIDs:    make(map[string]string),
		imageHashes: make(map[string]string),
	}
}

// Apply runs the full creation sequence: images, campaign, ad sets,
// creatives and ads, strictly in that order and in spec input order within
// each stage. On any remote failure it stops immediately and returns the
// error together with the partial Result of everything already created;
// nothing is rolled back.
func (e *Engine) Apply(doc *spec.CampaignSpec, images []spec.ResolvedImage) (*Result, error) {
	res := &Result{CampaignName: doc.Campaign.Name}

	if err := e.uploadImages(images, res); err != nil {
		return res, err
	}
	if err := e.createCampaign(doc, res); err != nil {
		return res, err
	}
	if err := e.createAdSets(doc, res); err != nil {
		return res, err
	}
	if err := e.createAds(doc, res); err != nil {
		return res, err
	}

	e.log.Info("apply complete",
		zap.String("campaign_id", res.CampaignID),
		zap.Int("ad_groups", len(res.AdGroups)),
		zap.Int("ads", len(res.Ads)),
		zap.Int("images", len(res.Images)))
	return res, nil
}

// uploadImages pushes each distinct image to the account's asset library.
// The images slice is already deduplicated by declared path, so every
// upload happens exactly once regardless of how many ads share the file.
func (e *Engine) uploadImages(images []spec.ResolvedImage, res *Result) error {
	for _, img := range images {
		data, err := os.ReadFile(img.ResolvedPath)
		if err != nil {
			return fmt.Errorf("reading image %s: %w", img.ImagePath, err)
		}
		hash, err := e.api.UploadImage(e.accountID, filepath.Base(img.ResolvedPath), data)
		if err != nil {
			return fmt.Errorf("uploading image %s: %w", img.ImagePath, err)
		}
		e.imageHashes[img.ImagePath] = hash
		res.Images = append(res.Images, ImageResult{
			DeclaredPath: img.ImagePath,
			ResolvedPath: img.ResolvedPath,
			RemoteHash:   hash,
		})
		e.log.Info("uploaded image", zap.String("path", img.ImagePath), zap.String("hash", hash))
	}
	return nil
}

func (e *Engine) createCampaign(doc *spec.CampaignSpec, res *Result) error {
	p := api.CampaignParams{
		Name:                doc.Campaign.Name,
		Objective:           doc.Campaign.Objective,
		BuyingType:          doc.Campaign.BuyingType,
		SpecialAdCategories: doc.Campaign.SpecialAdCategories,
	}
	if b := doc.Campaign.Budget; b != nil {
		p.DailyBudget = b.DailyBudget
		p.LifetimeBudget = b.LifetimeBudget
	}
	id, err := e.api.CreateCampaign(e.accountID, p)
	if err != nil {
		return fmt.Errorf("creating campaign %q: %w", doc.Campaign.Name, err)
	}
	res.CampaignID = id
	e.log.Info("created campaign", zap.String("name", doc.Campaign.Name), zap.String("id", id))
	return nil
}

func (e *Engine) createAdSets(doc *spec.CampaignSpec, res *Result) error {
	for _, g := range doc.AdGroups {
		p := api.AdSetParams{
			Name:             g.Name,
			CampaignID:       res.CampaignID,
			OptimizationGoal: g.OptimizationGoal,
			BillingEvent:     g.BillingEvent,
			Targeting:        g.Targeting,
			BidAmount:        g.BidAmount,
			StartTime:        g.StartTime,
			EndTime:          g.EndTime,
		}
		if g.Budget != nil {
			p.DailyBudget = g.Budget.DailyBudget
			p.LifetimeBudget = g.Budget.LifetimeBudget
		}
		id, err := e.api.CreateAdSet(e.accountID, p)
		if err != nil {
			return fmt.Errorf("creating ad group %q: %w", g.Ref, err)
		}
		e.adSetIDs[g.Ref] = id
		res.AdGroups = append(res.AdGroups, AdGroupResult{Ref: g.Ref, Name: g.Name, RemoteID: id})
		e.log.Info("created ad set", zap.String("ref", g.Ref), zap.String("id", id))
	}
	return nil
}

func (e *Engine) createAds(doc *spec.CampaignSpec, res *Result) error {
	for _, ad := range doc.Ads {
		// The validator guarantees both lookups; a miss here is a defect
		// in this engine, not in the spec document.
		adSetID, ok := e.adSetIDs[ad.AdGroupRef]
		if !ok {
			return fmt.Errorf("internal: ad %q references ad group %q with no recorded remote id", ad.Name, ad.AdGroupRef)
		}
		hash, ok := e.imageHashes[ad.Creative.ImagePath]
		if !ok {
			return fmt.Errorf("internal: ad %q references image %q with no recorded hash", ad.Name, ad.Creative.ImagePath)
		}

		creativeID, err := e.api.CreateAdCreative(e.accountID, api.CreativeParams{
			Name:             ad.Name + " creative",
			PageID:           ad.Creative.PageID,
			ImageHash:        hash,
			LinkURL:          ad.Creative.LinkURL,
			Message:          ad.Creative.Message,
			Headline:         ad.Creative.Headline,
			Description:      ad.Creative.Description,
			CallToActionType: ad.Creative.CallToActionType,
		})
		if err != nil {
			return fmt.Errorf("creating creative for ad %q: %w", ad.Name, err)
		}

		adID, err := e.api.CreateAd(e.accountID, api.AdParams{
			Name:       ad.Name,
			AdSetID:    adSetID,
			CreativeID: creativeID,
		})
		if err != nil {
			return fmt.Errorf("creating ad %q: %w", ad.Name, err)
		}
		res.Ads = append(res.Ads, AdResult{
			Name:             ad.Name,
			AdGroupRef:       ad.AdGroupRef,
			RemoteAdID:       adID,
			RemoteCreativeID: creativeID,
		})
		e.log.Info("created ad", zap.String("name", ad.Name), zap.String("id", adID))
	}
	return nil
}

// Summary is what a dry run reports: validated counts, no remote state.
type Summary struct {
	CampaignName string `json:"campaignName"`
	Objective    string `json:"objective"`
	AdGroupCount int    `json:"adGroupCount"`
	AdCount      int    `json:"adCount"`
	ImageCount   int    `json:"imageCount"`
}

// Summarize computes the dry-run summary. It touches neither credentials
// nor the network.
func Summarize(doc *spec.CampaignSpec, images []spec.ResolvedImage) *Summary {
	return &Summary{
		CampaignName: doc.Campaign.Name,
		Objective:    doc.Campaign.Objective,
		AdGroupCount: len(doc.AdGroups),
		AdCount:      len(doc.Ads),
		ImageCount:   len(images),
	}
}
