package apply

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *Result {
	return &Result{
		CampaignID:   "120210000000001",
		CampaignName: "Summer Launch",
		AdGroups: []AdGroupResult{
			{Ref: "ag1", Name: "Prospecting", RemoteID: "120210000000002"},
		},
		Ads: []AdResult{
			{Name: "Banner Ad", AdGroupRef: "ag1", RemoteAdID: "120210000000004", RemoteCreativeID: "120210000000003"},
		},
		Images: []ImageResult{
			{DeclaredPath: "assets/banner.png", ResolvedPath: "/tmp/assets/banner.png", RemoteHash: "abc123"},
		},
	}
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	sampleResult().WriteReport(&buf)

	out := buf.String()
	assert.Contains(t, out, "Summer Launch")
	assert.Contains(t, out, "120210000000001")
	assert.Contains(t, out, "ag1")
	assert.Contains(t, out, "abc123")
	assert.Contains(t, out, "Banner Ad")
}

func TestWritePartialReport(t *testing.T) {
	res := sampleResult()
	res.Ads = nil

	var buf bytes.Buffer
	res.WritePartialReport(&buf)

	out := buf.String()
	assert.Contains(t, out, "NOT cleaned up")
	assert.Contains(t, out, "campaign 120210000000001")
	assert.Contains(t, out, "1 ad group(s)")
	assert.NotContains(t, out, "ad(s)")
}

func TestSummaryWriteReport(t *testing.T) {
	var buf bytes.Buffer
	sum := &Summary{CampaignName: "Summer Launch", Objective: "OUTCOME_TRAFFIC", AdGroupCount: 2, AdCount: 3, ImageCount: 1}
	sum.WriteReport(&buf)

	out := buf.String()
	assert.Contains(t, out, "Dry run")
	assert.Contains(t, out, "Summer Launch")
	assert.Contains(t, out, "2")
	assert.Contains(t, out, "3")
}

func TestSaveResultOverwrites(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "campaign.json")
	require.NoError(t, os.WriteFile(specPath, []byte("{}"), 0644))

	stale := filepath.Join(dir, ResultsFileName)
	require.NoError(t, os.WriteFile(stale, []byte(`{"campaignId":"old"}`), 0644))

	path, err := SaveResult(sampleResult(), specPath)
	require.NoError(t, err)
	require.Equal(t, stale, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Result
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, "120210000000001", got.CampaignID)
	require.Len(t, got.AdGroups, 1)
}
