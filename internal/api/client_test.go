package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(srv *httptest.Server) *Client {
	return &Client{http: srv.Client(), baseURL: srv.URL, apiVersion: DefaultAPIVersion}
}

func TestCreateCampaignSetsPausedStatus(t *testing.T) {
	var form map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		assert.Equal(t, "/act_1234567890/campaigns", r.URL.Path)
		fmt.Fprint(w, `{"id":"120210000000001"}`)
	}))
	defer srv.Close()

	id, err := testClient(srv).CreateCampaign("1234567890", CampaignParams{
		Name:        "Summer Launch",
		Objective:   "OUTCOME_TRAFFIC",
		DailyBudget: 5000,
	})
	require.NoError(t, err)
	require.Equal(t, "120210000000001", id)

	assert.Equal(t, "PAUSED", form["status"][0])
	assert.Equal(t, "5000", form["daily_budget"][0])
	assert.Equal(t, `["NONE"]`, form["special_ad_categories"][0])
}

func TestCreateAdSetSetsPausedAndTargeting(t *testing.T) {
	var form map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		fmt.Fprint(w, `{"id":"120210000000002"}`)
	}))
	defer srv.Close()

	targeting := json.RawMessage(`{"geo_locations":{"countries":["US"]}}`)
	id, err := testClient(srv).CreateAdSet("1234567890", AdSetParams{
		Name:             "Prospecting",
		CampaignID:       "120210000000001",
		OptimizationGoal: "LINK_CLICKS",
		BillingEvent:     "IMPRESSIONS",
		Targeting:        targeting,
		BidAmount:        200,
	})
	require.NoError(t, err)
	require.Equal(t, "120210000000002", id)

	assert.Equal(t, "PAUSED", form["status"][0])
	assert.Equal(t, string(targeting), form["targeting"][0])
	assert.Equal(t, "200", form["bid_amount"][0])
	assert.Equal(t, "120210000000001", form["campaign_id"][0])
}

func TestCreateAdSetsPausedStatus(t *testing.T) {
	var form map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		fmt.Fprint(w, `{"id":"120210000000004"}`)
	}))
	defer srv.Close()

	_, err := testClient(srv).CreateAd("1234567890", AdParams{
		Name:       "Banner Ad",
		AdSetID:    "120210000000002",
		CreativeID: "120210000000003",
	})
	require.NoError(t, err)

	assert.Equal(t, "PAUSED", form["status"][0])
	assert.JSONEq(t, `{"creative_id":"120210000000003"}`, form["creative"][0])
}

func TestUploadImageParsesHash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1 << 20))
		_, header, err := r.FormFile("filename")
		require.NoError(t, err)
		fmt.Fprintf(w, `{"images":{"%s":{"hash":"abc123"}}}`, header.Filename)
	}))
	defer srv.Close()

	hash, err := testClient(srv).UploadImage("1234567890", "banner.png", []byte("png"))
	require.NoError(t, err)
	require.Equal(t, "abc123", hash)
}

func TestErrorEnvelopeDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"Invalid parameter","type":"OAuthException","code":100,"error_subcode":1487888,"fbtrace_id":"AaBb"}}`)
	}))
	defer srv.Close()

	_, err := testClient(srv).CreateCampaign("1234567890", CampaignParams{Name: "x", Objective: "OUTCOME_TRAFFIC"})
	var me *MetaError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, 100, me.Code)
	assert.Equal(t, 1487888, me.Subcode)
	assert.Contains(t, me.Error(), "Invalid parameter")
	assert.Contains(t, me.Error(), "subcode 1487888")
}

func TestErrorEnvelopeFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "upstream exploded")
	}))
	defer srv.Close()

	_, err := testClient(srv).Me()
	var me *MetaError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, http.StatusBadGateway, me.Code)
	assert.Contains(t, me.Message, "upstream exploded")
}

func TestGetListFollowsPaging(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("after") == "" {
			fmt.Fprintf(w, `{"data":[{"id":"1"},{"id":"2"}],"paging":{"next":"%s/page?after=c2"}}`, srv.URL)
			return
		}
		fmt.Fprint(w, `{"data":[{"id":"3"}],"paging":{}}`)
	}))
	defer srv.Close()

	rows, err := testClient(srv).getList("page", nil)
	require.NoError(t, err)
	require.Len(t, rows, 3)
}

func TestMinorUnitsToCurrency(t *testing.T) {
	assert.Equal(t, "50.00", MinorUnitsToCurrency("5000"))
	assert.Equal(t, "0.05", MinorUnitsToCurrency("5"))
	assert.Equal(t, "-", MinorUnitsToCurrency(""))
	assert.Equal(t, "oops", MinorUnitsToCurrency("oops"))
}

func TestActPath(t *testing.T) {
	assert.Equal(t, "act_123", actPath("123"))
	assert.Equal(t, "act_123", actPath("act_123"))
	assert.Equal(t, "123", CleanAccountID("act_123"))
}
