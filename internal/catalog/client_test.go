package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func testServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, zerolog.Nop())
}

func TestResolveCloudIDs(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/practice/ids-by-monolith-ids~batchGet" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req struct {
			MonolithPracticeIDs []string `json:"monolith_practice_ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.MonolithPracticeIDs) != 3 {
			t.Errorf("expected 3 ids in request, got %v", req.MonolithPracticeIDs)
		}
		// Monolith IDs come back as numbers, cloud IDs as strings. One
		// requested ID is unknown and absent from the response.
		w.Write([]byte(`{"practice_ids":[
			{"monolith_practice_id":900,"practice_id":"pc-900"},
			{"monolith_practice_id":901,"practice_id":"pc-901"}
		]}`))
	})

	got, err := c.ResolveCloudIDs(context.Background(), []string{"900", "901", "902"})
	if err != nil {
		t.Fatalf("ResolveCloudIDs: %v", err)
	}
	if len(got) != 2 || got["900"] != "pc-900" || got["901"] != "pc-901" {
		t.Errorf("unexpected mapping: %v", got)
	}
	if _, ok := got["902"]; ok {
		t.Error("unresolved id must be absent, not empty")
	}
}

func TestLocations(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/practice/location~batchGet" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"practice_locations":[
			{"is_virtual":false,"address_1":"165 Broadway","city":"New York",
			 "state":"NY","zip":10006,"monolith_location_id":10,
			 "location_id":"c-10","practice_id":"pc-900"},
			{"is_virtual":true,"address_1":"--","state":"NY","zip":null,
			 "location_id":"v-ny","practice_id":"pc-900"}
		]}`))
	})

	locs, err := c.Locations(context.Background(), "pc-900")
	if err != nil {
		t.Fatalf("Locations: %v", err)
	}
	if len(locs) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(locs))
	}
	if locs[0].Zip != "10006" || locs[0].MonolithLocationID != "10" {
		t.Errorf("numeric fields must decode as strings: %+v", locs[0])
	}
	if locs[0].IsVirtual == nil || *locs[0].IsVirtual {
		t.Errorf("is_virtual false not decoded: %+v", locs[0])
	}
	if locs[1].Zip != "" || locs[1].MonolithLocationID != "" {
		t.Errorf("null and absent fields must decode empty: %+v", locs[1])
	}
	if locs[1].IsVirtual == nil || !*locs[1].IsVirtual {
		t.Errorf("is_virtual true not decoded: %+v", locs[1])
	}
}

func TestClient_ErrorStatus(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "practice not found", http.StatusBadGateway)
	})
	if _, err := c.Locations(context.Background(), "pc-900"); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}
