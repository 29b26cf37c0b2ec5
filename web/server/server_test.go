package server

import (
	"bufio"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// sseEvent is one parsed Server-Sent Event
type sseEvent struct {
	Type string
	Data string
}

func readSSEEvents(t *testing.T, resp *http.Response) []sseEvent {
	t.Helper()
	var events []sseEvent
	var current sseEvent
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			current.Type = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			current.Data = strings.TrimPrefix(line, "data: ")
		case line == "" && current.Type != "":
			events = append(events, current)
			current = sseEvent{}
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("Error reading event stream: %v", err)
	}
	return events
}

func TestHandleHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	NewServer(0).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body)
	}
}

func TestHandleScenes(t *testing.T) {
	rec := httptest.NewRecorder()
	NewServer(0).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scenes", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body struct {
		Groups []struct {
			Name   string `json:"name"`
			Scenes []struct {
				ID string `json:"id"`
			} `json:"scenes"`
		} `json:"groups"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(body.Groups) == 0 || body.Groups[0].Name != "Built-in Scenes" {
		t.Fatalf("Expected built-in scenes first, got %+v", body.Groups)
	}

	ids := make(map[string]bool)
	for _, s := range body.Groups[0].Scenes {
		ids[s.ID] = true
	}
	for _, want := range []string{"default", "table", "glass", "cylinders", "cones", "hexagon"} {
		if !ids[want] {
			t.Errorf("Expected built-in scene %q", want)
		}
	}
}

func TestParseRenderRequest(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected RenderRequest
		wantErr  bool
	}{
		{"defaults", "", RenderRequest{Scene: "default", MaxDepth: 5}, false},
		{"all params", "scene=table&width=64&height=48&maxDepth=3&workers=2", RenderRequest{Scene: "table", Width: 64, Height: 48, MaxDepth: 3, Workers: 2}, false},
		{"zero depth", "maxDepth=0", RenderRequest{Scene: "default", MaxDepth: 0}, false},
		{"width too large", "width=5000", RenderRequest{}, true},
		{"width not a number", "width=abc", RenderRequest{}, true},
		{"negative depth", "maxDepth=-1", RenderRequest{}, true},
		{"too many workers", "workers=1000", RenderRequest{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/render?"+tt.query, nil)
			req, err := parseRenderRequest(r)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q", tt.query)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if *req != tt.expected {
				t.Errorf("Expected %+v, got %+v", tt.expected, *req)
			}
		})
	}
}

func TestHandleRender_StreamsTilesAndResult(t *testing.T) {
	ts := httptest.NewServer(NewServer(0).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/render?scene=default&width=40&height=36&workers=2")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Expected text/event-stream, got %q", ct)
	}

	events := readSSEEvents(t, resp)
	var tiles []TileUpdate
	var complete *CompleteUpdate
	for _, e := range events {
		switch e.Type {
		case EventTile:
			var tile TileUpdate
			if err := json.Unmarshal([]byte(e.Data), &tile); err != nil {
				t.Fatalf("Invalid tile event: %v", err)
			}
			tiles = append(tiles, tile)
		case EventComplete:
			complete = &CompleteUpdate{}
			if err := json.Unmarshal([]byte(e.Data), complete); err != nil {
				t.Fatalf("Invalid complete event: %v", err)
			}
		case EventError:
			t.Fatalf("Unexpected error event: %s", e.Data)
		}
	}

	if len(tiles) != 4 {
		t.Errorf("Expected 4 tile events, got %d", len(tiles))
	}
	for _, tile := range tiles {
		if tile.ImageData == "" || tile.TotalTiles != 4 {
			t.Errorf("Incomplete tile event: %+v", tile)
		}
	}
	if complete == nil {
		t.Fatal("Expected a complete event")
	}
	if complete.Stats.TotalPixels != 40*36 || complete.Stats.Workers != 2 {
		t.Errorf("Unexpected stats: %+v", complete.Stats)
	}
	if complete.ImageData == "" {
		t.Error("Expected final image data")
	}
	if last := events[len(events)-1]; last.Type != EventComplete {
		t.Errorf("Expected complete to be the last event, got %s", last.Type)
	}
}

func TestHandleRender_Errors(t *testing.T) {
	ts := httptest.NewServer(NewServer(0).Handler())
	defer ts.Close()

	tests := []struct {
		name     string
		query    string
		contains string
	}{
		{"invalid request", "width=0", "Invalid request"},
		{"unknown scene", "scene=nonexistent&width=8&height=8", "nonexistent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(ts.URL + "/api/render?" + tt.query)
			if err != nil {
				t.Fatalf("Request failed: %v", err)
			}
			defer resp.Body.Close()

			events := readSSEEvents(t, resp)
			if len(events) == 0 {
				t.Fatal("Expected events")
			}
			last := events[len(events)-1]
			if last.Type != EventError {
				t.Fatalf("Expected error event, got %s", last.Type)
			}
			var update ErrorUpdate
			if err := json.Unmarshal([]byte(last.Data), &update); err != nil {
				t.Fatalf("Invalid error event: %v", err)
			}
			if !strings.Contains(update.Message, tt.contains) {
				t.Errorf("Expected %q in %q", tt.contains, update.Message)
			}
		})
	}
}

func TestHandleInspect(t *testing.T) {
	handler := NewServer(0).Handler()

	inspect := func(query url.Values) (*httptest.ResponseRecorder, InspectResponse) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/inspect?"+query.Encode(), nil))
		var body InspectResponse
		if rec.Code == http.StatusOK {
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("Invalid JSON: %v", err)
			}
		}
		return rec, body
	}

	// Center pixel looks straight at the outer sphere
	rec, hit := inspect(url.Values{"scene": {"default"}, "width": {"11"}, "height": {"11"}, "x": {"5"}, "y": {"5"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !hit.Hit || hit.GeometryType != "sphere" {
		t.Fatalf("Expected sphere hit, got %+v", hit)
	}
	if expected := math.Sqrt(1.5*1.5+25) - 1; math.Abs(hit.Distance-expected) > 1e-4 {
		t.Errorf("Expected distance %f, got %f", expected, hit.Distance)
	}
	if hit.Material["diffuse"] != 0.7 || hit.Material["type"] != "matte" {
		t.Errorf("Unexpected material: %+v", hit.Material)
	}
	if hit.Inside || hit.Depth != 0 {
		t.Errorf("Expected outside hit on a top-level shape, got %+v", hit)
	}

	// Corner pixel misses both spheres
	_, miss := inspect(url.Values{"scene": {"default"}, "width": {"11"}, "height": {"11"}, "x": {"0"}, "y": {"0"}})
	if miss.Hit {
		t.Errorf("Expected miss at corner, got %+v", miss)
	}

	// Out of range pixel
	rec, _ = inspect(url.Values{"scene": {"default"}, "width": {"11"}, "height": {"11"}, "x": {"11"}, "y": {"0"}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for out of range pixel, got %d", rec.Code)
	}

	// Unknown scene
	rec, _ = inspect(url.Values{"scene": {"nonexistent"}, "x": {"0"}, "y": {"0"}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown scene, got %d", rec.Code)
	}
}

func TestHexColor(t *testing.T) {
	tests := []struct {
		r, g, b  float64
		expected string
	}{
		{1, 0, 0, "#ff0000"},
		{0.5, 0.5, 0.5, "#808080"},
		{2, -1, 0.2, "#ff0033"},
	}
	for _, tt := range tests {
		c := hexColor(core.NewColor(tt.r, tt.g, tt.b))
		if c != tt.expected {
			t.Errorf("hexColor(%v,%v,%v) = %s, want %s", tt.r, tt.g, tt.b, c, tt.expected)
		}
	}
}
