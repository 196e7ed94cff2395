package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dadmoscow/xrandrctl/internal/randr"
)

// stubService serves canned snapshots and records applies.
type stubService struct {
	snap     *randr.Snapshot
	snapErr  error
	applyErr error
	applied  [][]randr.Change
}

func (s *stubService) Snapshot(context.Context) (*randr.Snapshot, error) {
	return s.snap, s.snapErr
}

func (s *stubService) Apply(_ context.Context, _ *randr.Snapshot, changes ...randr.Change) error {
	s.applied = append(s.applied, changes)
	for _, ch := range changes {
		if err := ch.Validate(s.snap); err != nil {
			return err
		}
	}
	return s.applyErr
}

func stubSnapshot() *randr.Snapshot {
	res := randr.Resolution{Width: 1920, Height: 1080}
	return &randr.Snapshot{
		Taken: time.Now(),
		Displays: []randr.Display{
			{
				Name:       "HDMI-1",
				Connected:  true,
				Enabled:    true,
				Primary:    true,
				Rotation:   randr.RotationNormal,
				Resolution: &res,
				Modes: []randr.Mode{
					{Width: 1920, Height: 1080, Refresh: 60.0, Current: true, Preferred: true},
				},
			},
			{
				Name:     "DP-1",
				Rotation: randr.RotationNormal,
			},
		},
	}
}

func newTestServer(svc Service) *httptest.Server {
	watcher := NewWatcher(svc, time.Hour)
	return httptest.NewServer(NewServer(svc, watcher).Handler())
}

func TestGetDisplays(t *testing.T) {
	svc := &stubService{snap: stubSnapshot()}
	ts := newTestServer(svc)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/displays")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var snap randr.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatal(err)
	}
	if len(snap.Displays) != 2 {
		t.Errorf("got %d displays, want 2", len(snap.Displays))
	}
}

func TestGetDisplayNotFound(t *testing.T) {
	svc := &stubService{snap: stubSnapshot()}
	ts := newTestServer(svc)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/displays/VGA-7")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestApplyChangeValidationRejected(t *testing.T) {
	svc := &stubService{snap: stubSnapshot()}
	ts := newTestServer(svc)
	defer ts.Close()

	body := strings.NewReader(`{"mode": "1600x1200"}`)
	resp, err := http.Post(ts.URL+"/api/displays/HDMI-1", "application/json", body)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
}

func TestApplyChangeSuccess(t *testing.T) {
	svc := &stubService{snap: stubSnapshot()}
	ts := newTestServer(svc)
	defer ts.Close()

	body := strings.NewReader(`{"mode": "1920x1080", "rotation": "left", "primary": true}`)
	resp, err := http.Post(ts.URL+"/api/displays/HDMI-1", "application/json", body)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if len(svc.applied) != 1 || len(svc.applied[0]) != 1 {
		t.Fatalf("applied = %v, want one call with one change", svc.applied)
	}

	change := svc.applied[0][0]
	if change.Output != "HDMI-1" || !change.Primary || change.Rotation == nil || *change.Rotation != randr.RotationLeft {
		t.Errorf("unexpected change: %+v", change)
	}
}

func TestApplyChangeBadGateway(t *testing.T) {
	svc := &stubService{
		snap: stubSnapshot(),
		applyErr: &randr.ApplyError{
			Args:     []string{"--output", "HDMI-1", "--mode", "1920x1080"},
			ExitCode: 1,
			Stderr:   "xrandr: cannot find mode",
		},
	}
	ts := newTestServer(svc)
	defer ts.Close()

	body := strings.NewReader(`{"mode": "1920x1080"}`)
	resp, err := http.Post(ts.URL+"/api/displays/HDMI-1", "application/json", body)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", resp.StatusCode)
	}

	var payload struct {
		Error    string `json:"error"`
		ExitCode int    `json:"exit_code"`
		Stderr   string `json:"stderr"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatal(err)
	}
	if payload.ExitCode != 1 {
		t.Errorf("exit_code = %d, want 1", payload.ExitCode)
	}
	if !strings.Contains(payload.Stderr, "cannot find mode") {
		t.Errorf("stderr = %q", payload.Stderr)
	}
}

func TestApplyChangeEmptyBodyRejected(t *testing.T) {
	svc := &stubService{snap: stubSnapshot()}
	ts := newTestServer(svc)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/displays/HDMI-1", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(&stubService{snap: stubSnapshot()})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestChangeRequestToChange(t *testing.T) {
	tests := []struct {
		name    string
		req     ChangeRequest
		check   func(randr.Change) bool
		wantErr bool
	}{
		{
			name:  "off wins over everything",
			req:   ChangeRequest{Off: true, Mode: "1920x1080", Primary: true},
			check: func(c randr.Change) bool { return c.Off && c.Resolution == nil && !c.Primary },
		},
		{
			name: "full request",
			req:  ChangeRequest{Mode: "1920x1080", Rotation: "left", Relation: "rightof", RelativeTo: "DP-1", Primary: true},
			check: func(c randr.Change) bool {
				return c.Resolution != nil && c.Resolution.Width == 1920 &&
					c.Rotation != nil && *c.Rotation == randr.RotationLeft &&
					c.Position != nil && c.Position.Relation == randr.RelationRightOf &&
					c.Position.RelativeTo == "DP-1" && c.Primary
			},
		},
		{
			name:    "bad mode",
			req:     ChangeRequest{Mode: "huge"},
			wantErr: true,
		},
		{
			name:    "bad relation",
			req:     ChangeRequest{Relation: "diagonal", RelativeTo: "DP-1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			change, err := tt.req.ToChange("HDMI-1")
			if tt.wantErr {
				if err == nil {
					t.Fatal("ToChange() should fail")
				}
				return
			}
			if err != nil {
				t.Fatalf("ToChange(): %v", err)
			}
			if !tt.check(change) {
				t.Errorf("unexpected change: %+v", change)
			}
		})
	}
}
