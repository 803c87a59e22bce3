package usecase

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"StayPulse/internal/domain/models"
	"StayPulse/pkg/logger"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.UpdateEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev models.UpdateEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type recordingBroadcaster struct {
	mu        sync.Mutex
	snapshots []*models.Snapshot
}

func (b *recordingBroadcaster) Broadcast(s *models.Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snapshots = append(b.snapshots, s)
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func testDashboard(t *testing.T) (*Dashboard, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	d := NewDashboard(
		NewListingTable(sampleListings()),
		NewAggregator(0.65),
		NewChartBuilder(testColors(), 30, 13),
		pub,
		nil,
		testLogger(t),
	)
	return d, pub
}

func TestApplyUnfiltered(t *testing.T) {
	d, pub := testDashboard(t)

	snap, err := d.Apply(context.Background(), "")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if snap.Filter != "" {
		t.Errorf("snapshot filter: got %q, want empty", snap.Filter)
	}
	if snap.NumListings != "5" {
		t.Errorf("NumListings: got %q, want 5", snap.NumListings)
	}
	if snap.PercListings != "(100%)" {
		t.Errorf("PercListings: got %q, want (100%%)", snap.PercListings)
	}
	if d.Filter() != "" {
		t.Errorf("state filter: got %q, want empty", d.Filter())
	}
	if d.Current() != snap {
		t.Error("Current should return the applied snapshot")
	}
	if len(pub.events) != 1 || pub.events[0].Count != 5 || pub.events[0].Filter != "" {
		t.Errorf("published events: %+v", pub.events)
	}
}

func TestApplyFilteredFormatsStatistics(t *testing.T) {
	d, _ := testDashboard(t)

	snap, err := d.Apply(context.Background(), "San Marco")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	// mean of (2*1.5, 3*0.8) = 2.7 nights/month, *12/0.35 = 92.57 nights
	if snap.EstNightsYear != "93" {
		t.Errorf("EstNightsYear: got %q, want 93", snap.EstNightsYear)
	}
	if snap.EstOccupancy != "25%" {
		t.Errorf("EstOccupancy: got %q, want 25%%", snap.EstOccupancy)
	}
	if snap.PricePerNight != "$92.50" {
		t.Errorf("PricePerNight: got %q, want $92.50", snap.PricePerNight)
	}
	if snap.NumListings != "2" {
		t.Errorf("NumListings: got %q, want 2", snap.NumListings)
	}
	if snap.PercListings != "(40%)" {
		t.Errorf("PercListings: got %q, want (40%%)", snap.PercListings)
	}
	if snap.EntireHomePercent != "50%" {
		t.Errorf("EntireHomePercent: got %q, want 50%%", snap.EntireHomePercent)
	}
	if snap.TotalReviews != "105" {
		t.Errorf("TotalReviews: got %q, want 105", snap.TotalReviews)
	}
}

func TestApplyEmptyStatsRenderNotAvailable(t *testing.T) {
	pub := &recordingPublisher{}
	d := NewDashboard(
		NewListingTable([]models.Listing{
			{ID: 1, Neighbourhood: "Castello", RoomType: models.RoomEntireHome, Price: "no price"},
		}),
		NewAggregator(0.65),
		NewChartBuilder(testColors(), 30, 13),
		pub,
		nil,
		testLogger(t),
	)

	snap, err := d.Apply(context.Background(), "Castello")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	for name, got := range map[string]string{
		"EstNightsYear":  snap.EstNightsYear,
		"EstOccupancy":   snap.EstOccupancy,
		"EstIncomeMonth": snap.EstIncomeMonth,
		"PricePerNight":  snap.PricePerNight,
	} {
		if got != "n/a" {
			t.Errorf("%s: got %q, want n/a", name, got)
		}
	}
}

func TestApplyUnknownNeighbourhood(t *testing.T) {
	d, pub := testDashboard(t)
	if _, err := d.Apply(context.Background(), ""); err != nil {
		t.Fatalf("apply: %v", err)
	}
	before := d.Current()

	_, err := d.Apply(context.Background(), "Atlantis")
	if !errors.Is(err, ErrUnknownNeighbourhood) {
		t.Fatalf("error: got %v, want ErrUnknownNeighbourhood", err)
	}
	if d.Current() != before {
		t.Error("failed apply must not replace the published snapshot")
	}
	if d.Filter() != "" {
		t.Errorf("failed apply must not transition state, filter is %q", d.Filter())
	}
	if len(pub.events) != 1 {
		t.Errorf("failed apply must not publish, got %d events", len(pub.events))
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	d, _ := testDashboard(t)

	first, err := d.Apply(context.Background(), "Cannaregio")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	second, err := d.Apply(context.Background(), "Cannaregio")
	if err != nil {
		t.Fatalf("re-apply: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-applied snapshot differs:\n%+v\n%+v", first, second)
	}
}

func TestViewportStickyAcrossApplies(t *testing.T) {
	d, _ := testDashboard(t)

	first, err := d.Apply(context.Background(), "")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	seeded := first.Map.Viewport

	second, err := d.Apply(context.Background(), "Dorsoduro")
	if err != nil {
		t.Fatalf("filtered apply: %v", err)
	}
	if second.Map.Viewport != seeded {
		t.Errorf("camera moved on filter change: got %+v, want %+v", second.Map.Viewport, seeded)
	}

	moved := models.Viewport{Zoom: 15, CenterLat: 45.43, CenterLon: 12.33}
	d.SetViewport(moved)
	third, err := d.Apply(context.Background(), "San Marco")
	if err != nil {
		t.Fatalf("apply after pan: %v", err)
	}
	vp := third.Map.Viewport
	if !almostEqual(vp.Zoom, 15) || !almostEqual(vp.CenterLat, 45.43) || !almostEqual(vp.CenterLon, 12.33) {
		t.Errorf("client camera not carried over: %+v", vp)
	}
	if !vp.Sticky {
		t.Error("client camera should be sticky")
	}
}

func TestApplyBroadcastsSnapshot(t *testing.T) {
	d, _ := testDashboard(t)
	bcast := &recordingBroadcaster{}
	d.SetBroadcaster(bcast)

	snap, err := d.Apply(context.Background(), "San Marco")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(bcast.snapshots) != 1 || bcast.snapshots[0] != snap {
		t.Errorf("broadcast snapshots: %v", bcast.snapshots)
	}
}

func TestApplySurvivesPublishFailure(t *testing.T) {
	d, pub := testDashboard(t)
	pub.err = errors.New("broker down")

	snap, err := d.Apply(context.Background(), "San Marco")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if snap == nil || d.Filter() != "San Marco" {
		t.Error("publish failure must not abort the state transition")
	}
}

func TestComputeDoesNotTransitionState(t *testing.T) {
	d, pub := testDashboard(t)
	if _, err := d.Apply(context.Background(), ""); err != nil {
		t.Fatalf("apply: %v", err)
	}

	snap, err := d.Compute("Dorsoduro")
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if snap.Filter != "Dorsoduro" {
		t.Errorf("computed filter: got %q", snap.Filter)
	}
	if d.Filter() != "" {
		t.Errorf("compute transitioned state to %q", d.Filter())
	}
	if len(pub.events) != 1 {
		t.Errorf("compute must not publish, got %d events", len(pub.events))
	}
}

func TestNeighbourhoodOptions(t *testing.T) {
	d, _ := testDashboard(t)

	opts := d.Neighbourhoods()
	if opts.TotalListings != 5 {
		t.Errorf("TotalListings: got %d, want 5", opts.TotalListings)
	}
	if len(opts.Neighbourhoods) != 3 {
		t.Errorf("Neighbourhoods: got %v", opts.Neighbourhoods)
	}
}
