package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"StayPulse/internal/domain/models"
	"StayPulse/internal/domain/repository"
	"StayPulse/pkg/logger"
)

// ErrUnknownNeighbourhood is returned when a filter label does not occur in
// the listing table.
var ErrUnknownNeighbourhood = errors.New("unknown neighbourhood")

// notAvailable is rendered for statistics that cannot be computed over the
// current subset (empty subset, no parseable prices, no review data).
const notAvailable = "n/a"

// Dashboard owns the filter state machine. It has exactly two states,
// unfiltered and filtered-by-label; Apply performs the transition: derive
// the subset once, run the aggregator and the chart builder over that one
// subset, and publish the resulting snapshot as a single swap so readers
// never observe a chart from one subset next to statistics from another.
type Dashboard struct {
	table   *ListingTable
	agg     *Aggregator
	charts  *ChartBuilder
	pub     repository.Publisher
	metrics repository.Metrics
	l       *logger.Logger

	bcast repository.Broadcaster

	mu       sync.RWMutex
	filter   string
	current  *models.Snapshot
	viewport *models.Viewport
}

// NewDashboard creates the dashboard orchestrator over an immutable table.
func NewDashboard(
	table *ListingTable,
	agg *Aggregator,
	charts *ChartBuilder,
	pub repository.Publisher,
	metrics repository.Metrics,
	l *logger.Logger,
) *Dashboard {
	return &Dashboard{
		table:   table,
		agg:     agg,
		charts:  charts,
		pub:     pub,
		metrics: metrics,
		l:       l,
	}
}

// SetBroadcaster injects the snapshot broadcaster (wired after construction
// because the broadcaster also reads the current snapshot for new clients).
func (d *Dashboard) SetBroadcaster(b repository.Broadcaster) { d.bcast = b }

// Apply transitions the filter state machine and publishes the new snapshot
// atomically. Re-applying the current filter recomputes and republishes the
// identical snapshot.
func (d *Dashboard) Apply(ctx context.Context, filter string) (*models.Snapshot, error) {
	start := time.Now()

	d.mu.Lock()
	snap, err := d.computeLocked(filter)
	if err != nil {
		d.mu.Unlock()
		if d.metrics != nil {
			d.metrics.RecordError("apply_filter")
		}
		return nil, err
	}
	if d.viewport == nil {
		vp := snap.Map.Viewport
		d.viewport = &vp
	}
	d.filter = filter
	d.current = snap
	d.mu.Unlock()

	if d.metrics != nil {
		d.metrics.RecordSnapshot(filter)
		d.metrics.RecordLatency("apply_filter", time.Since(start).Seconds())
	}
	if d.bcast != nil {
		d.bcast.Broadcast(snap)
	}
	if d.pub != nil {
		ev := models.UpdateEvent{Filter: filter, Count: d.table.countFor(filter), ComputedAt: time.Now().UTC()}
		if err := d.pub.Publish(ctx, ev); err != nil {
			if d.metrics != nil {
				d.metrics.RecordError("publish_event")
			}
			d.l.Warn("update event publish failed", logger.Error(err), logger.String("filter", filter))
		}
	}

	d.l.Debug("filter applied",
		logger.String("filter", filter),
		logger.Duration("took_ms", time.Since(start)),
	)
	return snap, nil
}

// Compute renders a snapshot for the given filter without transitioning the
// state machine. Used for read-only dashboard queries.
func (d *Dashboard) Compute(filter string) (*models.Snapshot, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.computeLocked(filter)
}

// computeLocked derives the subset exactly once and feeds the same subset
// to both the aggregator and the chart builder.
func (d *Dashboard) computeLocked(filter string) (*models.Snapshot, error) {
	if filter != "" && !d.table.HasNeighbourhood(filter) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNeighbourhood, filter)
	}

	subset := d.table.Filter(filter)
	summary := d.agg.Summarize(subset, d.table.Len())
	histogram := d.charts.Histogram(subset)
	mapPayload := d.charts.Map(subset, d.viewport)

	if d.metrics != nil {
		d.metrics.RecordSubsetSize(filter, len(subset))
	}
	return renderSnapshot(filter, summary, mapPayload, histogram), nil
}

// Current returns the last published snapshot, nil before the first Apply.
func (d *Dashboard) Current() *models.Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.current
}

// Filter returns the state machine's current filter value.
func (d *Dashboard) Filter() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.filter
}

// SetViewport stores the camera reported by the presentation layer; later
// snapshots carry it through unchanged.
func (d *Dashboard) SetViewport(v models.Viewport) {
	d.mu.Lock()
	v.Sticky = true
	d.viewport = &v
	d.mu.Unlock()
}

// Neighbourhoods returns the dropdown options.
func (d *Dashboard) Neighbourhoods() models.NeighbourhoodOptions {
	return models.NeighbourhoodOptions{
		Neighbourhoods: d.table.Neighbourhoods(),
		TotalListings:  d.table.Len(),
	}
}

// countFor avoids materialising a subset just to report its size.
func (t *ListingTable) countFor(filter string) int {
	if filter == "" {
		return len(t.rows)
	}
	return t.counts[filter]
}

// renderSnapshot formats the nine display values. The formats mirror the
// dashboard frontend: whole nights, whole percentages, two-decimal currency.
func renderSnapshot(filter string, s models.Summary, m models.MapPayload, h models.HistogramPayload) *models.Snapshot {
	return &models.Snapshot{
		Filter:                 filter,
		Map:                    m,
		Histogram:              h,
		EstNightsYear:          formatFloat(s.EstNightsYear, "%.0f"),
		EstOccupancy:           formatPercent(s.EstOccupancy * 100),
		EstIncomeMonth:         formatCurrency(s.EstIncomeMonth),
		PricePerNight:          formatCurrency(s.MeanPrice),
		ReviewsPerListingMonth: formatFloat(s.MeanReviewsMonth, "%.2f"),
		TotalReviews:           strconv.Itoa(s.TotalReviews),
		NumListings:            strconv.Itoa(s.Count),
		PercListings:           "(" + formatPercent(s.PercentOfTotal) + ")",
		EntireHomePercent:      formatPercent(s.EntireHomePercent),
	}
}

func formatFloat(v float64, format string) string {
	if math.IsNaN(v) {
		return notAvailable
	}
	return fmt.Sprintf(format, v)
}

func formatPercent(v float64) string {
	if math.IsNaN(v) {
		return notAvailable
	}
	return fmt.Sprintf("%.0f%%", v)
}

func formatCurrency(v float64) string {
	if math.IsNaN(v) {
		return notAvailable
	}
	return fmt.Sprintf("$%.2f", v)
}
