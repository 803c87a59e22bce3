package usecase

import (
	"fmt"

	"StayPulse/internal/domain/models"
)

// ChartBuilder produces the histogram and map payloads over one subset.
// Both transforms are stateless and idempotent; the only cross-update state,
// the map viewport, is passed in by the caller and never mutated here.
type ChartBuilder struct {
	colors      models.RoomColors
	binDays     int
	defaultZoom float64
}

// NewChartBuilder creates a ChartBuilder with the configured colors,
// availability bin width, and initial map zoom.
func NewChartBuilder(colors models.RoomColors, binDays int, defaultZoom float64) *ChartBuilder {
	return &ChartBuilder{colors: colors, binDays: binDays, defaultZoom: defaultZoom}
}

// histogram traces stack rarest-first: shared, private, entire.
var histogramOrder = []string{
	models.RoomSharedRoom,
	models.RoomPrivateRoom,
	models.RoomEntireHome,
}

// Histogram bins each room type's listings over the 0-365 availability axis.
func (b *ChartBuilder) Histogram(subset []models.Listing) models.HistogramPayload {
	numBins := 365/b.binDays + 1

	byRoom := make(map[string][]int, len(histogramOrder))
	for _, rt := range histogramOrder {
		byRoom[rt] = make([]int, numBins)
	}
	for _, l := range subset {
		bins, ok := byRoom[l.RoomType]
		if !ok {
			continue
		}
		days := l.Availability365
		if days < 0 {
			days = 0
		}
		if days > 365 {
			days = 365
		}
		bins[days/b.binDays]++
	}

	payload := models.HistogramPayload{BinDays: b.binDays}
	for _, rt := range histogramOrder {
		payload.Traces = append(payload.Traces, models.HistogramTrace{
			Name:  rt,
			Color: b.colors.ForRoomType(rt),
			Bins:  byRoom[rt],
		})
	}
	return payload
}

// Map builds one trace per room type with a tooltip per listing. When a
// previous viewport is given it is carried over unchanged (sticky camera);
// otherwise the camera is seeded from the subset's mean coordinates.
func (b *ChartBuilder) Map(subset []models.Listing, prev *models.Viewport) models.MapPayload {
	byRoom := make(map[string][]models.MapPoint, len(histogramOrder))
	var latSum, lonSum float64
	for _, l := range subset {
		latSum += l.Latitude
		lonSum += l.Longitude
		byRoom[l.RoomType] = append(byRoom[l.RoomType], models.MapPoint{
			Lat:     l.Latitude,
			Lon:     l.Longitude,
			Tooltip: tooltip(l),
		})
	}

	var payload models.MapPayload
	// entire home first so its markers draw beneath the rarer types
	for _, rt := range []string{models.RoomEntireHome, models.RoomPrivateRoom, models.RoomSharedRoom} {
		payload.Traces = append(payload.Traces, models.MapTrace{
			Name:   rt,
			Color:  b.colors.ForRoomType(rt),
			Points: byRoom[rt],
		})
	}

	if prev != nil {
		payload.Viewport = *prev
	} else {
		payload.Viewport = models.Viewport{Zoom: b.defaultZoom, Sticky: true}
		if n := len(subset); n > 0 {
			payload.Viewport.CenterLat = latSum / float64(n)
			payload.Viewport.CenterLon = lonSum / float64(n)
		}
	}
	return payload
}

// tooltip renders the hover text for one listing. Availability is shown as
// the share of the year the listing is bookable, one decimal.
func tooltip(l models.Listing) string {
	availPct := float64(l.Availability365) / 365 * 100
	return fmt.Sprintf("%s — hosted by %s since %s — %s / night — sleeps %d — available %.1f%% of the year",
		l.Name, l.HostName, l.HostSince, l.Price, l.Accommodates, availPct)
}
