package gtfsrt

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/transit-planner/graph"
	"github.com/theoremus-urban-solutions/transit-planner/internal"
)

const effectNoService = "NO_SERVICE"

// ParseAlerts decodes a GTFS-RT FeedMessage and returns its alerts
func ParseAlerts(data []byte) ([]Alert, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(data, &fm); err != nil {
		return nil, fmt.Errorf("decode service alerts: %w", err)
	}
	alerts := make([]Alert, 0, len(fm.Entity))
	for _, e := range fm.Entity {
		if e.Alert == nil {
			continue
		}
		a := e.Alert
		ra := Alert{ID: e.GetId()}
		if a.HeaderText != nil {
			ra.Header = translatedText(a.HeaderText)
		}
		if a.Effect != nil {
			ra.Effect = a.Effect.String()
		}
		for _, ap := range a.ActivePeriod {
			ra.Periods = append(ra.Periods, Period{Start: int64(ap.GetStart()), End: int64(ap.GetEnd())})
		}
		for _, ie := range a.InformedEntity {
			if ie.RouteId != nil {
				ra.RouteIDs = append(ra.RouteIDs, *ie.RouteId)
			}
		}
		alerts = append(alerts, ra)
	}
	return alerts, nil
}

// SuspendedServices returns the route ids under a NO_SERVICE alert active at now
func SuspendedServices(data []byte, now time.Time) (map[string]bool, error) {
	alerts, err := ParseAlerts(data)
	if err != nil {
		return nil, err
	}
	out := map[string]bool{}
	for _, a := range alerts {
		if a.Effect != effectNoService || !a.ActiveAt(now) {
			continue
		}
		for _, rid := range a.RouteIDs {
			out[rid] = true
		}
	}
	return out, nil
}

// FilterLoader drops suspended services from every description next loads.
// An unreachable or malformed alerts feed leaves the description untouched.
func FilterLoader(next graph.Loader, alertsURL string, now func() time.Time) graph.Loader {
	if now == nil {
		now = time.Now
	}
	return graph.LoaderFunc(func(ctx context.Context) (graph.Description, error) {
		desc, err := next.Load(ctx)
		if err != nil || alertsURL == "" {
			return desc, err
		}
		data, err := internal.Fetch(ctx, alertsURL)
		if err != nil {
			slog.Warn("service alerts unavailable, using full network", "url", alertsURL, "err", err)
			return desc, nil
		}
		suspended, err := SuspendedServices(data, now())
		if err != nil {
			slog.Warn("service alerts unreadable, using full network", "url", alertsURL, "err", err)
			return desc, nil
		}
		filtered := desc.WithoutServices(suspended)
		if dropped := len(desc.Links) - len(filtered.Links); dropped > 0 {
			slog.Info("suspended services removed", "routes", len(suspended), "links", dropped)
		}
		return filtered, nil
	})
}

// translatedText prefers the untagged translation, then the first one
func translatedText(ts *gtfsrtpb.TranslatedString) string {
	var first string
	for _, tr := range ts.Translation {
		if tr.GetLanguage() == "" {
			return tr.GetText()
		}
		if first == "" {
			first = tr.GetText()
		}
	}
	return first
}
