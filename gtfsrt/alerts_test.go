package gtfsrt

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/transit-planner/graph"
)

var refTime = time.Unix(1_700_000_000, 0)

func alertEntity(id string, effect gtfsrtpb.Alert_Effect, start, end uint64, routes ...string) *gtfsrtpb.FeedEntity {
	a := &gtfsrtpb.Alert{
		Effect: effect.Enum(),
		HeaderText: &gtfsrtpb.TranslatedString{Translation: []*gtfsrtpb.TranslatedString_Translation{
			{Text: proto.String("Station closed"), Language: proto.String("en")},
		}},
	}
	if start != 0 || end != 0 {
		tr := &gtfsrtpb.TimeRange{}
		if start != 0 {
			tr.Start = proto.Uint64(start)
		}
		if end != 0 {
			tr.End = proto.Uint64(end)
		}
		a.ActivePeriod = []*gtfsrtpb.TimeRange{tr}
	}
	for _, r := range routes {
		a.InformedEntity = append(a.InformedEntity, &gtfsrtpb.EntitySelector{RouteId: proto.String(r)})
	}
	return &gtfsrtpb.FeedEntity{Id: proto.String(id), Alert: a}
}

func alertFeed(t *testing.T, entities ...*gtfsrtpb.FeedEntity) []byte {
	t.Helper()
	fm := &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{GtfsRealtimeVersion: proto.String("2.0")},
		Entity: entities,
	}
	data, err := proto.Marshal(fm)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestSuspendedServices(t *testing.T) {
	now := uint64(refTime.Unix())
	data := alertFeed(t,
		alertEntity("open-ended", gtfsrtpb.Alert_NO_SERVICE, 0, 0, "R1"),
		alertEntity("current", gtfsrtpb.Alert_NO_SERVICE, now-60, now+60, "R2", "R3"),
		alertEntity("expired", gtfsrtpb.Alert_NO_SERVICE, now-120, now-60, "R4"),
		alertEntity("future", gtfsrtpb.Alert_NO_SERVICE, now+60, 0, "R5"),
		alertEntity("detour", gtfsrtpb.Alert_DETOUR, 0, 0, "R6"),
	)
	got, err := SuspendedServices(data, refTime)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range []string{"R1", "R2", "R3"} {
		if !got[r] {
			t.Errorf("%s should be suspended", r)
		}
	}
	for _, r := range []string{"R4", "R5", "R6"} {
		if got[r] {
			t.Errorf("%s should not be suspended", r)
		}
	}
}

func TestParseAlerts(t *testing.T) {
	alerts, err := ParseAlerts(alertFeed(t, alertEntity("a1", gtfsrtpb.Alert_NO_SERVICE, 10, 20, "R1")))
	if err != nil {
		t.Fatal(err)
	}
	if len(alerts) != 1 {
		t.Fatalf("alerts = %+v", alerts)
	}
	a := alerts[0]
	if a.ID != "a1" || a.Header != "Station closed" || a.Effect != "NO_SERVICE" {
		t.Errorf("alert = %+v", a)
	}
	if len(a.Periods) != 1 || a.Periods[0] != (Period{Start: 10, End: 20}) {
		t.Errorf("periods = %+v", a.Periods)
	}

	if _, err := ParseAlerts([]byte{0xff, 0xff, 0xff}); err == nil {
		t.Error("expected a decode error for garbage input")
	}
}

func TestFilterLoader(t *testing.T) {
	desc := graph.Description{
		Stops: []graph.StopSpec{{Name: "A"}, {Name: "B"}},
		Links: []graph.Link{
			{Source: "A", Target: "B", Service: "12", RouteID: "R1", Cost: 10, Distance: 1},
			{Source: "A", Target: "B", Service: "Circle Line", RouteID: "R2", Cost: 10, Distance: 1},
		},
	}
	base := graph.LoaderFunc(func(context.Context) (graph.Description, error) { return desc, nil })
	dir := t.TempDir()
	alerts := filepath.Join(dir, "alerts.pb")
	if err := os.WriteFile(alerts, alertFeed(t, alertEntity("a", gtfsrtpb.Alert_NO_SERVICE, 0, 0, "R1")), 0o644); err != nil {
		t.Fatal(err)
	}
	clock := func() time.Time { return refTime }

	tests := []struct {
		name      string
		url       string
		wantLinks int
	}{
		{"filtered", alerts, 1},
		{"no alerts configured", "", 2},
		{"unreachable feed", filepath.Join(dir, "missing.pb"), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FilterLoader(base, tt.url, clock).Load(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			if len(got.Links) != tt.wantLinks {
				t.Errorf("links = %+v", got.Links)
			}
		})
	}
}
