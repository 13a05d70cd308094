package gtfs

import (
	"archive/zip"
	"encoding/csv"
	"sort"
	"strconv"
	"strings"
)

func (g *Index) consumeCSV(f *zip.File, name string) error {
	r, err := f.Open()
	if err != nil {
		return err
	}
	defer r.Close()
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1
	rec, err := csvr.ReadAll()
	if err != nil {
		return err
	}
	if len(rec) == 0 {
		return nil
	}
	head := rec[0]
	if len(head) > 0 {
		head[0] = strings.TrimPrefix(head[0], "\ufeff")
	}
	idx := func(col string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}
	switch name {
	case "routes.txt":
		rID := idx("route_id")
		rSN := idx("route_short_name")
		rLN := idx("route_long_name")
		rType := idx("route_type")
		if rID < 0 {
			return nil
		}
		for _, row := range rec[1:] {
			id := field(row, rID)
			if id == "" {
				continue
			}
			r := route{shortName: field(row, rSN), longName: field(row, rLN), routeType: 3}
			if t, err := strconv.Atoi(field(row, rType)); err == nil {
				r.routeType = t
			}
			g.routes[id] = r
		}
	case "trips.txt":
		rID := idx("route_id")
		tID := idx("trip_id")
		if rID < 0 || tID < 0 {
			return nil
		}
		for _, row := range rec[1:] {
			g.tripToRoute[field(row, tID)] = field(row, rID)
		}
	case "stops.txt":
		sID := idx("stop_id")
		sN := idx("stop_name")
		sLat := idx("stop_lat")
		sLon := idx("stop_lon")
		if sID < 0 {
			return nil
		}
		for _, row := range rec[1:] {
			id := field(row, sID)
			s := stopInfo{name: field(row, sN)}
			if s.name == "" {
				s.name = id
			}
			lat, errLat := strconv.ParseFloat(field(row, sLat), 64)
			lon, errLon := strconv.ParseFloat(field(row, sLon), 64)
			if errLat == nil && errLon == nil {
				s.lat, s.lon, s.hasCoord = lat, lon, true
			}
			g.stops[id] = s
		}
	case "stop_times.txt":
		tID := idx("trip_id")
		sID := idx("stop_id")
		sq := idx("stop_sequence")
		if tID < 0 || sID < 0 || sq < 0 {
			return nil
		}
		type stopTime struct {
			stop string
			seq  int
		}
		tmp := map[string][]stopTime{}
		for _, row := range rec[1:] {
			seq, err := strconv.Atoi(field(row, sq))
			if err != nil {
				continue
			}
			trip := field(row, tID)
			tmp[trip] = append(tmp[trip], stopTime{stop: field(row, sID), seq: seq})
		}
		for trip, arr := range tmp {
			sort.SliceStable(arr, func(i, j int) bool { return arr[i].seq < arr[j].seq })
			seqStops := make([]string, 0, len(arr))
			for _, v := range arr {
				seqStops = append(seqStops, v.stop)
			}
			g.TripStopSeq[trip] = seqStops
		}
	}
	return nil
}

// field returns a trimmed column or "" when the row is short or the column absent
func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
