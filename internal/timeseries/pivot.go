package timeseries

import (
	"fmt"
	"log/slog"
	"sort"
)

// CollisionPolicy decides what happens when two samples for the same station
// share an interval key. Correct upstream bucketing produces at most one
// sample per (station, key), but the pivot does not structurally prevent
// duplicates, so the policy is an explicit parameter.
type CollisionPolicy int

const (
	// CollisionLastWins keeps the later sample in input order and logs the
	// overwrite.
	CollisionLastWins CollisionPolicy = iota
	// CollisionFirstWins keeps the earlier sample and logs the drop.
	CollisionFirstWins
	// CollisionReject fails the pivot on the first duplicate key.
	CollisionReject
)

func (p CollisionPolicy) String() string {
	switch p {
	case CollisionLastWins:
		return "last-wins"
	case CollisionFirstWins:
		return "first-wins"
	case CollisionReject:
		return "reject"
	default:
		return fmt.Sprintf("collision-policy(%d)", int(p))
	}
}

// ParseCollisionPolicy maps a configuration string to a policy.
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch s {
	case "last-wins", "":
		return CollisionLastWins, nil
	case "first-wins":
		return CollisionFirstWins, nil
	case "reject":
		return CollisionReject, nil
	default:
		return CollisionLastWins, fmt.Errorf("unknown collision policy %q", s)
	}
}

// Pivot reshapes the sample stream long-to-wide: one WideRow per distinct
// station, with one field per interval key in that station's group. Rows are
// returned sorted by station ID. Field values equal the group's sample
// values; duplicate keys are resolved by policy.
func Pivot(samples []Sample, policy CollisionPolicy) ([]WideRow, error) {
	byStation := make(map[string]map[string]Value)
	var order []string

	for _, s := range samples {
		fields, ok := byStation[s.StationID]
		if !ok {
			fields = make(map[string]Value)
			byStation[s.StationID] = fields
			order = append(order, s.StationID)
		}

		if _, dup := fields[s.Key]; dup {
			switch policy {
			case CollisionReject:
				return nil, fmt.Errorf("duplicate interval key %q for station %q", s.Key, s.StationID)
			case CollisionFirstWins:
				slog.Warn("pivot: dropping duplicate interval key",
					"station", s.StationID, "key", s.Key, "policy", policy.String())
				continue
			default:
				slog.Warn("pivot: overwriting duplicate interval key",
					"station", s.StationID, "key", s.Key, "policy", policy.String())
			}
		}
		fields[s.Key] = s.Value
	}

	sort.Strings(order)
	rows := make([]WideRow, 0, len(order))
	for _, id := range order {
		rows = append(rows, WideRow{StationID: id, Fields: byStation[id]})
	}
	return rows, nil
}
