package timeseries

// datePrefixLen is the length of the YY-MM-dd prefix used to detect columns
// that name the same calendar day.
const datePrefixLen = 8

// MergeRow collapses a WideRow's fields by their 8-character date prefix,
// keeping the maximum among each group's non-missing values. Keys shorter
// than the prefix group under themselves. A group whose candidates are all
// missing stays missing; a size-1 group passes through unchanged, which makes
// the merge idempotent on already-merged rows.
func MergeRow(row WideRow) MergedRow {
	merged := MergedRow{
		StationID: row.StationID,
		Fields:    make(map[string]Value, len(row.Fields)),
	}
	for key, v := range row.Fields {
		prefix := key
		if len(prefix) > datePrefixLen {
			prefix = prefix[:datePrefixLen]
		}

		cur, seen := merged.Fields[prefix]
		switch {
		case !seen:
			merged.Fields[prefix] = v
		case !v.Valid:
			// Missing candidates never displace a value.
		case !cur.Valid || v.Float64 > cur.Float64:
			merged.Fields[prefix] = v
		}
	}
	return merged
}

// MergeRows applies MergeRow to every row, preserving order.
func MergeRows(rows []WideRow) []MergedRow {
	out := make([]MergedRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, MergeRow(row))
	}
	return out
}
