package timeseries

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
)

// WriteCSV renders merged rows with the export schema: first column
// stationid, then one column per date key, sorted ascending, covering the
// union of keys across all rows. Rows are written sorted by station ID and
// missing cells are left empty.
func WriteCSV(w io.Writer, rows []MergedRow) error {
	keySet := make(map[string]struct{})
	for _, row := range rows {
		for k := range row.Fields {
			keySet[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sorted := make([]MergedRow, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StationID < sorted[j].StationID })

	cw := csv.NewWriter(w)

	header := append([]string{"stationid"}, keys...)
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for _, row := range sorted {
		record[0] = row.StationID
		for i, k := range keys {
			if v, ok := row.Fields[k]; ok && v.Valid {
				record[i+1] = strconv.FormatFloat(v.Float64, 'f', -1, 64)
			} else {
				record[i+1] = ""
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
