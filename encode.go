package payments

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// snapshotHeader is the header row of the CSV snapshot.
var snapshotHeader = []string{"client", "available", "held", "total", "locked"}

// EncodeSnapshotCSV writes the snapshot as CSV: a header row, then one row per
// account in client id order, amounts with Scale fractional digits.
func EncodeSnapshotCSV(w io.Writer, s Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(snapshotHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for a := range s.All() {
		row := []string{
			strconv.FormatUint(uint64(a.ClientID), 10),
			a.Available.String(),
			a.Held.String(),
			a.Total().String(),
			strconv.FormatBool(a.Locked),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write account %d: %w", a.ClientID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeSnapshotJSON writes the snapshot in JSONL format, one account per line.
func EncodeSnapshotJSON(w io.Writer, s Snapshot) error {
	for a := range s.All() {
		data, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("failed to marshal account %d: %w", a.ClientID, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("failed to write account %d: %w", a.ClientID, err)
		}
	}
	return nil
}

// EncodeSnapshot writes the snapshot in the given format.
func EncodeSnapshot(w io.Writer, s Snapshot, format Format) error {
	switch format {
	case FormatCSV, "":
		return EncodeSnapshotCSV(w, s)
	case FormatJSONL:
		return EncodeSnapshotJSON(w, s)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
