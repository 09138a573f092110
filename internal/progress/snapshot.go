package progress

import (
	"encoding/json"
	"errors"
	"fmt"
)

// errNoRecords marks a blob that decodes but has no records object.
var errNoRecords = errors.New("snapshot has no records object")

// snapshot is the persisted shape of the ledger.
type snapshot struct {
	Records map[string]Record `json:"records"`
}

func encodeSnapshot(records map[string]Record) ([]byte, error) {
	out := snapshot{Records: make(map[string]Record, len(records))}
	for id, r := range records {
		out.Records[id] = r.clone()
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return b, nil
}

func decodeSnapshot(blob []byte) (map[string]Record, error) {
	var s snapshot
	if err := json.Unmarshal(blob, &s); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if s.Records == nil {
		return nil, errNoRecords
	}
	for id, r := range s.Records {
		s.Records[id] = r.clone()
	}
	return s.Records, nil
}
