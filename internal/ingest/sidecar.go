package ingest

import (
	"encoding/json"
	"fmt"

	"scribe/internal/fileutil"
)

// sidecarRecord is the handoff contract with the inference service: the
// newest image's store id and filename. Field spellings are fixed by the
// consumer.
type sidecarRecord struct {
	ImageID  int64  `json:"imageid"`
	Filename string `json:"filename"`
}

// writeSidecar atomically replaces the sidecar file so the inference service
// never observes a torn read.
func (in *Ingestor) writeSidecar(id int64, filename string) error {
	data, err := json.Marshal(sidecarRecord{ImageID: id, Filename: filename})
	if err != nil {
		return fmt.Errorf("encode sidecar: %w", err)
	}
	return fileutil.WriteFileAtomic(in.cfg.SidecarPath(), append(data, '\n'), 0o644)
}
