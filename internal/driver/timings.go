package driver

import (
	"encoding/json"
	"fmt"

	"redux/internal/diag"
	"redux/internal/observ"
	"redux/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// appendTimingDiagnostic records the unit's phase report as an info
// diagnostic; the JSON payload travels in its only note.
func appendTimingDiagnostic(bag *diag.Bag, file source.FileID, payload timingPayload) {
	if bag == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "unit"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if payload.Path != "" {
		msg = fmt.Sprintf("%s, %s", msg, payload.Path)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	// лимит мешок проверит сам; info не влияет на HasErrors
	bag.Add(diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  msg,
		Primary:  source.Span{File: file},
		Notes: []diag.Note{
			{Span: source.Span{File: file}, Msg: string(data)},
		},
	})
}
