package recorder

import "CaptionComposer/internal/model"

// NoopRecorder discards every record.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordAnalysis(_ *model.Intelligence) error { return nil }
