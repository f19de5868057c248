package recorder

import "CaptionComposer/internal/model"

// Recorder observes completed analyses.
type Recorder interface {
	RecordAnalysis(intel *model.Intelligence) error
}

// Multi fans a record out to several recorders, returning the first error.
type Multi []Recorder

func (m Multi) RecordAnalysis(intel *model.Intelligence) error {
	var first error
	for _, r := range m {
		if err := r.RecordAnalysis(intel); err != nil && first == nil {
			first = err
		}
	}
	return first
}
