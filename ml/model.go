package ml

import (
	"errors"
	"fmt"

	"loanrisk/applicant"
)

//go:generate mockgen -source=model.go -destination=mocks/mocks.go -package=mocks Classifier

// Classifier predicts repayment (true) or default (false) for each row.
type Classifier interface {
	Schema() Schema
	Predict(rows []applicant.Record) ([]bool, error)
}

// estimator is what a tree or a forest exposes over an encoded vector.
type estimator interface {
	Predict(features []float64) (int, error)
}

// Model is a loaded artifact. It is never mutated after LoadModel returns,
// so concurrent readers need no locking.
type Model struct {
	modelType     string
	schema        Schema
	positiveLabel int
	estimator     estimator
}

func (m *Model) Type() string { return m.modelType }

// Schema returns a deep copy; the model's own schema is never handed out.
func (m *Model) Schema() Schema {
	out := make(Schema, len(m.schema))
	for i, col := range m.schema {
		col.Categories = append([]string(nil), col.Categories...)
		out[i] = col
	}
	return out
}

func (m *Model) Predict(rows []applicant.Record) ([]bool, error) {
	if len(rows) == 0 {
		return nil, errors.New("no rows to predict")
	}
	out := make([]bool, len(rows))
	for i, row := range rows {
		vector, err := m.schema.Encode(row)
		if err != nil {
			return nil, err
		}
		label, err := m.estimator.Predict(vector)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = label == m.positiveLabel
	}
	return out, nil
}
