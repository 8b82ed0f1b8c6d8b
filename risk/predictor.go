// Package risk turns one applicant form into a repayment prediction.
package risk

import (
	"errors"
	"fmt"

	"loanrisk/applicant"
	"loanrisk/ml"
)

// Predictor assembles the applicant record and asks the model for a verdict.
// The model is shared read-only between requests.
type Predictor struct {
	model ml.Classifier
}

// Result pairs the outcome with the record the model saw.
type Result struct {
	Outcome Outcome
	Record  applicant.Record
}

func NewPredictor(model ml.Classifier) (*Predictor, error) {
	if model == nil {
		return nil, errors.New("model is required")
	}
	return &Predictor{model: model}, nil
}

// Predict returns the outcome for a single form.
func (p *Predictor) Predict(form applicant.Form) (Outcome, error) {
	res, err := p.Evaluate(form)
	if err != nil {
		return Default, err
	}
	return res.Outcome, nil
}

// Evaluate is Predict that also hands back the assembled record. Errors from
// assembly (applicant.ErrDivision) and encoding (ml.ErrSchema) come back wrapped.
func (p *Predictor) Evaluate(form applicant.Form) (Result, error) {
	rec, err := applicant.Assemble(form)
	if err != nil {
		return Result{}, err
	}
	results, err := p.model.Predict([]applicant.Record{rec})
	if err != nil {
		return Result{}, fmt.Errorf("predict: %w", err)
	}
	if len(results) == 0 {
		return Result{}, errors.New("predict: model returned no result")
	}
	return Result{Outcome: Outcome(results[0]), Record: rec}, nil
}
