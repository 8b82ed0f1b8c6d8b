package ml

import (
	"errors"
	"fmt"

	"loanrisk/applicant"
)

type ColumnKind string

const (
	KindNumeric     ColumnKind = "numeric"
	KindCategorical ColumnKind = "categorical"
)

// Column is one input the model was trained on. Categorical values are
// encoded as their index in Categories.
type Column struct {
	Name       string     `json:"name"`
	Kind       ColumnKind `json:"kind"`
	Categories []string   `json:"categories,omitempty"`
}

// Schema is the ordered model input. Feature indices in the trees refer to
// positions in this slice.
type Schema []Column

func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

func (s Schema) validate() error {
	if len(s) == 0 {
		return errors.New("schema has no columns")
	}
	seen := make(map[string]bool, len(s))
	for i, c := range s {
		if c.Name == "" {
			return fmt.Errorf("schema column %d has no name", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("schema column %q declared twice", c.Name)
		}
		seen[c.Name] = true
		switch c.Kind {
		case KindNumeric:
		case KindCategorical:
			if len(c.Categories) == 0 {
				return fmt.Errorf("categorical column %q has no categories", c.Name)
			}
		default:
			return fmt.Errorf("column %q has unknown kind %q", c.Name, c.Kind)
		}
	}
	return nil
}

// Check compares the model's columns with a record's column names, ignoring order.
func (s Schema) Check(names []string) error {
	have := make(map[string]bool, len(names))
	for _, n := range names {
		have[n] = true
	}
	for _, c := range s {
		if !have[c.Name] {
			return &SchemaError{Column: c.Name, Reason: "missing from record"}
		}
		delete(have, c.Name)
	}
	for _, n := range names {
		if have[n] {
			return &SchemaError{Column: n, Reason: "not expected by model"}
		}
	}
	return nil
}

// Encode lays out rec as a feature vector in schema order.
func (s Schema) Encode(rec applicant.Record) ([]float64, error) {
	fields := rec.Columns()
	byName := make(map[string]applicant.Field, len(fields))
	names := make([]string, len(fields))
	for i, f := range fields {
		byName[f.Name] = f
		names[i] = f.Name
	}
	if err := s.Check(names); err != nil {
		return nil, err
	}

	vector := make([]float64, len(s))
	for i, col := range s {
		field := byName[col.Name]
		switch col.Kind {
		case KindNumeric:
			if field.Categorical {
				return nil, &SchemaError{Column: col.Name, Reason: "model expects a number"}
			}
			vector[i] = field.Number
		case KindCategorical:
			if !field.Categorical {
				return nil, &SchemaError{Column: col.Name, Reason: "model expects a category"}
			}
			idx := categoryIndex(col.Categories, field.Text)
			if idx < 0 {
				return nil, &SchemaError{Column: col.Name, Reason: fmt.Sprintf("unknown category %q", field.Text)}
			}
			vector[i] = float64(idx)
		}
	}
	return vector, nil
}

func categoryIndex(categories []string, value string) int {
	for i, c := range categories {
		if c == value {
			return i
		}
	}
	return -1
}
