package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

const (
	TypeDecisionTree = "decision_tree"
	TypeRandomForest = "random_forest"
)

// artifact is the on-disk model format.
type artifact struct {
	ModelType     string       `json:"model_type"`
	PositiveLabel *int         `json:"positive_label"`
	Schema        Schema       `json:"schema"`
	Nodes         []TreeNode   `json:"nodes,omitempty"`
	Trees         [][]TreeNode `json:"trees,omitempty"`
}

// LoadModel reads the artifact at path. Every failure is a *StartupError.
func LoadModel(path string) (*Model, error) {
	model, err := loadModel(path)
	if err != nil {
		return nil, &StartupError{Path: path, Err: err}
	}
	return model, nil
}

func loadModel(path string) (*Model, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var a artifact
	if err := json.Unmarshal(payload, &a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	if err := a.Schema.validate(); err != nil {
		return nil, err
	}

	positive := 1
	if a.PositiveLabel != nil {
		positive = *a.PositiveLabel
	}

	var est estimator
	switch a.ModelType {
	case TypeDecisionTree:
		tree, err := NewDecisionTree(a.Nodes, len(a.Schema))
		if err != nil {
			return nil, err
		}
		est = tree
	case TypeRandomForest:
		trees := make([]*DecisionTree, 0, len(a.Trees))
		for i, nodes := range a.Trees {
			tree, err := NewDecisionTree(nodes, len(a.Schema))
			if err != nil {
				return nil, fmt.Errorf("tree %d: %w", i, err)
			}
			trees = append(trees, tree)
		}
		forest, err := NewForest(trees)
		if err != nil {
			return nil, err
		}
		est = forest
	case "":
		return nil, errors.New("artifact has no model_type")
	default:
		return nil, fmt.Errorf("unsupported model type %q", a.ModelType)
	}

	return &Model{
		modelType:     a.ModelType,
		schema:        a.Schema,
		positiveLabel: positive,
		estimator:     est,
	}, nil
}
