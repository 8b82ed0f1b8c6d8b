package ml

import (
	"errors"
	"fmt"
)

type DecisionTree struct {
	nodes []TreeNode
}

type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	ClassLabel int     `json:"class_label"`
	IsLeaf     bool    `json:"is_leaf"`
}

// NewDecisionTree checks that every split points at a valid feature and
// child node before the tree is used.
func NewDecisionTree(nodes []TreeNode, featureCount int) (*DecisionTree, error) {
	if len(nodes) == 0 {
		return nil, errors.New("tree has no nodes")
	}
	for i, node := range nodes {
		if node.IsLeaf {
			continue
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= featureCount {
			return nil, fmt.Errorf("node %d: feature index %d out of range", i, node.FeatureIdx)
		}
		// children must come after their parent, which also rules out cycles
		if node.LeftChild <= i || node.LeftChild >= len(nodes) {
			return nil, fmt.Errorf("node %d: invalid left child %d", i, node.LeftChild)
		}
		if node.RightChild <= i || node.RightChild >= len(nodes) {
			return nil, fmt.Errorf("node %d: invalid right child %d", i, node.RightChild)
		}
	}
	return &DecisionTree{nodes: nodes}, nil
}

func (dt *DecisionTree) Predict(features []float64) (int, error) {
	if len(dt.nodes) == 0 {
		return 0, errors.New("model not loaded")
	}
	idx := 0
	for {
		node := dt.nodes[idx]
		if node.IsLeaf {
			return node.ClassLabel, nil
		}
		if node.FeatureIdx >= len(features) {
			return 0, errors.New("feature index out of range")
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
}
