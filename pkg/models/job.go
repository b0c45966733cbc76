package models

import "sort"

// LambdaCandidate is a closure extracted from a job that may run inside a
// storage-side filter. Its identity is its position within its container's
// sequence.
type LambdaCandidate struct {
	TypeAndBody string `json:"lambda-type-and-body"`
}

// JobDecomposition is the analyzer's view of a job: the original source,
// the source rewritten to rely on pushdown, and the lambdas to push down
// grouped by target container.
type JobDecomposition struct {
	OriginalSource     string                       `json:"original-job-code"`
	PushdownSource     string                       `json:"pushdown-job-code"`
	LambdasByContainer map[string][]LambdaCandidate `json:"lambdas"`
}

// Containers returns the container IDs of the decomposition in sorted order.
func (d JobDecomposition) Containers() []string {
	return SortedContainers(d.LambdasByContainer)
}

// LambdaCount returns the number of candidates across every container.
func (d JobDecomposition) LambdaCount() int {
	count := 0
	for _, lambdas := range d.LambdasByContainer {
		count += len(lambdas)
	}
	return count
}

// SortedContainers returns the keys of lambdas in sorted order.
func SortedContainers(lambdas map[string][]LambdaCandidate) []string {
	containers := make([]string, 0, len(lambdas))
	for container := range lambdas {
		containers = append(containers, container)
	}
	sort.Strings(containers)
	return containers
}
