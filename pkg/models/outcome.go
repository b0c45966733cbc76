package models

import "fmt"

// ReconciliationStatus summarizes a reconciliation call.
type ReconciliationStatus int

const (
	AllUpdated ReconciliationStatus = iota
	PolicyMissing
	TransportFailure
)

func (s ReconciliationStatus) String() string {
	switch s {
	case AllUpdated:
		return "AllUpdated"
	case PolicyMissing:
		return "PolicyMissing"
	case TransportFailure:
		return "TransportFailure"
	default:
		return fmt.Sprintf("ReconciliationStatus(%d)", int(s))
	}
}

// ContainerOutcome is the result of updating a single container's policy.
type ContainerOutcome struct {
	Container  string
	PolicyKey  string
	Params     string
	HTTPStatus int
	Err        error
}

// Updated reports whether the policy update was accepted.
func (o ContainerOutcome) Updated() bool {
	return o.Err == nil && o.HTTPStatus >= 200 && o.HTTPStatus < 300
}

// ReconciliationOutcome is computed fresh for each reconciliation call.
type ReconciliationOutcome struct {
	Status ReconciliationStatus
	// LastHTTPStatus is the status of the last update issued, nil when no
	// update was issued.
	LastHTTPStatus *int
	Containers     []ContainerOutcome
	// Err explains a status other than AllUpdated.
	Err error
}

// Succeeded reports whether every requested policy was updated.
func (o ReconciliationOutcome) Succeeded() bool {
	return o.Status == AllUpdated
}

// Partial reports whether some but not all container updates went through.
func (o ReconciliationOutcome) Partial() bool {
	updated := 0
	for _, c := range o.Containers {
		if c.Updated() {
			updated++
		}
	}
	return updated > 0 && updated < len(o.Containers)
}
