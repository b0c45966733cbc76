package models

import (
	"encoding/json"
	"strings"
)

// FilterPolicy is a static policy held by the policy controller. Only Params
// is ever changed by this system.
type FilterPolicy struct {
	ID         PolicyID `json:"id"`
	TargetID   string   `json:"target_id"`
	FilterName string   `json:"filter_name"`
	Params     string   `json:"params"`
}

// UpdateKey is the path segment that addresses the policy on update.
func (p FilterPolicy) UpdateKey() string {
	return p.TargetID + ":" + string(p.ID)
}

// AppliesTo reports whether the policy is attached to container.
func (p FilterPolicy) AppliesTo(container string) bool {
	return strings.Contains(p.TargetID, container)
}

// PolicyID accepts both string and numeric ids from the controller.
type PolicyID string

func (id *PolicyID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = PolicyID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = PolicyID(n.String())
	return nil
}

// PolicyParamsUpdate is the body of a policy params update.
type PolicyParamsUpdate struct {
	Params string `json:"params"`
}
