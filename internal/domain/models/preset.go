package models

import (
	"fmt"
	"strings"
	"time"
)

// MaxPresetNameLength bounds preset names.
const MaxPresetNameLength = 100

// FilterPreset is a named filter set saved for a kind of list view.
type FilterPreset struct {
	ID        string            `json:"id" bson:"_id"`
	Name      string            `json:"name" bson:"name"`
	View      string            `json:"view" bson:"view"`
	Filters   map[string]string `json:"filters" bson:"filters"`
	CreatedBy string            `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedAt time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt" bson:"updatedAt"`
}

// Validate checks the preset's required fields.
func (p *FilterPreset) Validate() error {
	name := strings.TrimSpace(p.Name)
	switch {
	case name == "":
		return fmt.Errorf("preset name is required")
	case len(name) > MaxPresetNameLength:
		return fmt.Errorf("preset name exceeds %d characters", MaxPresetNameLength)
	case p.View == "":
		return fmt.Errorf("preset view is required")
	}
	return nil
}
