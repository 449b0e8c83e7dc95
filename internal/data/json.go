package data

import (
	"encoding/json"
	"os"

	"backup-power-sim/internal/model"
)

func LoadProfileJSON(path string) (*model.Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p model.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func WriteProfileJSON(path string, p *model.Profile) error {
	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

// GroupBySite splits a profile into site-keyed slices.
func GroupBySite(p *model.Profile) map[string][]model.NetLoadInterval {
	out := map[string][]model.NetLoadInterval{}
	if p == nil {
		return out
	}
	for _, it := range p.Data {
		out[it.Site] = append(out[it.Site], it)
	}
	return out
}
