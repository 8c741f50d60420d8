// Package brand provides centralized branding constants for the tool.
// The identity is loaded from brand.json at compile time via go:embed so
// scripts and docs generators can read the same file.
package brand

import (
	_ "embed"
	"encoding/json"
)

//go:embed brand.json
var brandJSON []byte

// Brand holds all branding information.
type Brand struct {
	Name             string `json:"name"`
	LowerName        string `json:"lowerName"`
	Description      string `json:"description"`
	Tagline          string `json:"tagline"`
	BinaryName       string `json:"binaryName"`
	PlanFileName     string `json:"planFileName"`
	DefaultConfigDir string `json:"defaultConfigDir"`
	Version          string `json:"version"`
}

var b Brand

func init() {
	if err := json.Unmarshal(brandJSON, &b); err != nil {
		panic("failed to parse brand.json: " + err.Error())
	}

	Name = b.Name
	LowerName = b.LowerName
	Description = b.Description
	Tagline = b.Tagline
	BinaryName = b.BinaryName
	PlanFileName = b.PlanFileName
	DefaultConfigDir = b.DefaultConfigDir
	Version = b.Version
}

// Exported branding variables, initialized from brand.json.
var (
	Name             string
	LowerName        string
	Description      string
	Tagline          string
	BinaryName       string
	PlanFileName     string
	DefaultConfigDir string
	Version          string
)

// DefaultPlanPath returns the default plan location.
func DefaultPlanPath() string {
	return DefaultConfigDir + "/" + PlanFileName
}
