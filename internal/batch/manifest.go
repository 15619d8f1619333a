package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry records one rendered model in the output manifest.
type ManifestEntry struct {
	Model     string `json:"model"`
	Image     string `json:"image"`
	Triangles int    `json:"triangles"`
}

// WriteManifest writes manifest.json for the successful results.
func WriteManifest(path string, results []Result) error {
	var entries []ManifestEntry
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Model:     r.Model,
			Image:     r.Image,
			Triangles: r.Triangles,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
