package camera

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Override adjusts the camera for one model. Pointer fields distinguish
// "not set" from an explicit zero.
type Override struct {
	Yaw         *float64 `json:"yaw"`
	Pitch       *float64 `json:"pitch"`
	Roll        *float64 `json:"roll"`
	Perspective bool     `json:"perspective"`
	FOV         float64  `json:"fov"`
	FillRatio   float64  `json:"fill_ratio"`
}

// Overrides maps a model filename (base name, extension ignored) to its
// view override.
type Overrides map[string]Override

// LoadOverrides reads a JSON overrides file. A missing path is not an
// error: it returns an empty set so batch runs work without one.
func LoadOverrides(path string) (Overrides, error) {
	if path == "" {
		return Overrides{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Overrides{}, nil
		}
		return nil, fmt.Errorf("camera: read %s: %w", path, err)
	}

	var raw map[string]Override
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("camera: parse %s: %w", path, err)
	}

	o := make(Overrides, len(raw))
	for k, v := range raw {
		o[normalizeKey(k)] = v
	}
	return o, nil
}

// Camera returns the camera for the given model path, applying any
// override on top of the defaults.
func (o Overrides) Camera(modelPath string) *Camera {
	cam := Default()
	ov, ok := o[normalizeKey(modelPath)]
	if !ok {
		return cam
	}

	yaw, pitch, roll := DefaultYaw, DefaultPitch, DefaultRoll
	if ov.Yaw != nil {
		yaw = *ov.Yaw
	}
	if ov.Pitch != nil {
		pitch = *ov.Pitch
	}
	if ov.Roll != nil {
		roll = *ov.Roll
	}
	cam.View = Orbit(yaw, pitch, roll)

	cam.Perspective = ov.Perspective
	if ov.FOV > 0 {
		cam.FOV = ov.FOV
	}
	if ov.FillRatio > 0 {
		cam.FillRatio = ov.FillRatio
	}
	return cam
}

func normalizeKey(path string) string {
	base := filepath.Base(path)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}
