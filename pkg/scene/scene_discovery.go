package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Display name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to JSON file (json type only)
}

type builtin struct {
	info  SceneInfo
	build func() *Scene
}

var builtins = []builtin{
	{
		info:  SceneInfo{ID: "default", Name: "Default Scene", Description: "Red, green and blue spheres over a black plane"},
		build: NewDefaultScene,
	},
	{
		info:  SceneInfo{ID: "single-sphere", Name: "Single Sphere", Description: "One white sphere on the forward axis"},
		build: NewSingleSphereScene,
	},
	{
		info:  SceneInfo{ID: "sphere-grid", Name: "Sphere Grid", Description: "10x10 grid of rainbow-coloured spheres"},
		build: func() *Scene { return NewSphereGridScene(10) },
	},
}

// Names returns the IDs of the built-in scenes in registration order
func Names() []string {
	names := make([]string, len(builtins))
	for i, b := range builtins {
		names[i] = b.info.ID
	}
	return names
}

// ByName returns a fresh copy of a built-in scene
func ByName(name string) (*Scene, error) {
	for _, b := range builtins {
		if b.info.ID == name {
			return b.build(), nil
		}
	}
	return nil, fmt.Errorf("unknown scene %q (available: %s)", name, strings.Join(Names(), ", "))
}

// Create resolves a built-in scene name or a path to a .json scene file
func Create(nameOrPath string) (*Scene, error) {
	if nameOrPath == "" {
		return nil, fmt.Errorf("no scene given")
	}
	if strings.HasSuffix(nameOrPath, ".json") {
		return Load(nameOrPath)
	}
	return ByName(nameOrPath)
}

// ListJSONScenes scans dir for *.json scene files. A missing directory is not
// an error.
func ListJSONScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		info, err := parseJSONMetadata(filePath)
		if err != nil {
			// Skip unreadable files but keep scanning
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, nil
}

// ListAllScenes returns the built-in scenes followed by the JSON scenes in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	all := make([]SceneInfo, 0, len(builtins))
	for _, b := range builtins {
		info := b.info
		info.Type = "builtin"
		all = append(all, info)
	}

	fromDisk, err := ListJSONScenes(dir)
	if err != nil {
		return nil, err
	}
	return append(all, fromDisk...), nil
}

func parseJSONMetadata(filePath string) (SceneInfo, error) {
	base := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	info := SceneInfo{
		ID:       "json:" + base,
		Name:     titleCase(base),
		Type:     "json",
		FilePath: filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info, err
	}
	var meta struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return info, err
	}
	if meta.Name != "" {
		info.Name = meta.Name
	}
	info.Description = meta.Description
	return info, nil
}

// titleCase converts a filename-style string to title case
// e.g., "three-spheres" -> "Three Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
