package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to the scene file (json type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

const (
	builtinGroup  = "Built-in Scenes"
	jsonGroup     = "Scene Files"
	jsonIDPrefix  = "json:"
	scenesDirName = "scenes"
)

var builtinDescriptions = map[string]string{
	"default":   "Two spheres lit by a single point light",
	"table":     "Wooden table on a reflective checkered floor with a glass ball",
	"glass":     "Hollow glass sphere in front of a ringed wall",
	"cylinders": "Capped, open and glass cylinders",
	"cones":     "Capped, double and mirrored cones",
	"hexagon":   "Hexagonal frame built from nested groups",
}

// ListBuiltinScenes returns metadata for every built-in scene
func ListBuiltinScenes() []SceneInfo {
	var scenes []SceneInfo
	for _, name := range BuiltinNames() {
		scenes = append(scenes, SceneInfo{
			ID:          name,
			Name:        titleCase(name),
			DisplayName: titleCase(name),
			Description: builtinDescriptions[name],
			Group:       builtinGroup,
			Type:        "builtin",
		})
	}
	return scenes
}

// ListJSONScenes scans the scenes directory and returns discovered JSON scene files
func ListJSONScenes() ([]SceneInfo, error) {
	// Try different possible paths for scenes directory
	var scenesDir string
	for _, path := range []string{scenesDirName, filepath.Join("..", scenesDirName)} {
		if _, err := os.Stat(path); err == nil {
			scenesDir = path
			break
		}
	}
	if scenesDir == "" {
		return []SceneInfo{}, nil
	}
	return listJSONScenesIn(scenesDir)
}

func listJSONScenesIn(dir string) ([]SceneInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		info, err := ParseJSONMetadata(filePath)
		if err != nil {
			// Skip unreadable files, keep the rest
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// ParseJSONMetadata reads the top-level name, description and group fields
// of a JSON scene file, falling back to the file name
func ParseJSONMetadata(filePath string) (SceneInfo, error) {
	base := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	info := SceneInfo{
		ID:          jsonIDPrefix + base,
		Name:        titleCase(base),
		DisplayName: titleCase(base),
		Group:       jsonGroup,
		Type:        "json",
		FilePath:    filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info, err
	}
	if !gjson.ValidBytes(data) {
		return info, fmt.Errorf("%s: invalid JSON", filePath)
	}

	meta := gjson.GetManyBytes(data, "name", "description", "group")
	if meta[0].Exists() {
		info.Name = meta[0].String()
		info.DisplayName = info.Name
	}
	info.Description = meta[1].String()
	if meta[2].Exists() {
		info.Group = meta[2].String()
	}
	return info, nil
}

// IsJSONSceneID reports whether a scene ID refers to a scene file and
// returns the file's base name
func IsJSONSceneID(id string) (string, bool) {
	return strings.CutPrefix(id, jsonIDPrefix)
}

// FindJSONScene looks up a discovered scene file by its scene ID
func FindJSONScene(id string) (SceneInfo, error) {
	if _, ok := IsJSONSceneID(id); !ok {
		return SceneInfo{}, fmt.Errorf("scene %q is not a scene file ID", id)
	}
	scenes, err := ListJSONScenes()
	if err != nil {
		return SceneInfo{}, err
	}
	for _, info := range scenes {
		if info.ID == id {
			return info, nil
		}
	}
	return SceneInfo{}, fmt.Errorf("unknown scene %q", id)
}

// ListAllScenes returns both built-in and file scenes, grouped by category
func ListAllScenes() (ScenesResponse, error) {
	var response ScenesResponse

	fileScenes, err := ListJSONScenes()
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}

	allScenes := append(ListBuiltinScenes(), fileScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, s := range allScenes {
		groupMap[s.Group] = append(groupMap[s.Group], s)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if group, exists := groupMap[builtinGroup]; exists {
		response.Groups = append(response.Groups, SceneGroup{Name: builtinGroup, Scenes: group})
	}
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "glass-bubble" -> "Glass Bubble"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
