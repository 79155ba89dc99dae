package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/binpack/internal/model"
)

// SaveProject writes a project to path as indented JSON. Version and
// CreatedAt are filled in when empty.
func SaveProject(path string, p model.Project) error {
	if p.Version == "" {
		p.Version = model.ProjectVersion
	}
	if p.CreatedAt == "" {
		p.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// LoadProject reads a project file written by SaveProject. A stored result
// whose assignment does not match the instance is rejected.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project file: %w", err)
	}
	var p model.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project file: %w", err)
	}
	if p.Version == "" {
		return model.Project{}, fmt.Errorf("invalid project file: missing version field")
	}
	if p.Instance.Items == nil {
		p.Instance.Items = []model.Item{}
	}
	if p.Config.RecentFiles == nil {
		p.Config.RecentFiles = []string{}
	}
	if p.Result != nil {
		if n := len(p.Instance.Weights()); len(p.Result.Assignment) != n {
			return model.Project{}, fmt.Errorf("invalid project file: result has %d assignments for %d items", len(p.Result.Assignment), n)
		}
	}
	return p, nil
}
