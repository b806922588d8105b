package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/woodshop-tools/framecad/internal/model"
	"github.com/woodshop-tools/framecad/internal/stock"
)

// Project is a saved import run: the resolved cut-list plus the settings
// that produced it, so a build can be reopened and re-exported later.
type Project struct {
	Name          string             `json:"name"`
	Policy        string             `json:"policy"`
	GableFallback string             `json:"gable_fallback"`
	KerfWidth     float64            `json:"kerf_width"`
	SourceFile    string             `json:"source_file,omitempty"`
	Sections      *model.SectionSet  `json:"sections"`
	StockPrices   []stock.PricePoint `json:"stock_prices,omitempty"`
	CreatedAt     string             `json:"created_at"`
	UpdatedAt     string             `json:"updated_at"`
}

// NewProject creates a project around an imported section set, stamping the
// settings from the app config.
func NewProject(name string, sections *model.SectionSet, config model.AppConfig) *Project {
	now := time.Now().UTC().Format(time.RFC3339)
	return &Project{
		Name:          name,
		Policy:        config.DefaultPolicy,
		GableFallback: config.GableFallback,
		KerfWidth:     config.KerfWidth,
		Sections:      sections,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// SaveProject writes the project to a JSON file, creating parent
// directories as needed. UpdatedAt is refreshed on every save.
func SaveProject(path string, p *Project) error {
	if p == nil {
		return errors.New("nil project")
	}
	p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadProject reads a project from a JSON file.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if p.Name == "" {
		return nil, errors.New("project file has no name")
	}
	if p.Sections == nil {
		p.Sections = &model.SectionSet{}
	}
	return &p, nil
}
