package generator

import (
	"fmt"
	"path/filepath"

	"github.com/tristendillon/easyroutes/core/config"
	"github.com/tristendillon/easyroutes/core/logger"
	"github.com/tristendillon/easyroutes/core/models"
	"github.com/tristendillon/easyroutes/core/template_engine"
	"github.com/tristendillon/easyroutes/core/writer"
)

type MaterializeResult int

const (
	Created MaterializeResult = iota
	// AlreadyExists means the file was left untouched.
	AlreadyExists
)

func (r MaterializeResult) String() string {
	if r == AlreadyExists {
		return "already exists"
	}
	return "created"
}

type ComponentGenerator struct {
	cfg    *config.Config
	fsys   writer.FileSystem
	engine *template_engine.TemplateEngine
}

func NewComponentGenerator(cfg *config.Config, fsys writer.FileSystem, engine *template_engine.TemplateEngine) *ComponentGenerator {
	return &ComponentGenerator{cfg: cfg, fsys: fsys, engine: engine}
}

// ComponentPath is src/components/<C>/<C>.<ext>.
func (cg *ComponentGenerator) ComponentPath(node *models.RouteNode) string {
	return filepath.Join(cg.cfg.ComponentsRoot(), node.Component, node.Component+"."+cg.cfg.Extension)
}

// Materialize writes the component file for node unless one already exists.
// parentPath only shows up in logs.
func (cg *ComponentGenerator) Materialize(node *models.RouteNode, parentPath string) (MaterializeResult, error) {
	componentDir := filepath.Join(cg.cfg.ComponentsRoot(), node.Component)
	if err := cg.fsys.MkdirAll(componentDir); err != nil {
		return Created, err
	}

	componentPath := cg.ComponentPath(node)
	exists, err := cg.fsys.Exists(componentPath)
	if err != nil {
		return Created, err
	}
	if exists {
		logger.Warn("Component %s already exists - skipping", node.Component)
		return AlreadyExists, nil
	}

	data := struct {
		Component string
		Links     []NavLink
	}{
		Component: node.Component,
		Links:     InlineLinks(node),
	}

	if err := cg.engine.GenerateFile(cg.fsys, template_engine.TEMPLATES.REACT.COMPONENT, componentPath, data); err != nil {
		return Created, fmt.Errorf("failed to generate component %s: %w", node.Component, err)
	}

	logger.Info("Created component: %s", node.Component)
	logger.Debug("  %s (parent %q)", componentPath, parentPath)
	return Created, nil
}

// MaterializeAll ensures the source tree exists, then materializes every node
// pre-order. It stops at the first error; files already written stay.
func (cg *ComponentGenerator) MaterializeAll(tree *models.RouteTree, report *Report) error {
	if err := cg.fsys.MkdirAll(cg.cfg.ComponentsRoot()); err != nil {
		return err
	}

	var visit func(nodes []*models.RouteNode, parentPath string) error
	visit = func(nodes []*models.RouteNode, parentPath string) error {
		for _, node := range nodes {
			result, err := cg.Materialize(node, parentPath)
			if err != nil {
				return err
			}

			switch result {
			case Created:
				report.Created = append(report.Created, cg.ComponentPath(node))
			case AlreadyExists:
				report.Skipped = append(report.Skipped, cg.ComponentPath(node))
			}

			if err := visit(node.Children, node.Path); err != nil {
				return err
			}
		}
		return nil
	}

	return visit(tree.Routes, "")
}
