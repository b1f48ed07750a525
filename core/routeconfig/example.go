package routeconfig

import (
	"fmt"

	"github.com/tristendillon/easyroutes/core/template_engine"
)

// ExampleConfig renders the commented starter routes.yaml written by init.
func ExampleConfig(engine *template_engine.TemplateEngine) ([]byte, error) {
	data := struct {
		GenerateCommand string
	}{
		GenerateCommand: "easyroutes generate",
	}

	content, err := engine.Render(template_engine.TEMPLATES.SCAFFOLD.ROUTES_YAML, data)
	if err != nil {
		return nil, fmt.Errorf("failed to render example config: %w", err)
	}
	return content, nil
}
