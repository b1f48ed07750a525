package cmd

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/tristendillon/easyroutes/core/shared"
)

func TestWatchPatterns(t *testing.T) {
	dir := filepath.Join(string(filepath.Separator), "project")

	type tc struct {
		configPath string
		include    []string
		want       []string
		wantErr    bool
	}

	tests := map[string]tc{
		"default routes file": {configPath: filepath.Join(dir, "routes.yaml"), want: []string{"routes.yaml"}},
		"nested with include": {
			configPath: filepath.Join(dir, "config", "routes.json"),
			include:    []string{"src/**/*.css"},
			want:       []string{"config/routes.json", "src/**/*.css"},
		},
		"dotdot prefixed name": {configPath: filepath.Join(dir, "..routes.yaml"), want: []string{"..routes.yaml"}},
		"parent directory":     {configPath: filepath.Join(dir, "..", "routes.yaml"), wantErr: true},
		"sibling project":      {configPath: filepath.Join(string(filepath.Separator), "other", "routes.yaml"), wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := watchPatterns(dir, tt.configPath, tt.include)
			if tt.wantErr {
				if !errors.Is(err, shared.ErrMissingPrecondition) {
					t.Fatalf("err = %v, want ErrMissingPrecondition", err)
				}
				if shared.HintOf(err) == "" {
					t.Error("expected a hint")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("watchPatterns = %v, want %v", got, tt.want)
			}
		})
	}
}
