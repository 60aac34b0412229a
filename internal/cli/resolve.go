package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/aiforms/pkg/formdef"
)

// resolveDefinition loads ref as a YAML file when it names one, and otherwise
// looks it up by name in formsDir.
func resolveDefinition(ref, formsDir string) (*formdef.Definition, error) {
	if ref == "" {
		return nil, fmt.Errorf("no form given")
	}

	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		def, err := formdef.Load(ref)
		if err != nil {
			return nil, err
		}
		if def.Name == "" {
			def.Name = strings.TrimSuffix(filepath.Base(ref), filepath.Ext(ref))
		}
		return def, nil
	}

	catalog, err := formdef.LoadDir(formsDir)
	if err != nil {
		return nil, fmt.Errorf("form %q is not a file and %w", ref, err)
	}
	def, ok := catalog.Get(ref)
	if !ok {
		return nil, fmt.Errorf("form %q not found in %s (available: %s)", ref, formsDir, strings.Join(catalog.Names(), ", "))
	}
	return def, nil
}

// formFiles lists the YAML files of dir.
func formFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read forms directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !e.IsDir() && (ext == ".yaml" || ext == ".yml") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no forms in %s", dir)
	}
	return files, nil
}
