package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadShader reads a GLSL source file under Root/shaders.
func LoadShader(name string) (string, error) {
	path := filepath.Join(Root, "shaders", name)
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", name, err)
	}
	src := strings.TrimRight(string(b), "\x00")
	if !strings.Contains(src, "#version") {
		return "", fmt.Errorf("load shader %q: missing #version directive", name)
	}
	return src, nil
}
