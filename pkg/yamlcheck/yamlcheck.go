// Package yamlcheck verifies that YAML files parse.
package yamlcheck

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aretw0/tutorcheck/pkg/core"
	"gopkg.in/yaml.v3"
)

// ValidateFile decodes every document in the file at path.
func ValidateFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return validate(f)
}

func validate(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Validate checks every file relative to root. A broken file never stops the
// remaining ones.
func Validate(root string, files []string) core.Result {
	res := core.NewResult("YAML")
	for _, name := range files {
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, filepath.FromSlash(name))
		}
		if err := ValidateFile(path); err != nil {
			res.Fail("%s has YAML errors: %s", name, message(err))
			continue
		}
		res.OK("%s is valid YAML", name)
	}
	return res
}

func message(err error) string {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return fmt.Sprintf("%s: %v", pathErr.Op, pathErr.Err)
	}
	return err.Error()
}
