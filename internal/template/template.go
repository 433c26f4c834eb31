package template

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"text/template"

	"github.com/Zigazou/DSM/internal/errors"
)

// Context maps placeholder names to their substitution values. Every
// placeholder referenced by a template must have an entry.
type Context map[string]string

// missingKey extracts the placeholder name from text/template's
// missing-key error message.
var missingKey = regexp.MustCompile(`map has no entry for key "([^"]+)"`)

// Render resolves a named template of a driver against the context.
// Rendering is pure substitution; an unresolved placeholder fails with
// a missing-variable error instead of being silently ignored.
func Render(driverName, name string, ctx Context) (string, error) {
	tmplPath := fmt.Sprintf("%s/%s.tmpl", driverName, name)

	fs, err := getTemplateFS(driverName)
	if err != nil {
		return "", err
	}

	content, err := fs.ReadFile(tmplPath)
	if err != nil {
		return "", fmt.Errorf("template not found: %s/%s", driverName, name)
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", tmplPath, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		if m := missingKey.FindStringSubmatch(err.Error()); m != nil {
			return "", errors.MissingVariable(m[1])
		}
		return "", errors.Wrap(errors.ErrCodeTemplate, "failed to render "+tmplPath, err)
	}

	return buf.String(), nil
}

// FileSpec describes one artifact to render: which template, where it
// goes, and its file mode. Control scripts are executable, configuration
// files are not.
type FileSpec struct {
	Template string
	Dest     string
	Mode     os.FileMode
}

// RenderFiles renders a list of artifacts for a driver. The first
// failure aborts; the caller is responsible for rolling back any
// partially written site directory.
func RenderFiles(driverName string, specs []FileSpec, ctx Context) error {
	for _, spec := range specs {
		text, err := Render(driverName, spec.Template, ctx)
		if err != nil {
			return err
		}
		if err := os.WriteFile(spec.Dest, []byte(text), spec.Mode); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, "cannot write "+spec.Dest, err)
		}
	}
	return nil
}
