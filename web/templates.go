package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"

	"github.com/shopspring/decimal"
)

// CartTemplate is the page rendered by the cart view.
const CartTemplate = "store/cart.html"

//go:embed templates
var files embed.FS

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string {
		return d.StringFixed(2)
	},
}

// Templates parses every embedded page, naming each by its path under
// templates/ (for example "store/cart.html").
func Templates() (*template.Template, error) {
	root := template.New("").Funcs(funcs)
	err := fs.WalkDir(files, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".html") {
			return err
		}
		body, err := files.ReadFile(path)
		if err != nil {
			return err
		}
		name := strings.TrimPrefix(path, "templates/")
		if _, err := root.New(name).Parse(string(body)); err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return root, nil
}
