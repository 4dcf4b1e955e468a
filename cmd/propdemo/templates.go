package main

import (
	"strings"

	"github.com/plus3/propcore/memdb"
	"github.com/rotisserie/eris"
)

const unitTemplate = "Unit"

const defaultTemplates = `[
	{"name": "Unit", "components": ["Velocity", "Health"]}
]`

// newDatabase creates the backend with the demo components and templates. A
// non-empty templatesPath replaces the built-in templates.
func newDatabase(templatesPath string) (*memdb.Database, error) {
	db := memdb.NewDatabase(
		memdb.WithComponent("Velocity", 12),
		memdb.WithComponent("Health", 8),
	)

	if templatesPath != "" {
		if err := db.LoadTemplatesFile(templatesPath); err != nil {
			return nil, err
		}
	} else if err := db.LoadTemplates(strings.NewReader(defaultTemplates)); err != nil {
		return nil, eris.Wrap(err, "built-in templates are invalid")
	}

	if !db.HasTemplate(unitTemplate) {
		return nil, eris.Errorf("templates must define %q", unitTemplate)
	}
	return db, nil
}
