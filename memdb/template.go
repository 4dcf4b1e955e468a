package memdb

import (
	"io"
	"os"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/goccy/go-json"
	"github.com/plus3/propcore/game"
	"github.com/rotisserie/eris"
)

// EmptyTemplate names the template that carries only the Owner component.
const EmptyTemplate = "Empty"

// Template describes the components and initial transform of entities created
// from it. Every template implicitly includes the Owner component.
type Template struct {
	Name       string     `json:"name"`
	Components []string   `json:"components"`
	Position   [3]float32 `json:"position"`
	Scale      [3]float32 `json:"scale,omitempty"`
}

type compiledTemplate struct {
	name       string
	components []game.ComponentId
	position   mgl32.Vec3
	scale      mgl32.Vec3
}

// AddTemplate compiles and stores a template, replacing any template with the
// same name. Every listed component must already be registered.
func (db *Database) AddTemplate(tmpl Template) error {
	if tmpl.Name == "" {
		return eris.New("template has no name")
	}

	components := []game.ComponentId{db.byName[game.OwnerComponent]}
	for _, name := range tmpl.Components {
		id, ok := db.byName[name]
		if !ok {
			return eris.Wrapf(game.ErrUnknownComponent, "template %q references %q", tmpl.Name, name)
		}
		if !slices.Contains(components, id) {
			components = append(components, id)
		}
	}
	slices.Sort(components)

	scale := mgl32.Vec3(tmpl.Scale)
	if scale == (mgl32.Vec3{}) {
		scale = mgl32.Vec3{1, 1, 1}
	}

	db.templates[tmpl.Name] = &compiledTemplate{
		name:       tmpl.Name,
		components: components,
		position:   mgl32.Vec3(tmpl.Position),
		scale:      scale,
	}
	return nil
}

func (db *Database) mustAddTemplate(tmpl Template) {
	if err := db.AddTemplate(tmpl); err != nil {
		panic(err)
	}
}

// HasTemplate reports whether name is a known template.
func (db *Database) HasTemplate(name string) bool {
	_, ok := db.templates[name]
	return ok
}

// Templates returns the names of all known templates, sorted.
func (db *Database) Templates() []string {
	names := make([]string, 0, len(db.templates))
	for name := range db.templates {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LoadTemplates decodes a JSON array of templates from r and adds each one.
// Decoding stops at the first invalid template.
func (db *Database) LoadTemplates(r io.Reader) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var templates []Template
	if err := dec.Decode(&templates); err != nil {
		return eris.Wrap(err, "failed to decode templates")
	}

	for _, tmpl := range templates {
		if err := db.AddTemplate(tmpl); err != nil {
			return err
		}
	}
	return nil
}

// LoadTemplatesFile loads templates from the JSON file at path.
func (db *Database) LoadTemplatesFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return eris.Wrapf(err, "failed to open templates file %s", path)
	}
	defer f.Close()

	return eris.Wrapf(db.LoadTemplates(f), "failed to load templates from %s", path)
}
