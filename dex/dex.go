// Package dex holds the immutable definitions a battle is built from: the type
// chart, moves, abilities, items and species with their alternate forms.
package dex

import (
	"cmp"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const DEFAULT_LEVEL = 50

var (
	ErrUnknownMove    = errors.New("unknown move")
	ErrUnknownSpecies = errors.New("unknown species")
)

var internalLogger = logr.Discard()

func SetInternalLogger(logger logr.Logger) {
	internalLogger = logger.WithName("dex")
}

//go:embed data/*.yaml
var embedded embed.FS

// Dex is a loaded, read-only data set. It is safe for concurrent use.
type Dex struct {
	moves        map[MoveID]*MoveDefinition
	moveNames    map[string]MoveID
	species      map[FormKey]*SpeciesTemplate
	speciesNames map[string]SpeciesID
}

// DisplayName turns a kebab-case data name like "thunder-punch" into "Thunder Punch".
// A Caser keeps state so one is made per call.
func DisplayName(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "-", " "))
}

var defaultDex = sync.OnceValues(func() (*Dex, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return Load(sub)
})

// Default returns the data set compiled into the binary. It is only loaded once.
func Default() (*Dex, error) {
	return defaultDex()
}

// MustDefault is Default for callers that treat a broken embedded data set as a build error
func MustDefault() *Dex {
	d, err := Default()
	if err != nil {
		panic(err)
	}
	return d
}

func decodeFile[T any](fsys fs.FS, path string) (T, error) {
	var out T

	raw, err := fs.ReadFile(fsys, path)
	if err != nil {
		return out, fmt.Errorf("dex: %w", err)
	}

	if err := yaml.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("dex: %s: %w", path, err)
	}

	return out, nil
}

// Load reads moves.yaml and species.yaml from fsys and resolves every cross reference
func Load(fsys fs.FS) (*Dex, error) {
	var moveData moveFile
	var speciesData speciesFile

	var g errgroup.Group
	g.Go(func() error {
		var err error
		moveData, err = decodeFile[moveFile](fsys, "moves.yaml")
		return err
	})
	g.Go(func() error {
		var err error
		speciesData, err = decodeFile[speciesFile](fsys, "species.yaml")
		return err
	})

	if err := g.Wait(); err != nil {
		internalLogger.Error(err, "could not read data files")
		return nil, err
	}

	d := &Dex{
		moves:        make(map[MoveID]*MoveDefinition, len(moveData.Moves)),
		moveNames:    make(map[string]MoveID, len(moveData.Moves)),
		species:      make(map[FormKey]*SpeciesTemplate, len(speciesData.Species)),
		speciesNames: make(map[string]SpeciesID, len(speciesData.Species)),
	}

	for _, record := range moveData.Moves {
		move, err := record.toMove()
		if err != nil {
			return nil, fmt.Errorf("dex: moves.yaml: move %q: %w", record.Name, err)
		}

		name := strings.ToLower(move.Name)
		if _, dup := d.moves[move.ID]; dup {
			return nil, fmt.Errorf("dex: moves.yaml: duplicate move id %d", move.ID)
		}
		if _, dup := d.moveNames[name]; dup {
			return nil, fmt.Errorf("dex: moves.yaml: duplicate move name %q", move.Name)
		}

		d.moves[move.ID] = move
		d.moveNames[name] = move.ID
	}

	internalLogger.V(1).Info("loaded moves", "count", len(d.moves))

	for _, record := range speciesData.Species {
		templates, err := record.toSpecies(d.moveNames)
		if err != nil {
			return nil, fmt.Errorf("dex: species.yaml: species %q: %w", record.Name, err)
		}

		base := templates[0]
		name := strings.ToLower(base.Name)
		if _, dup := d.speciesNames[name]; dup {
			return nil, fmt.Errorf("dex: species.yaml: duplicate species name %q", base.Name)
		}
		d.speciesNames[name] = base.ID

		for _, template := range templates {
			if _, dup := d.species[template.Key()]; dup {
				return nil, fmt.Errorf("dex: species.yaml: duplicate species %d form %q", template.ID, template.Form)
			}
			d.species[template.Key()] = template
		}
	}

	internalLogger.V(1).Info("loaded species", "count", len(d.speciesNames), "forms", len(d.species)-len(d.speciesNames))

	return d, nil
}

func (d *Dex) Move(id MoveID) (*MoveDefinition, bool) {
	move, ok := d.moves[id]
	return move, ok
}

func (d *Dex) MoveByName(name string) (*MoveDefinition, error) {
	id, ok := d.moveNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMove, name)
	}
	return d.moves[id], nil
}

// Form looks up one variant in the flat form table
func (d *Dex) Form(id SpeciesID, form FormID) (*SpeciesTemplate, bool) {
	template, ok := d.species[FormKey{Species: id, Form: form}]
	return template, ok
}

// SpeciesByName returns the base form of a species
func (d *Dex) SpeciesByName(name string) (*SpeciesTemplate, error) {
	id, ok := d.speciesNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSpecies, name)
	}

	template, _ := d.Form(id, FORM_BASE)
	return template, nil
}

// MovesOf resolves the move list of a template
func (d *Dex) MovesOf(template *SpeciesTemplate) []*MoveDefinition {
	moves := make([]*MoveDefinition, 0, len(template.Moves))
	for _, id := range template.Moves {
		if move, ok := d.moves[id]; ok {
			moves = append(moves, move)
		}
	}
	return moves
}

// AllSpecies returns every base form ordered by id
func (d *Dex) AllSpecies() []*SpeciesTemplate {
	all := make([]*SpeciesTemplate, 0, len(d.speciesNames))
	for key, template := range d.species {
		if key.Form == FORM_BASE {
			all = append(all, template)
		}
	}

	slices.SortFunc(all, func(a, b *SpeciesTemplate) int { return cmp.Compare(a.ID, b.ID) })
	return all
}

// AllMoves returns every move ordered by id
func (d *Dex) AllMoves() []*MoveDefinition {
	all := make([]*MoveDefinition, 0, len(d.moves))
	for _, move := range d.moves {
		all = append(all, move)
	}

	slices.SortFunc(all, func(a, b *MoveDefinition) int { return cmp.Compare(a.ID, b.ID) })
	return all
}

// FormsOf returns every template of a species, base form first
func (d *Dex) FormsOf(id SpeciesID) []*SpeciesTemplate {
	forms := make([]*SpeciesTemplate, 0, 2)
	for key, template := range d.species {
		if key.Species == id {
			forms = append(forms, template)
		}
	}

	slices.SortFunc(forms, func(a, b *SpeciesTemplate) int {
		if a.Form == FORM_BASE {
			return -1
		}
		if b.Form == FORM_BASE {
			return 1
		}
		return cmp.Compare(a.Form, b.Form)
	})
	return forms
}
