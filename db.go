package ici

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// ErrPaletteNotFound is returned when a palette ID or name has no entry
// in the store.
var ErrPaletteNotFound = errors.New("ici: palette not found")

// PaletteDB is a sqlite-backed store of named palettes, for resolving the
// ID and name references an image file can carry instead of colors.
type PaletteDB struct {
	db *sql.DB
}

// NewPaletteDB opens or creates a palette store at file.
func NewPaletteDB(file string) (*PaletteDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS palette (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, colors BLOB NOT NULL)"); err != nil {
		return nil, err
	}

	return &PaletteDB{
		db: db,
	}, nil
}

// Close closes the store.
func (p *PaletteDB) Close() error {
	return p.db.Close()
}

// Put stores colors under name, replacing any existing entry, and
// returns the ID the palette can be referenced by.
func (p *PaletteDB) Put(name string, colors []Color) (uint16, error) {
	if err := checkCount("palette name length", len(name)); err != nil {
		return 0, err
	}
	pal, err := PaletteOf(colors)
	if err != nil {
		return 0, err
	}

	buf := new(bytes.Buffer)
	if err := EncodePalette(buf, pal); err != nil {
		return 0, err
	}

	if _, err := p.db.Exec("INSERT INTO palette (name, colors) VALUES (?, ?) ON CONFLICT (name) DO UPDATE SET colors = excluded.colors", name, buf.Bytes()); err != nil {
		return 0, err
	}

	var id int64
	if err := p.db.QueryRow("SELECT id FROM palette WHERE name = ?", name).Scan(&id); err != nil {
		return 0, err
	}
	if id < 0 || id > 65535 {
		return 0, fmt.Errorf("ici: palette id %d outside uint16 range", id)
	}
	return uint16(id), nil
}

func scanColors(row *sql.Row) ([]Color, error) {
	var blob []byte
	if err := row.Scan(&blob); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPaletteNotFound
		}
		return nil, err
	}
	pal, err := DecodePalette(bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}
	return pal.Colors(), nil
}

// ByName returns the colors stored under name.
func (p *PaletteDB) ByName(name string) ([]Color, error) {
	return scanColors(p.db.QueryRow("SELECT colors FROM palette WHERE name = ?", name))
}

// ByID returns the colors stored under id.
func (p *PaletteDB) ByID(id uint16) ([]Color, error) {
	return scanColors(p.db.QueryRow("SELECT colors FROM palette WHERE id = ?", id))
}

// Resolve returns the colors a palette refers to: its own colors for
// PaletteColors, a store lookup for PaletteID and PaletteName, and nil
// for PaletteNone.
func (p *PaletteDB) Resolve(pal Palette) ([]Color, error) {
	switch pal.Kind() {
	case PaletteColors:
		return pal.Colors(), nil
	case PaletteID:
		return p.ByID(pal.ID())
	case PaletteName:
		return p.ByName(pal.Name())
	}
	return nil, nil
}
