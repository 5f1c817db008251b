// Package seed loads read-only YAML seed files of contacts and notes into a
// contact book.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/smileynet/contactbook/internal/book"
	"github.com/smileynet/contactbook/internal/contact"
)

// DefaultName is the seed file name looked up in a filesystem.
const DefaultName = "seed.yaml"

// ErrInvalidName indicates a seed name that is not a valid fs path.
var ErrInvalidName = errors.New("seed: invalid file name")

// File is the decoded content of a seed file.
type File struct {
	Contacts []Entry  `yaml:"contacts"`
	Notes    []string `yaml:"notes"`
}

// Entry is one contact as written in a seed file.
type Entry struct {
	Name     string `yaml:"name"`
	Address  string `yaml:"address"`
	Phone    string `yaml:"phone"`
	Email    string `yaml:"email"`
	Birthday string `yaml:"birthday"` // YYYY-MM-DD
}

// Parse decodes seed YAML. Unknown fields are rejected; empty or
// comment-only input yields an empty File.
func Parse(data []byte) (File, error) {
	var f File
	if len(data) == 0 {
		return f, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("seed: parsing: %w", err)
	}
	return f, nil
}

// Load reads and parses name from fsys.
func Load(fsys fs.FS, name string) (File, error) {
	if !fs.ValidPath(name) || strings.Contains(name, `\`) {
		return File{}, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return File{}, fmt.Errorf("seed: reading %s: %w", name, err)
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("%w (%s)", err, name)
	}
	return f, nil
}

// LoadPath reads and parses the seed file at an OS path.
func LoadPath(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("seed: reading %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("%w (%s)", err, path)
	}
	return f, nil
}

// Apply adds every contact and note to b in file order. Contacts go through
// the book's validation; the first failure stops the load and is returned
// wrapped with the entry's position.
func (f File) Apply(b *book.Book) error {
	for i, e := range f.Contacts {
		c, err := contact.NewContact(e.Name, e.Address, e.Phone, e.Email, e.Birthday)
		if err != nil {
			return fmt.Errorf("seed: contact %d (%q): %w", i+1, e.Name, err)
		}
		if err := b.AddContact(c); err != nil {
			return fmt.Errorf("seed: contact %d (%q): %w", i+1, e.Name, err)
		}
	}
	for _, n := range f.Notes {
		b.AddNote(contact.NewNote(n))
	}
	return nil
}
