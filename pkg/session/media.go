package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrMissingMedia   = errors.New("missing media")
	ErrDuplicateMedia = errors.New("duplicate media names")
)

// MissingMediaError lists every required media which does not exist.
type MissingMediaError struct {
	Missing []string
}

func (this *MissingMediaError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingMedia, strings.Join(this.Missing, ", "))
}

func (this *MissingMediaError) Is(target error) bool {
	return target == ErrMissingMedia
}

// DuplicateMediaError lists every media name used more than once.
type DuplicateMediaError struct {
	Names []string
}

func (this *DuplicateMediaError) Error() string {
	return fmt.Sprintf("%v: %s", ErrDuplicateMedia, strings.Join(this.Names, ", "))
}

func (this *DuplicateMediaError) Is(target error) bool {
	return target == ErrDuplicateMedia
}

type MediaItem struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

func (this MediaItem) String() string {
	return this.Name + "=" + this.Path
}

type MediaItems []MediaItem

// Set parses name=path and appends it. If no name is given the base name of
// the path is used.
func (this *MediaItems) Set(plain string) error {
	plain = strings.TrimSpace(plain)
	if plain == "" {
		return fmt.Errorf("illegal-media: %s", plain)
	}
	var v MediaItem
	if name, path, ok := strings.Cut(plain, "="); ok {
		v = MediaItem{strings.TrimSpace(name), strings.TrimSpace(path)}
	} else {
		v = MediaItem{filepath.Base(plain), plain}
	}
	if v.Name == "" || v.Path == "" {
		return fmt.Errorf("illegal-media: %s", plain)
	}
	*this = append(*this, v)
	return nil
}

func (this MediaItems) Strings() []string {
	result := make([]string, len(this))
	for i, v := range this {
		result[i] = v.String()
	}
	return result
}

func (this MediaItems) String() string {
	return strings.Join(this.Strings(), ",")
}

func (this MediaItems) IsCumulative() bool {
	return true
}

// Resolve returns a copy with all relative paths resolved against base.
func (this MediaItems) Resolve(base string) MediaItems {
	result := make(MediaItems, len(this))
	for i, v := range this {
		if base != "" && !filepath.IsAbs(v.Path) {
			v.Path = filepath.Join(base, v.Path)
		}
		result[i] = v
	}
	return result
}

// Check fails with a DuplicateMediaError if a name is used more than once and
// with a MissingMediaError if at least one of the items does not exist as a
// regular file.
func (this MediaItems) Check() error {
	seen := make(map[string]int, len(this))
	var duplicates []string
	for _, v := range this {
		seen[v.Name]++
		if seen[v.Name] == 2 {
			duplicates = append(duplicates, v.Name)
		}
	}
	if len(duplicates) > 0 {
		return &DuplicateMediaError{duplicates}
	}

	var missing []string
	for _, v := range this {
		fi, err := os.Stat(v.Path)
		if err != nil || fi.IsDir() {
			missing = append(missing, v.Path)
		}
	}
	if len(missing) > 0 {
		return &MissingMediaError{missing}
	}
	return nil
}
