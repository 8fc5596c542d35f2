package text

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font/sfnt"
)

// fontCache memoizes parsed fonts by file path, mirroring font_cache.rs's
// single global FontCache — except csgforge has no font bytes to embed, so
// every face must be loaded explicitly via LoadFont rather than defaulting
// to a bundled Liberation Sans.
type fontCache struct {
	mu    sync.Mutex
	faces map[string]*sfnt.Font
}

var cache = &fontCache{faces: make(map[string]*sfnt.Font)}

// LoadFont parses the TTF/OTF file at path and caches the result. Repeated
// calls with the same path return the cached *sfnt.Font without re-reading
// the file.
func LoadFont(path string) (*sfnt.Font, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	if f, ok := cache.faces[path]; ok {
		return f, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: reading font %q: %w", path, err)
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: parsing font %q: %w", path, err)
	}
	cache.faces[path] = f
	return f, nil
}
