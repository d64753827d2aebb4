package fontatlas

import (
	"github.com/gogpu/fontatlas/internal/cache"
)

// libraryKey identifies one loaded atlas. backend is the resolved upload
// target, so a CPU-only font is never handed out where a texture was
// requested or the other way round. Backends are compared by identity and
// must therefore be comparable, such as pointer types.
type libraryKey struct {
	path    string
	letters string
	config  configKey
	backend Backend
}

// Library caches loaded fonts by path, character set and options. Fonts
// evicted from the cache are closed, so callers must not keep using a Font
// after more than Capacity other fonts were requested.
//
// Library is safe for concurrent use.
type Library struct {
	fonts *cache.Cache[libraryKey, *Font]
	opts  []Option
}

// NewLibrary creates a Library holding at most capacity fonts. A capacity
// of 0 or less means unlimited. opts apply to every load and may be
// extended per Get call.
func NewLibrary(capacity int, opts ...Option) *Library {
	return &Library{
		fonts: cache.New(capacity, func(k libraryKey, f *Font) {
			Logger().Debug("fontatlas: library evicted font", "path", k.path, "name", f.Name)
			if err := f.Close(); err != nil {
				Logger().Warn("fontatlas: close evicted font", "path", k.path, "error", err)
			}
		}),
		opts: opts,
	}
}

// Get returns the cached font for path and letters, loading it on a miss.
func (l *Library) Get(path, letters string, opts ...Option) (*Font, error) {
	all := make([]Option, 0, len(l.opts)+len(opts))
	all = append(all, l.opts...)
	all = append(all, opts...)
	cfg, err := newConfig(all)
	if err != nil {
		return nil, err
	}
	key := libraryKey{path: path, letters: letters, config: cfg.key(), backend: cfg.resolveBackend()}
	return l.fonts.GetOrCreate(key, func() (*Font, error) {
		return Load(path, letters, all...)
	})
}

// Len returns the number of cached fonts.
func (l *Library) Len() int { return l.fonts.Len() }

// LibraryStats reports cache usage of a Library.
type LibraryStats = cache.Stats

// Stats returns hit and miss counters of the cache.
func (l *Library) Stats() LibraryStats { return l.fonts.Stats() }

// Close closes and forgets every cached font.
func (l *Library) Close() error {
	l.fonts.Clear()
	return nil
}
