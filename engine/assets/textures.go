package assets

import (
	"cmp"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"path"
	"path/filepath"
	"slices"

	"github.com/google/uuid"
	"github.com/hubastard/sprig/engine/core"
)

// Uploader moves decoded images into graphics memory. Every pipeline backend implements it.
type Uploader interface {
	UploadTexture(img *image.RGBA) (uint32, error)
	DeleteTexture(handle uint32)
}

// memKeyPrefix marks textures created from memory rather than from a file.
const memKeyPrefix = "mem:"

// Texture is a reference-counted texture owned by a TextureManager.
type Texture struct {
	mgr    *TextureManager
	key    string
	handle uint32
	width  int
	height int
	imageW int
	imageH int
	refs   int
}

var _ core.Texture = (*Texture)(nil)

func (t *Texture) Key() string      { return t.key }
func (t *Texture) Width() int       { return t.width }
func (t *Texture) Height() int      { return t.height }
func (t *Texture) ImageWidth() int  { return t.imageW }
func (t *Texture) ImageHeight() int { return t.imageH }
func (t *Texture) Handle() uint32   { return t.handle }
func (t *Texture) Refs() int        { return t.refs }

func (t *Texture) UVRight() float32  { return float32(t.imageW) / float32(t.width) }
func (t *Texture) UVBottom() float32 { return float32(t.imageH) / float32(t.height) }

func (t *Texture) Ref() { t.refs++ }

// Unref drops a reference; the last one evicts the texture from its manager
// and deletes the GPU copy.
func (t *Texture) Unref() {
	if t.refs <= 0 {
		panic(fmt.Sprintf("assets: texture %q unreferenced more than referenced", t.key))
	}
	t.refs--
	if t.refs == 0 {
		t.mgr.evict(t)
	}
}

func (t *Texture) set(handle uint32, padded *image.RGBA, imageW, imageH int) {
	t.handle = handle
	t.width, t.height = padded.Bounds().Dx(), padded.Bounds().Dy()
	t.imageW, t.imageH = imageW, imageH
}

// TextureManager loads textures from a directory on first use and keeps them
// resident while referenced. Keys are slash-separated paths relative to root.
//
// All methods except the watcher goroutine run on the render thread.
type TextureManager struct {
	root     string
	up       Uploader
	textures map[string]*Texture

	watch *watcher
}

var _ core.TextureProvider = (*TextureManager)(nil)

func NewTextureManager(root string, up Uploader) *TextureManager {
	return &TextureManager{
		root:     root,
		up:       up,
		textures: make(map[string]*Texture),
	}
}

// Acquire returns the resident texture for key, loading and uploading it on a
// miss. It does not take a reference. Missing or undecodable files wrap
// core.ErrTextureNotFound.
func (m *TextureManager) Acquire(key string) (core.Texture, error) {
	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}
	if t, ok := m.textures[key]; ok {
		return t, nil
	}

	img, err := LoadImage(m.path(key))
	if err != nil {
		return nil, fmt.Errorf("load texture %q: %w: %w", key, core.ErrTextureNotFound, err)
	}
	t, err := m.upload(key, img)
	if err != nil {
		return nil, err
	}
	core.LogDebug("texture %q loaded (%dx%d in %dx%d, handle %d)", key, t.imageW, t.imageH, t.width, t.height, t.handle)
	return t, nil
}

// CreateFromImage uploads an in-memory image under a generated key. Like
// Acquire it returns the texture without a reference.
func (m *TextureManager) CreateFromImage(img *image.RGBA) (core.Texture, error) {
	return m.upload(memKeyPrefix+uuid.NewString(), img)
}

func (m *TextureManager) upload(key string, img *image.RGBA) (*Texture, error) {
	padded, iw, ih := PadPow2(img)
	handle, err := m.up.UploadTexture(padded)
	if err != nil {
		return nil, fmt.Errorf("upload texture %q: %w", key, err)
	}
	t := &Texture{mgr: m, key: key}
	t.set(handle, padded, iw, ih)
	m.textures[key] = t
	return t, nil
}

func (m *TextureManager) evict(t *Texture) {
	if m.textures[t.key] != t {
		return
	}
	delete(m.textures, t.key)
	m.up.DeleteTexture(t.handle)
	core.LogDebug("texture %q released (handle %d)", t.key, t.handle)
	t.handle = 0
}

// reload re-decodes a resident file texture and swaps in a fresh upload.
// Sprites keep their UV windows, so a reloaded image should keep its size.
func (m *TextureManager) reload(key string) error {
	t, ok := m.textures[key]
	if !ok {
		return nil
	}
	img, err := LoadImage(m.path(key))
	if err != nil {
		return fmt.Errorf("reload texture %q: %w", key, err)
	}
	padded, iw, ih := PadPow2(img)
	handle, err := m.up.UploadTexture(padded)
	if err != nil {
		return fmt.Errorf("reload texture %q: %w", key, err)
	}
	oldW, oldH := t.imageW, t.imageH
	m.up.DeleteTexture(t.handle)
	t.set(handle, padded, iw, ih)
	if oldW != t.imageW || oldH != t.imageH {
		core.LogWarn("texture %q changed size on reload (%dx%d -> %dx%d); existing sprites keep their old windows",
			key, oldW, oldH, t.imageW, t.imageH)
	}
	core.LogInfo("texture %q reloaded", key)
	return nil
}

// ResidentTexture describes one cached texture.
type ResidentTexture struct {
	Key           string
	Refs          int
	Width, Height int
}

// Resident lists cached textures sorted by key.
func (m *TextureManager) Resident() []ResidentTexture {
	out := make([]ResidentTexture, 0, len(m.textures))
	for _, t := range m.textures {
		out = append(out, ResidentTexture{Key: t.key, Refs: t.refs, Width: t.imageW, Height: t.imageH})
	}
	slices.SortFunc(out, func(a, b ResidentTexture) int { return cmp.Compare(a.Key, b.Key) })
	return out
}

// Close stops watching and deletes every resident texture, referenced or not.
func (m *TextureManager) Close() error {
	var err error
	if m.watch != nil {
		err = m.watch.close()
		m.watch = nil
	}
	for key, t := range m.textures {
		if t.refs > 0 {
			core.LogWarn("texture %q still has %d references at shutdown", key, t.refs)
		}
		m.up.DeleteTexture(t.handle)
		t.handle = 0
		delete(m.textures, key)
	}
	return err
}

func (m *TextureManager) path(key string) string {
	return filepath.Join(m.root, filepath.FromSlash(key))
}

// keyFor maps a file path under root back to its key.
func (m *TextureManager) keyFor(p string) (string, bool) {
	rel, err := filepath.Rel(m.root, p)
	if err != nil {
		return "", false
	}
	key, err := cleanKey(filepath.ToSlash(rel))
	return key, err == nil
}

func cleanKey(key string) (string, error) {
	k := path.Clean(key)
	if !fs.ValidPath(k) || k == "." {
		return "", fmt.Errorf("texture key %q: %w", key, errors.Join(core.ErrTextureNotFound, fs.ErrInvalid))
	}
	return k, nil
}
