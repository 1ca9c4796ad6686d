package core

import "errors"

// ErrTextureNotFound is wrapped by providers when an asset is missing or cannot be decoded.
var ErrTextureNotFound = errors.New("texture not found")

// Texture is an image resident in graphics memory, shared between sprites.
//
// Width/Height are the backing (allocated) dimensions, which may be padded
// beyond ImageWidth/ImageHeight. UVRight/UVBottom are the normalized bounds of
// the image inside the backing store.
//
// The reference count is owned by the provider that created the texture: the
// texture is freed by that provider once Unref brings it to zero. It is not
// safe for concurrent use; all calls happen on the render thread.
type Texture interface {
	Width() int
	Height() int
	ImageWidth() int
	ImageHeight() int
	UVRight() float32
	UVBottom() float32
	Handle() uint32
	Ref()
	Unref()
}

// TextureProvider resolves resource keys to textures, loading them on first use.
// Acquire never takes a reference on behalf of the caller.
type TextureProvider interface {
	Acquire(key string) (Texture, error)
}
