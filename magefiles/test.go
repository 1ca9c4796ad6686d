//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs every package test except the GL backend, which needs a display.
func (Test) All() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./engine/assets/...", "./engine/colors/...",
		"./engine/core/...", "./engine/gfx/paint/...", "./engine/gfx/raster/...", "./engine/gfx/sprite/...",
		"./engine/gfx/ebitenpipe/...", "./engine/scene/...", "./engine/stage/...", "./cmd/spritesnap/..."), withStream())
	return err
}
