//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

const binDir = "bin"

// Builds the GLFW sandbox into bin/.
func (Build) Sandbox() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return err
	}
	_, err := executeCmd("go", withArgs("build", "-o", binDir+"/sandbox", "./cmd/sandbox"), withStream())
	return err
}

// Builds the headless spritesnap renderer into bin/.
func (Build) Snap() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return err
	}
	_, err := executeCmd("go", withArgs("build", "-o", binDir+"/spritesnap", "./cmd/spritesnap"), withEnv("CGO_ENABLED=0"), withStream())
	return err
}

// Builds the ebiten scene viewer into bin/.
func (Build) View() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return err
	}
	_, err := executeCmd("go", withArgs("build", "-o", binDir+"/spriteview", "./cmd/spriteview"), withStream())
	return err
}
