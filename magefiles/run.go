//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Renders the demo scene to snap.png.
func (Run) Snap() error {
	mg.Deps(Build.Snap)
	fmt.Println("Render demo scene...")
	_, err := executeCmd("../../bin/spritesnap", withArgs("-o", "../../snap.png", "testdata/demo.toml"), withDir("cmd/spritesnap"), withStream())
	return err
}

// Builds and starts the sandbox from its own directory so relative assets resolve.
func (Run) Sandbox() error {
	mg.Deps(Build.Sandbox)
	_, err := executeCmd("../../bin/sandbox", withDir("cmd/sandbox"), withStream())
	return err
}

// Opens the demo scene in the ebiten viewer.
func (Run) View() error {
	mg.Deps(Build.View)
	_, err := executeCmd("../../bin/spriteview", withArgs("../spritesnap/testdata/demo.toml"), withDir("cmd/spriteview"), withStream())
	return err
}
