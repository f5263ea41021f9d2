//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var LocalBin = filepath.Join(os.Getenv("PWD"), "/bin")

func makeLocalBin() error {
	if _, err := os.Stat(LocalBin); os.IsNotExist(err) {
		err = os.MkdirAll(LocalBin, os.ModePerm)
		if err != nil {
			return err
		}
	}
	return nil
}

// Tests runs the unit tests with coverage.
func Tests() error {
	mg.Deps(goCheck)
	return goRun("test", "-v", "-coverprofile=coverage.out", "./...")
}

// Lint runs go vet over the module.
func Lint() error {
	mg.Deps(goCheck)
	return sh.RunV("go", "vet", "./...")
}
