//go:build mage

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
	"github.com/pkg/errors"
)

const buildPackage = "github.com/G-Research/fuzzgen/internal/fuzzgenctl/build"

// Build compiles fuzzgen into ./bin, stamping version information into the binary.
func Build() error {
	mg.Deps(goCheck, makeLocalBin)
	ldflags, err := buildLdflags()
	if err != nil {
		return err
	}
	return goRun("build", "-ldflags", ldflags, "-o", binaryPath("fuzzgen"), "./cmd/fuzzgen")
}

// Example regenerates the example configuration from the test definitions, as a smoke test of the binary.
func Example() error {
	mg.Deps(Build)
	return sh.RunV(
		binaryPath("fuzzgen"), "generate",
		"--definitions", "internal/fuzzergen/testdata/definitions.yaml",
		"--format", "yaml",
	)
}

// Clean removes build output.
func Clean() {
	fmt.Println("Cleaning...")
	for _, path := range []string{"bin", "dist"} {
		os.RemoveAll(path)
	}
}

func buildLdflags() (string, error) {
	commit, err := sh.Output("git", "rev-parse", "--short", "HEAD")
	if err != nil {
		commit = "UNKNOWN"
	}
	version := os.Getenv("FUZZGEN_VERSION")
	if version == "" {
		version = "dev"
	}
	flags := map[string]string{
		"ReleaseVersion": version,
		"GitCommit":      commit,
		"BuildTime":      time.Now().UTC().Format(time.RFC3339),
	}
	var parts []string
	for name, value := range flags {
		parts = append(parts, fmt.Sprintf("-X %s.%s=%s", buildPackage, name, value))
	}
	return strings.Join(parts, " "), nil
}

func goRun(args ...string) error {
	return sh.RunV("go", args...)
}

func goCheck() error {
	out, err := sh.Output("go", "version")
	if err != nil {
		return errors.Wrap(err, "go is not installed")
	}
	if !strings.HasPrefix(out, "go version go1.") {
		return errors.Errorf("unexpected go version output: %s", out)
	}
	return nil
}
