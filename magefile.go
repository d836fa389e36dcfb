//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target to run when none is specified
var Default = Build

// Build compiles the mkinsert binary into the bin/ directory.
func Build() error {
	fmt.Println("Building...")
	return sh.Run("go", "build", "-ldflags", "-X main.Version="+version(), "-o", "./bin/mkinsert", "./cmd/mkinsert")
}

// Install copies the mkinsert binary to /usr/local/bin.
func Install() error {
	mg.Deps(Build)
	fmt.Println("Installing...")
	return sh.Run("cp", "bin/mkinsert", "/usr/local/bin/mkinsert")
}

// version is MKINSERT_VERSION, or the latest git tag, or "dev".
func version() string {
	if v := os.Getenv("MKINSERT_VERSION"); v != "" {
		return v
	}
	if v, err := sh.Output("git", "describe", "--tags", "--always"); err == nil && v != "" {
		return v
	}
	return "dev"
}

// Test runs all tests in the project with verbose output.
func Test() error {
	fmt.Println("Running Tests...")
	return sh.Run("go", "test", "-v", "./...")
}

// Bench runs the tokenizer, generator and apply benchmarks.
func Bench() error {
	fmt.Println("Running Benchmarks...")
	return sh.Run("go", "test", "-run", "^$", "-bench", ".", "-benchmem",
		"./converters/csv", "./generator", "./converters")
}

// Example converts the bundled sample into testdata/out/people.sql.
func Example() error {
	mg.Deps(Build)
	if err := os.MkdirAll("testdata/out", 0755); err != nil {
		return err
	}
	return sh.Run("./bin/mkinsert", "generate", "testdata/people.csv",
		"--table", "people", "--column", "age:INT", "--out", "testdata/out")
}

// Clean removes the bin directory and test outputs.
func Clean() error {
	fmt.Println("Cleaning...")
	if err := os.RemoveAll("bin"); err != nil {
		return err
	}
	if err := os.RemoveAll("testdata/out"); err != nil {
		return err
	}
	return nil
}

// Tidy runs go mod tidy.
func Tidy() error {
	fmt.Println("Running go mod tidy...")
	return sh.Run("go", "mod", "tidy")
}

// Check runs formatting and linting checks (fmt, vet).
func Check() error {
	mg.Deps(Fmt, Vet)
	return nil
}

// Fmt runs go fmt ./...
func Fmt() error {
	fmt.Println("Running go fmt...")
	return sh.Run("go", "fmt", "./...")
}

// Vet runs go vet ./...
func Vet() error {
	fmt.Println("Running go vet...")
	return sh.Run("go", "vet", "./...")
}
