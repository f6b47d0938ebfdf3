//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binaryName = "wordlens"

// Default target to run when none is specified
var Default = Build

// Build builds the wordlens binary
func Build() error {
	fmt.Println("Building", binaryName)
	return sh.RunV("go", "build", "-o", binaryName, "./cmd/wordlens")
}

// Test runs all unit tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// TestIntegration runs the tests that call the real Gemini API
func TestIntegration() error {
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("GEMINI_API_KEY must be set for integration tests")
	}
	return sh.RunV("go", "test", "-count=1", "./internal/translation/...", "./internal/models/...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install installs wordlens into ~/go/bin
func Install() error {
	mg.Deps(Test)
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return sh.RunWithV(map[string]string{"GOBIN": filepath.Join(home, "go", "bin")},
		"go", "install", "./cmd/wordlens")
}

// Serve builds and starts the local HTTP API
func Serve() error {
	mg.Deps(Build)
	return sh.RunV("./"+binaryName, "serve")
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm(binaryName)
}
