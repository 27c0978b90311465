//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Build compiles the ziggurat binary
func Build() error {
	return sh.RunV("go", "build", "-o", "ziggurat", "./cmd/ziggurat")
}

// Test runs the full test suite
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet across the module
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install builds and installs the binary into GOPATH/bin
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", "./cmd/ziggurat")
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm("ziggurat")
}
