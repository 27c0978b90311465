// Package gui provides the Fyne-based graphical frontend: file pickers,
// target language selection and live progress output for a translation run.
package gui
