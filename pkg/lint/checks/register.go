// Package checks provides the built-in adoclint checkers:
//
//   - ADL001 style-words: flagged words, phrases, hyphenation, semicolons and
//     possessives
//   - ADL002 repeated-words: a word immediately repeated, within a line or
//     across a line break
//   - ADL003 ventilated-prose: one sentence per line
//   - ADL004 image-references: missing, mis-sized and unreferenced images
package checks

import "github.com/yaklabco/adoclint/pkg/lint"

// Checker identifiers.
const (
	StyleID      = "ADL001"
	RepeatedID   = "ADL002"
	VentilatedID = "ADL003"
	ImagesID     = "ADL004"
)

// RegisterAll registers all built-in checkers with the given registry.
func RegisterAll(registry *lint.Registry) {
	registry.Register(NewStyleChecker())      // ADL001
	registry.Register(NewRepeatedChecker())   // ADL002
	registry.Register(NewVentilatedChecker()) // ADL003
	registry.Register(NewImageChecker())      // ADL004
}

//nolint:gochecknoinits // Built-in checkers self-register.
func init() {
	RegisterAll(lint.DefaultRegistry)
}
