// Package data carries the embedded question catalog consumed by cmd/seed.
package data

import (
	_ "embed"
)

//go:embed questions.json
var QuestionCatalog []byte
