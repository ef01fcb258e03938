// Package id generates prefixed ULID identifiers. ULIDs sort
// lexicographically by creation time, which keeps "recent" queries on
// the id column cheap.
package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}

func Prediction() string { return "PRED-" + New() }
func Deployment() string { return "DEP-" + New() }
func Alert() string      { return "ALT-" + New() }
