package common

import "github.com/alecthomas/kingpin/v2"

const envarPrefix = "IG_"

type FlagHolder interface {
	Flag(name, help string) *kingpin.FlagClause
}

// Envar returns the environment variable name under which the flag with the
// given (upper snake case) name could also be provided.
func Envar(name string) string {
	return envarPrefix + name
}
