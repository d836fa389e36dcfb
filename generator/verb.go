package generator

import (
	"fmt"
	"strings"
)

// DefaultVerb is used when a request leaves the verb empty.
const DefaultVerb = "INSERT"

// Verbs lists the statement verbs ParseVerb accepts.
var Verbs = []string{
	"INSERT",
	"INSERT IGNORE",
	"INSERT OR IGNORE",
	"INSERT OR REPLACE",
	"REPLACE",
}

// ParseVerb normalizes a user supplied verb (case and spacing) and checks it
// against Verbs. An empty string yields DefaultVerb.
func ParseVerb(s string) (string, error) {
	verb := strings.ToUpper(strings.Join(strings.Fields(s), " "))
	if verb == "" {
		return DefaultVerb, nil
	}
	for _, v := range Verbs {
		if v == verb {
			return v, nil
		}
	}
	return "", &ConfigError{
		Code:    ErrCodeUnknownVerb,
		Message: fmt.Sprintf("unknown statement verb %q (want one of %s)", strings.TrimSpace(s), strings.Join(Verbs, ", ")),
		Index:   -1,
	}
}
