package genre

import "fmt"

// states holds the US state and district codes accepted by venue and
// artist address forms. Code and label are the same string for every
// member, but lookups still go through the table so an unknown code is
// rejected rather than stored verbatim.
var states = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL",
	"GA", "HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME",
	"MT", "NE", "NV", "NH", "NJ", "NM", "NY", "NC", "ND", "OH",
	"OK", "OR", "MD", "MA", "MI", "MN", "MS", "MO", "PA", "RI",
	"SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI",
	"WY",
}

var stateSet = map[string]bool{}

func init() {
	for _, s := range states {
		stateSet[s] = true
	}
}

// States returns all accepted state codes in form-choice order.
func States() []string {
	out := make([]string, len(states))
	copy(out, states)
	return out
}

// StateByCode validates a state code against the closed set.
func StateByCode(code string) (string, error) {
	if !stateSet[code] {
		return "", fmt.Errorf("%w: %q", ErrUnknownState, code)
	}
	return code, nil
}
