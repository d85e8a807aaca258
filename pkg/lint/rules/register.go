package rules

import "github.com/yaklabco/marklint/pkg/lint"

// All lists every built-in rule's metadata in MD-number order. The order
// is load-bearing: the registry preserves it so violations at the same
// position sort deterministically.
//
//nolint:gochecknoglobals // Read-only rule table.
var All = []*lint.Metadata{
	md001Meta,
	md003Meta,
	md004Meta,
	md005Meta,
	md007Meta,
	md009Meta,
	md010Meta,
	md011Meta,
	md012Meta,
	md013Meta,
	md014Meta,
	md018Meta,
	md019Meta,
	md020Meta,
	md021Meta,
	md022Meta,
	md023Meta,
	md024Meta,
	md025Meta,
	md026Meta,
	md027Meta,
	md028Meta,
	md029Meta,
	md030Meta,
	md031Meta,
	md032Meta,
	md033Meta,
	md034Meta,
	md035Meta,
	md036Meta,
	md037Meta,
	md038Meta,
	md039Meta,
	md040Meta,
	md041Meta,
	md042Meta,
	md043Meta,
	md044Meta,
	md045Meta,
	md046Meta,
	md047Meta,
	md048Meta,
	md049Meta,
	md050Meta,
	md051Meta,
	md052Meta,
	md053Meta,
	md054Meta,
	md055Meta,
	md056Meta,
	md058Meta,
	md059Meta,
}

// RegisterAll registers every built-in rule with the given registry.
func RegisterAll(registry *lint.Registry) {
	for _, meta := range All {
		registry.Register(meta)
	}
}

// init registers the built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
}
