// Package introspect answers the __schema/__type/__typename subset of
// a validated executable operation against a validated Schema: a depth
// guard run before execution, plus resolvers for each introspection
// meta-type that draw their values straight from the Schema.
package introspect

import (
	"fmt"

	"github.com/shyptr/gqlcore/executable"
)

// depthLimitedFields are the list-valued introspection fields whose
// nested occurrence count along any root-to-leaf path is bounded.
var depthLimitedFields = map[string]bool{
	"fields": true, "inputFields": true, "interfaces": true, "possibleTypes": true, "types": true,
}

// maxIntrospectionDepth is the maximum number of nested occurrences of
// the same depth-limited field allowed along any root-to-leaf path.
const maxIntrospectionDepth = 2

// CheckDepth walks op's selection set and returns a request error if
// any root-to-leaf path contains more than maxIntrospectionDepth nested
// occurrences of the same depth-limited list field.
func CheckDepth(op *executable.Operation) error {
	return checkDepth(op.SelectionSet, map[string]int{})
}

func checkDepth(ss executable.SelectionSet, counts map[string]int) error {
	for _, sel := range ss.Selections {
		switch sel.Kind {
		case executable.FieldSelection:
			f := sel.Field
			if f == nil {
				continue
			}
			name := f.Name.Text
			limited := depthLimitedFields[name]
			if limited {
				counts[name]++
				if counts[name] > maxIntrospectionDepth {
					return fmt.Errorf("Maximum introspection depth exceeded: field %q nested too deeply", name)
				}
			}
			err := checkDepth(f.SelectionSet, counts)
			if limited {
				counts[name]--
			}
			if err != nil {
				return err
			}
		case executable.InlineFragmentSelection:
			if err := checkDepth(sel.SelectionSet, counts); err != nil {
				return err
			}
		}
	}
	return nil
}
