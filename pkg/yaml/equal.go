package yaml

import (
	"bytes"

	"github.com/davecgh/go-spew/spew"
	"github.com/pmezard/go-difflib/difflib"
	syaml "sigs.k8s.io/yaml"

	"github.com/Ymmmsick/shared-versions/pkg/tree"
)

// Equal reports whether two trees hold the same content. Mapping key order
// is ignored and numbers are compared by value.
func Equal(a, b tree.Node) bool {
	ab, err := canonical(tree.ToPlain(a))
	if err != nil {
		return false
	}
	bb, err := canonical(tree.ToPlain(b))
	if err != nil {
		return false
	}
	return string(ab) == string(bb)
}

// EqualYAMLs compares two documents by content, ignoring formatting, comments
// and key order.
func EqualYAMLs(a, b []byte) (bool, error) {
	ab, err := reencode(a)
	if err != nil {
		return false, err
	}
	bb, err := reencode(b)
	if err != nil {
		return false, err
	}
	return string(ab) == string(bb), nil
}

func reencode(doc []byte) ([]byte, error) {
	if len(doc) == 0 {
		return nil, nil
	}
	var v any
	if err := syaml.Unmarshal(doc, &v); err != nil {
		return nil, err
	}
	return canonical(v)
}

func canonical(v any) ([]byte, error) {
	if m, ok := v.(map[string]any); ok && len(m) == 0 {
		v = nil
	}
	if v == nil {
		return nil, nil
	}
	return syaml.Marshal(v)
}

/////////////////////////////////////////////////////////////////////////////////////

var spewConfig = spew.ConfigState{
	Indent:                  " ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
	DisableMethods:          true,
	MaxDepth:                16,
}

// Diff returns a unified diff between the contents of two trees, or "" when
// they are equal.
func Diff(previous, actual tree.Node) string {
	if Equal(previous, actual) {
		return ""
	}
	return unified(spewConfig.Sdump(tree.ToPlain(previous)), spewConfig.Sdump(tree.ToPlain(actual)))
}

// DiffYAML returns a unified diff between two documents after normalizing
// them, or "" when they are equal or cannot be parsed.
func DiffYAML(a, b []byte) string {
	ab, err := reencode(a)
	if err != nil {
		return ""
	}
	bb, err := reencode(b)
	if err != nil {
		return ""
	}
	if bytes.Equal(ab, bb) {
		return ""
	}
	return unified(string(ab), string(bb))
}

func unified(previous, actual string) string {
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(previous),
		B:        difflib.SplitLines(actual),
		FromFile: "Previous",
		ToFile:   "Actual",
		Context:  1,
	})
	return diff
}
