package yaml

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"github.com/Ymmmsick/shared-versions/pkg/tree"
)

// mustParse parses doc or fails the test.
func mustParse(t *testing.T, doc string) tree.Node {
	t.Helper()
	n, err := tree.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return n
}

// sameTree compares two trees including mapping key order.
func sameTree(a, b tree.Node) error {
	if a.Kind() != b.Kind() {
		return fmt.Errorf("kind %s != %s", a.Kind(), b.Kind())
	}
	switch at := a.(type) {
	case *tree.Scalar:
		bt := b.(*tree.Scalar)
		if !reflect.DeepEqual(at.Value, bt.Value) {
			return fmt.Errorf("scalar %#v != %#v", at.Value, bt.Value)
		}
	case *tree.Sequence:
		bt := b.(*tree.Sequence)
		if at.Len() != bt.Len() {
			return fmt.Errorf("sequence length %d != %d", at.Len(), bt.Len())
		}
		for i := range at.Items() {
			if err := sameTree(at.Items()[i], bt.Items()[i]); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
	case *tree.Mapping:
		bt := b.(*tree.Mapping)
		if !reflect.DeepEqual(at.Keys(), bt.Keys()) {
			return fmt.Errorf("keys %q != %q", at.Keys(), bt.Keys())
		}
		for _, k := range at.Keys() {
			av, _ := at.Get(k)
			bv, _ := bt.Get(k)
			if err := sameTree(av, bv); err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
		}
	}
	return nil
}

var (
	genKeys = []string{
		"http", "path", "flutter", "yes", "null", "a:b", "-dash", " lead",
		"with space", "1", "ünï", "ref", "url", "comment#", "quote\"d",
	}
	genStrings = []string{
		"1.0.0", "^2.3.1", ">=1.0.0 <2.0.0", "", "say \"hi\"", `back\slash`,
		"multi\nline", "tab\there", "true", "null", "123", "émoji 😀", "- item",
		"key: value", "# not a comment",
	}
)

// genNode produces a random tree of bounded depth.
func genNode(r *rand.Rand, depth int) tree.Node {
	choice := r.Intn(10)
	if depth <= 0 {
		choice = r.Intn(6)
	}
	switch {
	case choice < 6:
		return genScalar(r)
	case choice < 8:
		return genMapping(r, depth-1)
	default:
		seq := tree.NewSequence()
		for i := r.Intn(4); i > 0; i-- {
			seq.Append(genNode(r, depth-1))
		}
		return seq
	}
}

func genMapping(r *rand.Rand, depth int) *tree.Mapping {
	m := tree.NewMapping()
	for i := r.Intn(5); i > 0; i-- {
		m.Set(genKeys[r.Intn(len(genKeys))], genNode(r, depth))
	}
	return m
}

func genScalar(r *rand.Rand) *tree.Scalar {
	switch r.Intn(6) {
	case 0:
		return tree.NewScalar(r.Intn(2000) - 1000)
	case 1:
		return tree.NewScalar(r.Intn(2) == 0)
	case 2:
		return tree.NewScalar(nil)
	case 3:
		return tree.NewScalar(float64(r.Intn(100)) + 0.25*float64(r.Intn(4)))
	default:
		return tree.NewScalar(genStrings[r.Intn(len(genStrings))])
	}
}
