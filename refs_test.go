package mlscrypto

import (
	"bytes"
	"errors"
	"testing"
)

func TestReferenceLabelsDistinct(t *testing.T) {
	t.Parallel()
	kinds := []ReferenceKind{ReferenceKeyPackage, ReferenceProposal}

	seen := make(map[string]ReferenceKind)
	for _, kind := range kinds {
		label, err := kind.Label()
		if err != nil {
			t.Fatalf("Label(%d) error = %v", kind, err)
		}
		if prev, dup := seen[string(label)]; dup {
			t.Errorf("kinds %d and %d share label %q", prev, kind, label)
		}
		seen[string(label)] = kind
	}
}

func TestReferenceLabelUnknownKind(t *testing.T) {
	t.Parallel()
	if _, err := ReferenceKind(0).Label(); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Label(0) error = %v, want ErrInvalidParameter", err)
	}
}

func TestRef(t *testing.T) {
	t.Parallel()
	value := []byte("serialized key package")

	for _, suite := range AllSuites {
		suite := suite
		t.Run(suite.String(), func(t *testing.T) {
			t.Parallel()
			a, err := suite.Ref(ReferenceKeyPackage, value)
			if err != nil {
				t.Fatalf("Ref() error = %v", err)
			}
			if len(a) != refSize {
				t.Errorf("ref length = %d, want %d", len(a), refSize)
			}

			b, err := suite.Ref(ReferenceKeyPackage, value)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(a, b) {
				t.Error("ref not deterministic")
			}

			// Same bytes hashed as a different kind must not collide.
			c, err := suite.Ref(ReferenceProposal, value)
			if err != nil {
				t.Fatal(err)
			}
			if bytes.Equal(a, c) {
				t.Error("refs for different kinds are identical")
			}
		})
	}

	if _, err := SuiteUnknown.Ref(ReferenceKeyPackage, value); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("unknown suite error = %v, want ErrInvalidParameter", err)
	}
}
