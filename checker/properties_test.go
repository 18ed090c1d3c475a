package checker

import (
	"errors"
	"testing"
)

func TestNormalizeProperties_EmptyExpandsToAll(t *testing.T) {
	props, err := NormalizeProperties(nil)
	if err != nil {
		t.Fatalf("NormalizeProperties: %v", err)
	}
	if len(props) != 5 {
		t.Fatalf("expected 5 properties, got %v", props)
	}
}

func TestNormalizeProperties_Deduplicates(t *testing.T) {
	props, err := NormalizeProperties([]string{"P1", "p1", " p4 "})
	if err != nil {
		t.Fatalf("NormalizeProperties: %v", err)
	}
	if len(props) != 2 || props[0] != PropertyIndexTargets || props[1] != PropertyFences {
		t.Fatalf("unexpected selection %v", props)
	}
}

func TestNormalizeProperties_Unknown(t *testing.T) {
	_, err := NormalizeProperties([]string{"p9"})
	if !errors.Is(err, ErrUnknownProperty) {
		t.Fatalf("expected ErrUnknownProperty, got %v", err)
	}
}
