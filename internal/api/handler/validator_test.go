package handler

import (
	"strings"
	"testing"
)

func TestValidator_UsesJSONFieldNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&addCartItemRequest{})
	if err == nil || err.Error() != "product_id is required" {
		t.Fatalf("unexpected error: %v", err)
	}

	err = v.Validate(&createProductRequest{Name: "n", Category: "c", Image: "i", Price: -5})
	if err == nil || !strings.Contains(err.Error(), "price must be at least 0") {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := v.Validate(&photoRequest{Photo: testPhotoURL}); err != nil {
		t.Fatalf("valid data url rejected: %v", err)
	}
	if err := v.Validate(&photoRequest{Photo: "https://img/x.png"}); err == nil {
		t.Fatalf("expected plain url to be rejected")
	}
}
