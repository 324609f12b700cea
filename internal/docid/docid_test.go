package docid

import (
	"context"
	"testing"
)

func TestNewContextStoresID(t *testing.T) {
	ctx, id := NewContext(context.Background())
	got, ok := FromContext(ctx)
	if !ok || got != id {
		t.Fatalf("FromContext = (%d, %v), want (%d, true)", got, ok, id)
	}
}

func TestFromContextWithoutID(t *testing.T) {
	if id, ok := FromContext(context.Background()); ok {
		t.Fatalf("FromContext on empty context = (%d, true), want absent", id)
	}
}
