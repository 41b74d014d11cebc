package batch

import (
	"reflect"
	"testing"
)

func TestChunk(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}

	got := Chunk(ids, 2)
	want := [][]string{{"a", "b"}, {"c", "d"}, {"e"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if got := Chunk(ids, 0); len(got) != 1 || len(got[0]) != 5 {
		t.Fatalf("expected default size to hold all 5 ids in one chunk, got %v", got)
	}

	if got := Chunk([]string{}, 3); len(got) != 0 {
		t.Fatalf("expected no chunks for empty input, got %v", got)
	}
}

func TestChunkRespectsDefaultCeiling(t *testing.T) {
	ids := make([]int, 25)
	chunks := Chunk(ids, DefaultSize)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for _, c := range chunks {
		if len(c) > DefaultSize {
			t.Fatalf("chunk of %d exceeds ceiling %d", len(c), DefaultSize)
		}
	}
}

func TestDedupe(t *testing.T) {
	got := Dedupe([]string{"t1", "", "t2", "t1", "t3", "t2"})
	want := []string{"t1", "t2", "t3"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
