package activities

import (
	"context"
	"errors"
	"testing"

	"tourdash/internal/db"
)

func TestResolve(t *testing.T) {
	docs := map[string]string{
		"a1": `{"activity_name":"Island Hopping","activity_base_price":"1200"}`,
		"a2": `{"activity_name":"Kayak"}`,
		"a3": `{"activity_name":42}`,
		"a4": `{"activity_name":"Snorkel"}`,
	}
	errDown := errors.New("down")

	var batches [][]string
	repo := &Repository{batchSize: 2, query: func(_ context.Context, _ string, args ...any) ([]db.Doc, error) {
		ids := args[0].([]string)
		batches = append(batches, ids)
		out := []db.Doc{}
		for _, id := range ids {
			if id == "down" {
				return nil, errDown
			}
			if body, ok := docs[id]; ok {
				out = append(out, db.Doc{ID: id, Body: []byte(body)})
			}
		}
		return out, nil
	}}

	got, err := repo.Resolve(context.Background(), []string{"a1", "a1", "missing", "a2", "a3", "down", "a4"})
	if !errors.Is(err, errDown) {
		t.Fatalf("expected batch error, got %v", err)
	}
	if len(batches) != 3 {
		t.Fatalf("expected 3 batches, got %v", batches)
	}

	index := Index(got)
	if len(index) != 2 {
		t.Fatalf("expected a1 and a2, got %v", got)
	}
	if index["a1"].Name != "Island Hopping" || index["a1"].ID != "a1" {
		t.Fatalf("unexpected a1 %+v", index["a1"])
	}
	if _, ok := index["a4"]; ok {
		t.Fatalf("a4 shares the failed batch and should be missing")
	}
}

func TestResolveWithoutIDs(t *testing.T) {
	repo := &Repository{query: func(context.Context, string, ...any) ([]db.Doc, error) {
		t.Fatalf("query must not run for an empty id set")
		return nil, nil
	}}
	got, err := repo.Resolve(context.Background(), nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty result, got %v %v", got, err)
	}
}
