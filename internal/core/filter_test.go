package core

import (
	"testing"

	"github.com/adamavenir/heroes/internal/types"
)

func names(items []types.CharacterInfo) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

func TestFilterByName(t *testing.T) {
	items := []types.CharacterInfo{{Name: "Spider-Man"}, {Name: "Iron Man"}}

	got := FilterByName(items, "spi")
	if len(got) != 1 || got[0].Name != "Spider-Man" {
		t.Fatalf("expected only Spider-Man, got %v", names(got))
	}

	got = FilterByName(items, "MAN")
	if len(got) != 2 {
		t.Fatalf("expected both, got %v", names(got))
	}

	got = FilterByName(items, "")
	if len(got) != 2 {
		t.Fatalf("empty query should return everything, got %v", names(got))
	}

	got = FilterByName(items, " man")
	if len(got) != 1 || got[0].Name != "Iron Man" {
		t.Fatalf("leading space should be matched, got %v", names(got))
	}

	got = FilterByName(items, "   ")
	if len(got) != 0 {
		t.Fatalf("whitespace query should match nothing, got %v", names(got))
	}

	got = FilterByName(items, "hulk")
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %v", names(got))
	}
}

func TestFilterByNameUnicodeFolding(t *testing.T) {
	items := []types.CharacterInfo{{Name: "Ægir"}, {Name: "Thor"}}
	got := FilterByName(items, "æg")
	if len(got) != 1 || got[0].Name != "Ægir" {
		t.Fatalf("expected Ægir, got %v", names(got))
	}
}

func TestFilterByPattern(t *testing.T) {
	items := []types.CharacterInfo{{Name: "Spider-Man"}, {Name: "Spider-Woman"}, {Name: "Iron Man"}}

	got, err := FilterByPattern(items, "spider-*")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected two spiders, got %v", names(got))
	}

	got, err = FilterByPattern(items, "*man")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected all three, got %v", names(got))
	}

	if _, err := FilterByPattern(items, "[unclosed"); err == nil {
		t.Fatal("expected invalid pattern error")
	}
}

func TestFindByName(t *testing.T) {
	items := []types.CharacterInfo{{Name: "Spider-Man", Description: "a"}, {Name: "Iron Man"}}
	found, ok := FindByName(items, "  spider-man ")
	if !ok || found.Description != "a" {
		t.Fatalf("expected Spider-Man, got %+v %v", found, ok)
	}
	if _, ok := FindByName(items, "Spider"); ok {
		t.Fatal("partial names should not match")
	}
}
