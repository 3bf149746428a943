package container

import (
	"reflect"
	"testing"
)

func TestWalk(t *testing.T) {
	path := tempPath(t, "walk.nxg")
	f, _ := Create(path)
	a, _ := f.Root().CreateGroup("a")
	b, _ := a.CreateGroup("b")
	d1, _ := b.CreateDataset("d1")
	WriteSpan(d1, nil, []bool{true})
	d2, _ := f.Root().CreateDataset("d2")
	WriteStrings(d2, []string{"x"})
	if err := f.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	var visited []string
	err = Walk(r.Root(), func(p string, obj Object, err error) error {
		if err != nil {
			return err
		}
		kind := "d"
		if _, ok := obj.(*Group); ok {
			kind = "g"
		}
		visited = append(visited, kind+":"+p)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	want := []string{"g:/", "g:/a", "g:/a/b", "d:/a/b/d1", "d:/d2"}
	if !reflect.DeepEqual(visited, want) {
		t.Errorf("visited %v, want %v", visited, want)
	}
}

func TestPathHelpers(t *testing.T) {
	if got := SplitPath("//a//b/"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("SplitPath = %v", got)
	}
	if got := CleanPath("a/b/"); got != "/a/b" {
		t.Errorf("CleanPath = %q", got)
	}
	if got := CleanPath(""); got != "/" {
		t.Errorf("CleanPath(\"\") = %q", got)
	}
	if got := JoinPath("/", "x"); got != "/x" {
		t.Errorf("JoinPath = %q", got)
	}
	if got := JoinPath("/a", "x"); got != "/a/x" {
		t.Errorf("JoinPath = %q", got)
	}
}
