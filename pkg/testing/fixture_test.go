package testing

import (
	"testing"

	"github.com/go-drift/uipack/pkg/asset"
	"github.com/go-drift/uipack/pkg/pack"
)

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry(t,
		&pack.PackageSource{
			ID:   "main0001",
			Name: "Main",
			Items: []pack.ItemSource{
				Primitive("icon", "image"),
				Component("win", Ref("bg", "image", "icon"), Bare("frame", "graph"), List("rows", "ui://main0001win", "")),
			},
		},
		&pack.PackageSource{
			ID:    "libr0001",
			Name:  "Lib",
			Items: []pack.ItemSource{Primitive("badge", "movieclip")},
		},
	)

	if n := len(reg.Packages()); n != 2 {
		t.Fatalf("registered %d packages, want 2", n)
	}
	win := Item(t, reg, "ui://main0001win")
	if win.Kind != asset.KindComponent || win.Type != asset.TypeComponent {
		t.Errorf("win = %s %s", win.Kind, win.Type)
	}
	badge := Item(t, reg, "ui://Lib/badge")
	if badge.Kind != asset.KindPrimitive || badge.Type != asset.TypeMovieClip {
		t.Errorf("badge = %s %s", badge.Kind, badge.Type)
	}
}

func TestListHelper(t *testing.T) {
	c := List("rows", "ui://main0001row", "", "ui://main0001other")
	if c.Type != "list" || c.List.DefaultItem != "ui://main0001row" {
		t.Fatalf("list = %+v", c)
	}
	if len(c.List.Items) != 2 || c.List.Items[0].URL != "" || c.List.Items[1].URL != "ui://main0001other" {
		t.Errorf("items = %+v", c.List.Items)
	}
}
