package stfs

import "testing"

func TestBuildTreeAndFindSavegame(t *testing.T) {
	folder := &FileEntry{EntryIndex: 1, Name: "saves", Flags: 2, PathIndicator: rootEntryIndex}
	save := &FileEntry{EntryIndex: 2, Name: "savegame.dat", PathIndicator: 1}
	other := &FileEntry{EntryIndex: 3, Name: "profile.dat", PathIndicator: rootEntryIndex}

	root := buildTree([]*FileEntry{folder, save, other})
	if len(root.Children) != 1 || root.Children[0].Folder.Name != "saves" {
		t.Fatalf("expected one child folder named saves, got %+v", root.Children)
	}
	if len(root.Files) != 1 || root.Files[0].Name != "profile.dat" {
		t.Fatalf("expected root-level file profile.dat, got %+v", root.Files)
	}
	if len(root.Children[0].Files) != 1 || root.Children[0].Files[0].Name != "savegame.dat" {
		t.Fatalf("expected savegame.dat under saves/, got %+v", root.Children[0].Files)
	}

	p := &Package{Root: root}
	found, err := p.FindSavegame()
	if err != nil {
		t.Fatal(err)
	}
	if found.Name != "savegame.dat" {
		t.Fatalf("FindSavegame() = %+v, want savegame.dat", found)
	}
}

func TestFindSavegameMissing(t *testing.T) {
	p := &Package{Root: buildTree([]*FileEntry{{EntryIndex: 1, Name: "other.dat", PathIndicator: rootEntryIndex}})}
	if _, err := p.FindSavegame(); err == nil {
		t.Fatal("expected error when no savegame.dat is present")
	}
}
