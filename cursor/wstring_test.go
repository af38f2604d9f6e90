package cursor

import "testing"

func TestWStringPrefixedRoundTrip(t *testing.T) {
	w := NewWriter()
	w.SetOrder(BigEndian)
	if err := w.WriteWStringPrefixed("hello"); err != nil {
		t.Fatal(err)
	}
	out, err := w.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	c := New(out)
	c.SetOrder(BigEndian)
	s, err := c.ReadWStringPrefixed()
	if err != nil {
		t.Fatal(err)
	}
	if s != "hello" {
		t.Fatalf("got %q, want %q", s, "hello")
	}
}

func TestWStringFixedPaddingAndTrim(t *testing.T) {
	w := NewWriter()
	w.SetOrder(LittleEndian)
	if err := w.WriteWStringFixed("hi", 128); err != nil {
		t.Fatal(err)
	}
	out, err := w.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 128 {
		t.Fatalf("len(out) = %d, want 128", len(out))
	}
	c := New(out)
	c.SetOrder(LittleEndian)
	s, err := c.ReadWStringFixed(128)
	if err != nil {
		t.Fatal(err)
	}
	if s != "hi" {
		t.Fatalf("got %q, want %q", s, "hi")
	}
}

func TestUtf32FixedRoundTrip(t *testing.T) {
	w := NewWriter()
	if err := w.WriteUtf32Fixed("switch save", 512); err != nil {
		t.Fatal(err)
	}
	out, err := w.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 512 {
		t.Fatalf("len(out) = %d, want 512", len(out))
	}
	c := New(out)
	s, err := c.ReadUtf32Fixed(512)
	if err != nil {
		t.Fatal(err)
	}
	if s != "switch save" {
		t.Fatalf("got %q, want %q", s, "switch save")
	}
}
