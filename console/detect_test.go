package console

import "testing"

func TestDetectWiiU(t *testing.T) {
	// int2_be (0xFFFFFFFF) must be at least declaredDestSize (1 MiB) for
	// the WiiU branch to win over Switch/PS4.
	header := []byte{0x00, 0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0x78, 0x9C, 0x00, 0x00}
	got, err := Detect(header, "")
	if err != nil {
		t.Fatal(err)
	}
	if got != KindWiiU {
		t.Fatalf("Detect() = %v, want WiiU", got)
	}
}

func TestDetectSwitchVsPS4(t *testing.T) {
	header := []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x78, 0x9C, 0xFF, 0xFF}

	got, err := Detect(header, "somedir")
	if err != nil {
		t.Fatal(err)
	}
	if got != KindSwitch {
		t.Fatalf("Detect() = %v, want Switch", got)
	}

	got, err = Detect(header, "savedata0")
	if err != nil {
		t.Fatal(err)
	}
	if got != KindPS4 {
		t.Fatalf("Detect() = %v, want PS4", got)
	}
}

func TestDetectVita(t *testing.T) {
	header := []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x0A, 0x00, 0x00, 0x00, 0x01, 0x00}
	got, err := Detect(header, "")
	if err != nil {
		t.Fatal(err)
	}
	if got != KindVita {
		t.Fatalf("Detect() = %v, want Vita", got)
	}
}

func TestDetectXbox360BIN(t *testing.T) {
	header := []byte{0x43, 0x4F, 0x4E, 0x20, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00}
	got, err := Detect(header, "")
	if err != nil {
		t.Fatal(err)
	}
	if got != KindXbox360BIN {
		t.Fatalf("Detect() = %v, want Xbox360BIN", got)
	}
}

func TestDetectTooShortHeaderFails(t *testing.T) {
	if _, err := Detect([]byte{1, 2, 3}, ""); err == nil {
		t.Fatal("expected error for short header")
	}
}
