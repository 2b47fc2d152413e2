package imgutil

import (
	"bytes"
	"testing"
)

func TestDetectHeader(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		want   Kind
	}{
		{"heic brand", append([]byte{0, 0, 0, 0x18}, []byte("ftypheic")...), KindHEIF},
		{"mif1 brand", append([]byte{0, 0, 0, 0x1c}, []byte("ftypmif1")...), KindHEIF},
		{"mp4 brand", append([]byte{0, 0, 0, 0x18}, []byte("ftypisom")...), KindUnknown},
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0, 0, 0x10, 'J', 'F', 'I', 'F', 0, 1}, KindJPEG},
		{"png", append([]byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}, 0, 0, 0, 0x0d), KindPNG},
		{"text", []byte("hello, world"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectHeader(tt.header)
			if err != nil {
				t.Fatalf("DetectHeader: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectHeader_Short(t *testing.T) {
	if _, err := DetectHeader([]byte{0xff, 0xd8}); err == nil {
		t.Fatal("expected error for short header")
	}
}

func TestSniffReader_ShortInput(t *testing.T) {
	if _, err := SniffReader(bytes.NewReader([]byte("abc"))); err == nil {
		t.Fatal("expected error for short input")
	}
}
