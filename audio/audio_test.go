package audio

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"
)

// mockDecoder is a test decoder implementation
type mockDecoder struct {
	name string
}

func (d *mockDecoder) Decode(r io.Reader) (*PCM, error) {
	return NewPCM(44100, 2, 16, make([]byte, 400))
}

// failingDecoder always returns an error
type failingDecoder struct{}

func (d *failingDecoder) Decode(r io.Reader) (*PCM, error) {
	return nil, errors.New("decode failed")
}

func TestNewPCM_FrameCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		channels   int
		bits       int
		dataSize   int
		wantFrames int
	}{
		{"stereo 16-bit", 2, 16, 32, 8},
		{"mono 16-bit", 1, 16, 32, 16},
		{"mono 8-bit", 1, 8, 32, 32},
		{"stereo 24-bit", 2, 24, 36, 6},
		{"trailing partial frame", 2, 16, 34, 8},
		{"empty", 2, 16, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := NewPCM(8000, tt.channels, tt.bits, make([]byte, tt.dataSize))
			if err != nil {
				t.Fatalf("NewPCM() error = %v", err)
			}

			if p.Frames() != tt.wantFrames {
				t.Errorf("Frames() = %d, want %d", p.Frames(), tt.wantFrames)
			}

			if p.DataSize() != tt.dataSize {
				t.Errorf("DataSize() = %d, want %d", p.DataSize(), tt.dataSize)
			}
		})
	}
}

func TestNewPCM_InvalidGeometry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		bits     int
	}{
		{"zero channels", 0, 16},
		{"zero bits", 2, 0},
		{"sub-byte bits", 1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := NewPCM(8000, tt.channels, tt.bits, make([]byte, 16))
			if !errors.Is(err, ErrInvalidFrameGeometry) {
				t.Errorf("NewPCM() error = %v, want ErrInvalidFrameGeometry", err)
			}
			if p != nil {
				t.Error("NewPCM() returned non-nil PCM on error")
			}
		})
	}
}

func TestPCM_Metadata(t *testing.T) {
	t.Parallel()

	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	p, err := NewPCM(16000, 2, 16, data)
	if err != nil {
		t.Fatalf("NewPCM() error = %v", err)
	}

	if p.SampleRate() != 16000 {
		t.Errorf("SampleRate() = %d, want 16000", p.SampleRate())
	}
	if p.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", p.Channels())
	}
	if p.BitsPerSample() != 16 {
		t.Errorf("BitsPerSample() = %d, want 16", p.BitsPerSample())
	}
	if p.BytesPerFrame() != 4 {
		t.Errorf("BytesPerFrame() = %d, want 4", p.BytesPerFrame())
	}
	if !bytes.Equal(p.Data(), data) {
		t.Errorf("Data() = %v, want %v", p.Data(), data)
	}
	if !p.Valid() {
		t.Error("Valid() = false, want true")
	}
}

func TestPCM_DataViewIsCapped(t *testing.T) {
	t.Parallel()

	p, _ := NewPCM(8000, 1, 16, []byte{1, 2, 3, 4})
	view := p.Data()

	// Appending to the view must not write into the owned buffer's spare capacity.
	if cap(view) != len(view) {
		t.Errorf("cap(Data()) = %d, want %d", cap(view), len(view))
	}
}

func TestPCM_NilIsNotDecoded(t *testing.T) {
	t.Parallel()

	var p *PCM

	if p.Frames() != 0 {
		t.Errorf("Frames() = %d, want 0", p.Frames())
	}
	if p.Data() != nil {
		t.Errorf("Data() = %v, want nil", p.Data())
	}
	if p.Valid() {
		t.Error("Valid() = true, want false")
	}
	if p.SampleRate() != 0 || p.Channels() != 0 || p.BitsPerSample() != 0 || p.DataSize() != 0 {
		t.Error("nil PCM reported non-zero metadata")
	}
	if p.Duration() != 0 {
		t.Errorf("Duration() = %v, want 0", p.Duration())
	}
}

func TestPCM_Duration(t *testing.T) {
	t.Parallel()

	// 8000 frames of mono 16-bit at 8 kHz is one second.
	p, _ := NewPCM(8000, 1, 16, make([]byte, 16000))
	if p.Duration() != time.Second {
		t.Errorf("Duration() = %v, want 1s", p.Duration())
	}
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "wav"}

	registry.Register("wav", decoder)

	got, ok := registry.Get("wav")
	if !ok {
		t.Fatal("Registry.Get() failed to retrieve registered decoder")
	}

	if got != decoder {
		t.Error("Registry.Get() returned different decoder instance")
	}
}

func TestRegistry_GetNonExistent(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()

	_, ok := registry.Get("nonexistent")
	if ok {
		t.Error("Registry.Get() returned ok=true for non-existent format")
	}
}

func TestRegistry_MultipleFormats(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	wavDecoder := &mockDecoder{name: "wav"}
	mp3Decoder := &mockDecoder{name: "mp3"}
	oggDecoder := &failingDecoder{}

	registry.Register("wav", wavDecoder)
	registry.Register("mp3", mp3Decoder)
	registry.Register("ogg", oggDecoder)

	tests := []struct {
		format string
		want   Decoder
		wantOK bool
	}{
		{"wav", wavDecoder, true},
		{"mp3", mp3Decoder, true},
		{"ogg", oggDecoder, true},
		{"flac", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got, ok := registry.Get(tt.format)
			if ok != tt.wantOK {
				t.Errorf("Registry.Get(%q) ok = %v, want %v", tt.format, ok, tt.wantOK)
			}
			if tt.wantOK && got != tt.want {
				t.Errorf("Registry.Get(%q) returned wrong decoder", tt.format)
			}
		})
	}

	if got := len(registry.Formats()); got != 3 {
		t.Errorf("len(Formats()) = %d, want 3", got)
	}
}

func TestRegistry_DecodeThroughRegistry(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register("wav", &mockDecoder{})
	registry.Register("bad", &failingDecoder{})

	dec, _ := registry.Get("wav")
	p, err := dec.Decode(bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if p.Frames() != 100 {
		t.Errorf("Frames() = %d, want 100", p.Frames())
	}

	dec, _ = registry.Get("bad")
	p, err = dec.Decode(bytes.NewReader(nil))
	if err == nil {
		t.Error("Decode() error = nil, want error")
	}
	if p.Valid() {
		t.Error("failed decode produced a valid PCM")
	}
}

func TestRegistry_Overwrite(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder1 := &mockDecoder{name: "first"}
	decoder2 := &mockDecoder{name: "second"}

	registry.Register("wav", decoder1)
	registry.Register("wav", decoder2)

	got, ok := registry.Get("wav")
	if !ok {
		t.Fatal("Registry.Get() failed after overwrite")
	}

	if got != decoder2 {
		t.Error("Registry.Get() did not return the overwritten decoder")
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "test"}

	done := make(chan bool)
	for range 10 {
		go func() {
			registry.Register("format", decoder)
			done <- true
		}()
	}

	for range 10 {
		go func() {
			_, _ = registry.Get("format")
			done <- true
		}()
	}

	for range 20 {
		<-done
	}

	got, ok := registry.Get("format")
	if !ok {
		t.Error("Registry.Get() failed after concurrent operations")
	}
	if got != decoder {
		t.Error("Registry returned wrong decoder after concurrent operations")
	}
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()

	if registry == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	if registry.codecs == nil {
		t.Error("NewRegistry() did not initialize codecs map")
	}

	if registry.mtx == nil {
		t.Error("NewRegistry() did not initialize mutex")
	}
}

// BenchmarkRegistry_Get benchmarks retrieving decoders
func BenchmarkRegistry_Get(b *testing.B) {
	registry := NewRegistry()
	decoder := &mockDecoder{}
	registry.Register("wav", decoder)

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		_, _ = registry.Get("wav")
	}
}
