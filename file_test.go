package audioinfo_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/simonhull/audioinfo"
	"github.com/simonhull/audioinfo/internal/binary"
)

func TestOpen_M4A(t *testing.T) {
	data := createM4A("M4A ")
	path := writeTemp(t, "song.m4a", data)

	file, err := audioinfo.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if file.Format != audioinfo.FormatM4A {
		t.Errorf("expected FormatM4A, got %v", file.Format)
	}
	if file.Size != int64(len(data)) {
		t.Errorf("Size = %d, want %d", file.Size, len(data))
	}
	if file.Path != path {
		t.Errorf("Path = %q, want %q", file.Path, path)
	}
	if file.Title != "Sample" || file.Artist != "Sample Artist" {
		t.Errorf("Title, Artist = %q, %q", file.Title, file.Artist)
	}
	if file.Duration != 4435*time.Millisecond {
		t.Errorf("Duration = %v, want 4.435s", file.Duration)
	}
}

func TestOpen_M4B(t *testing.T) {
	path := writeTemp(t, "book.m4b", createM4A("M4B "))

	file, err := audioinfo.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if file.Format != audioinfo.FormatM4B {
		t.Errorf("expected FormatM4B, got %v", file.Format)
	}
}

func TestOpen_FileNotFound(t *testing.T) {
	_, err := audioinfo.Open("/nonexistent/path.m4b")
	if err == nil {
		t.Fatal("expected error for nonexistent file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestOpen_Unsupported(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"text", []byte("not a valid audio file")},
		{"tiny", []byte{0x00}},
		{"mp3", append([]byte("ID3\x04\x00\x00"), make([]byte, 16)...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, "input.bin", tt.data)

			_, err := audioinfo.Open(path)
			if err == nil {
				t.Fatal("expected error for unsupported format")
			}
			var target *audioinfo.UnsupportedFormatError
			if !errors.As(err, &target) {
				t.Errorf("expected UnsupportedFormatError, got %T", err)
			}
		})
	}
}

func TestOpen_Truncated(t *testing.T) {
	data := createM4A("M4A ")
	path := writeTemp(t, "cut.m4a", data[:len(data)-3])

	_, err := audioinfo.Open(path)

	var target *audioinfo.TruncatedInputError
	if !errors.As(err, &target) {
		t.Fatalf("expected TruncatedInputError, got %T %v", err, err)
	}
	if !strings.HasPrefix(err.Error(), "parse M4A: ") {
		t.Errorf("error should name the format, got: %v", err)
	}
}

func TestOpen_LargeMediaData(t *testing.T) {
	const mdatSize = 1 << 20
	data := createM4AWithMdat("M4A ", mdatSize)

	t.Run("complete", func(t *testing.T) {
		file, err := audioinfo.Open(writeTemp(t, "large.m4a", data))
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		if file.Title != "Sample" || file.Duration != 4435*time.Millisecond {
			t.Errorf("Title, Duration = %q, %v", file.Title, file.Duration)
		}
	})

	t.Run("cut inside mdat", func(t *testing.T) {
		// ftyp (20) + mdat header (8) + part of the payload
		path := writeTemp(t, "cut.m4a", data[:20+8+100000])

		_, err := audioinfo.Open(path)

		var target *audioinfo.TruncatedInputError
		if !errors.As(err, &target) {
			t.Fatalf("expected TruncatedInputError, got %T %v", err, err)
		}
		if target.Atom != "mdat" {
			t.Errorf("expected truncation in mdat, got %q", target.Atom)
		}
	})
}

func TestRead_SeeksOverMediaData(t *testing.T) {
	data := createM4AWithMdat("M4A ", 1<<20)
	src := &countingReader{Reader: bytes.NewReader(data)}

	md, err := audioinfo.Read(src)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if md.Title != "Sample" || md.Artist != "Sample Artist" {
		t.Errorf("Title, Artist = %q, %q", md.Title, md.Artist)
	}
	if src.read > 64*1024 {
		t.Errorf("read %d of %d bytes; mdat should be skipped by seeking", src.read, len(data))
	}
}

func TestRead_LeadingFreeAtom(t *testing.T) {
	// A valid MP4 box that is not ftyp is a structural fault, not an
	// unknown format.
	data := append(binary.Atom("free", make([]byte, 8)), createM4A("M4A ")...)

	_, err := audioinfo.Read(bytes.NewReader(data))

	var target *audioinfo.SchemaMismatchError
	if !errors.As(err, &target) {
		t.Fatalf("expected SchemaMismatchError, got %T %v", err, err)
	}
}

func TestRead_Stream(t *testing.T) {
	md, err := audioinfo.Read(strings.NewReader(string(createM4A("M4A "))))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if md.Title != "Sample" {
		t.Errorf("Title = %q, want %q", md.Title, "Sample")
	}
	if got := md.String(); got != "Sample Artist - Sample [4.435s]" {
		t.Errorf("String() = %q", got)
	}
}

func TestRead_Unsupported(t *testing.T) {
	_, err := audioinfo.Read(bytes.NewReader([]byte("RIFF....WAVE")))

	var target *audioinfo.UnsupportedFormatError
	if !errors.As(err, &target) {
		t.Fatalf("expected UnsupportedFormatError, got %T %v", err, err)
	}
}

func TestRead_MissingMoov(t *testing.T) {
	data := createM4A("M4A ")
	_, err := audioinfo.Read(bytes.NewReader(data[:20+1032]))

	var target *audioinfo.SchemaMismatchError
	if !errors.As(err, &target) {
		t.Fatalf("expected SchemaMismatchError, got %T %v", err, err)
	}
}

func TestRead_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	_, err := audioinfo.Read(bytes.NewReader(createM4A("M4A ")),
		audioinfo.WithLogger(logger),
		audioinfo.WithDebugLevel(slog.LevelInfo),
	)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !strings.Contains(buf.String(), "path=moov.udta.meta.ilst") {
		t.Errorf("expected trace lines at info level, log:\n%s", buf.String())
	}
}

func TestOpenContext_Cancelled(t *testing.T) {
	path := writeTemp(t, "song.m4a", createM4A("M4A "))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := audioinfo.OpenContext(ctx, path)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestOpenMany(t *testing.T) {
	paths := []string{
		writeTemp(t, "a.m4a", createM4A("M4A ")),
		writeTemp(t, "b.m4b", createM4A("M4B ")),
		writeTemp(t, "c.m4a", createM4A("mp42")),
	}

	files, err := audioinfo.OpenMany(context.Background(), paths, audioinfo.WithoutCover())
	if err != nil {
		t.Fatalf("OpenMany failed: %v", err)
	}
	if len(files) != len(paths) {
		t.Fatalf("got %d files, want %d", len(files), len(paths))
	}
	for i, f := range files {
		if f.Path != paths[i] {
			t.Errorf("files[%d].Path = %q, want %q (order not preserved)", i, f.Path, paths[i])
		}
	}
	if files[1].Format != audioinfo.FormatM4B {
		t.Errorf("files[1].Format = %v, want M4B", files[1].Format)
	}
}

func TestOpenMany_Empty(t *testing.T) {
	files, err := audioinfo.OpenMany(context.Background(), nil)
	if err != nil || files != nil {
		t.Errorf("OpenMany(nil) = %v, %v, want nil, nil", files, err)
	}
}

// TestOpenMany_Cancellation verifies that a cancelled context stops the batch
func TestOpenMany_Cancellation(t *testing.T) {
	paths := make([]string, 5)
	for i := range paths {
		paths[i] = writeTemp(t, "song.m4a", createM4A("M4A "))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files, err := audioinfo.OpenMany(ctx, paths)
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
	if files != nil {
		t.Error("expected nil files on error")
	}
}

// TestOpenMany_PartialFailure verifies all-or-nothing results
func TestOpenMany_PartialFailure(t *testing.T) {
	validPath := writeTemp(t, "song.m4a", createM4A("M4A "))

	paths := []string{
		validPath,
		"/nonexistent/file.m4b",
		validPath,
	}

	files, err := audioinfo.OpenMany(context.Background(), paths)
	if err == nil {
		t.Fatal("expected error from nonexistent file")
	}
	if !strings.Contains(err.Error(), "/nonexistent/file.m4b") {
		t.Errorf("error should name the failing path, got: %v", err)
	}
	if files != nil {
		t.Error("expected nil files on partial failure")
	}
}
