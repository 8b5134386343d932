package audioinfo

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/audioinfo/internal/binary"
	_ "github.com/simonhull/audioinfo/internal/m4a" // Register M4A/M4B parser
	"github.com/simonhull/audioinfo/internal/registry"
	"github.com/simonhull/audioinfo/internal/types"
)

// File is the metadata of one audio file on disk.
//
//	file, err := audioinfo.Open("song.m4a")
//	if err != nil {
//		return err
//	}
//	fmt.Println(file.Title, file.Duration)
type File struct {
	// Path to the audio file
	Path string

	// Detected format (M4A or M4B)
	Format Format

	// File size in bytes
	Size int64

	Metadata
}

// Read parses metadata from a stream positioned at the start of a file.
//
// The stream is read once, front to back, and never rewound. If r is also
// an io.Seeker, unneeded atoms such as the media data are skipped by
// seeking instead of reading.
//
// Read returns either a complete record or an error. Structural faults are
// reported as *TruncatedInputError, *MalformedStructureError or
// *SchemaMismatchError; inputs that are not MP4-family files give
// *UnsupportedFormatError.
func Read(r io.Reader, opts ...Option) (*Metadata, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	// The parser keeps the peeked bytes and seeks r directly when it can
	p := binary.NewPeeked(r)
	header, err := p.Peek(types.HeaderSize)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read header: %w", err)
	}

	format, err := types.DetectFormat(header, "")
	if err != nil {
		return nil, err
	}
	return parse(p, format, "", options)
}

// Open opens an audio file and reads its metadata.
//
// Supported formats: M4A, M4B (and other MP4-family brands, with a logged
// advisory). The file is closed before Open returns.
//
// Options can be provided to customize parsing behavior:
//
//	file, err := audioinfo.Open("song.m4a",
//	    audioinfo.WithLogger(logger),
//	    audioinfo.WithoutCover(),
//	)
func Open(path string, opts ...Option) (*File, error) {
	return OpenContext(context.Background(), path, opts...)
}

// OpenContext is Open with cancellation: once ctx is done, the next read
// from the file fails with ctx.Err() and parsing stops.
func OpenContext(ctx context.Context, path string, opts ...Option) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	// Detect without moving the file offset
	header := make([]byte, types.HeaderSize)
	n, err := f.ReadAt(header, 0)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read header: %w", err)
	}
	format, err := types.DetectFormat(header[:n], path)
	if err != nil {
		return nil, err
	}

	md, err := parse(contextReader(ctx, f), format, path, options)
	if err != nil {
		return nil, err
	}

	return &File{
		Path:     path,
		Format:   format,
		Size:     stat.Size(),
		Metadata: *md,
	}, nil
}

// parse hands the stream to the parser registered for format.
func parse(r io.Reader, format Format, path string, options *openOptions) (*Metadata, error) {
	parser := registry.Get(format)
	if parser == nil {
		return nil, &UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("no parser available for format %s (supported: %v)", format, registry.Formats()),
		}
	}

	md, err := parser.Parse(r, options.config())
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", format, err)
	}
	return md, nil
}

// OpenMany opens multiple audio files concurrently.
//
// Files are parsed in parallel using up to runtime.NumCPU() goroutines;
// each parse is itself sequential. Results are returned in the same order
// as the input paths. The first failure cancels the remaining work and is
// returned with the offending path.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	files, err := audioinfo.OpenMany(ctx, paths, audioinfo.WithoutCover())
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, f := range files {
//		fmt.Printf("%s: %s - %s\n", f.Format, f.Artist, f.Title)
//	}
func OpenMany(ctx context.Context, paths []string, opts ...Option) ([]*File, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*File, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			file, err := OpenContext(ctx, path, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// contextReader fails reads once ctx is done. Seeking is passed through so
// the parser can still skip large atoms.
func contextReader(ctx context.Context, f *os.File) io.Reader {
	return &ctxReadSeeker{ctx: ctx, f: f}
}

type ctxReadSeeker struct {
	ctx context.Context
	f   *os.File
}

func (r *ctxReadSeeker) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.f.Read(p)
}

func (r *ctxReadSeeker) Seek(offset int64, whence int) (int64, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.f.Seek(offset, whence)
}
