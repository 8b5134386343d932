package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/simonhull/audioinfo"
)

// ShowCmd prints the metadata record of each file.
type ShowCmd struct {
	Files        []string `arg:"" name:"file" help:"M4A/M4B files to read" type:"existingfile"`
	Format       string   `short:"f" enum:"text,json,yaml" default:"text" help:"Output format: text, json or yaml"`
	MaxCoverSize int64    `help:"Skip covers larger than this many bytes (0 = no limit)" default:"0"`
	NoCover      bool     `help:"Do not read cover images"`
}

// Run reads all files concurrently and prints them in argument order.
func (c *ShowCmd) Run(logger *slog.Logger) error {
	opts := []audioinfo.Option{
		audioinfo.WithLogger(logger),
		audioinfo.WithMaxCoverSize(c.MaxCoverSize),
	}
	if c.NoCover {
		opts = append(opts, audioinfo.WithoutCover())
	}

	files, err := audioinfo.OpenMany(context.Background(), c.Files, opts...)
	if err != nil {
		return err
	}
	return writeRecords(os.Stdout, c.Format, files)
}

// record is the serialized view of a file. The cover is described, not
// embedded.
type record struct {
	Path        string  `json:"path" yaml:"path"`
	Format      string  `json:"format" yaml:"format"`
	Size        int64   `json:"size" yaml:"size"`
	Brand       string  `json:"brand,omitempty" yaml:"brand,omitempty"`
	Version     string  `json:"version,omitempty" yaml:"version,omitempty"`
	Title       string  `json:"title,omitempty" yaml:"title,omitempty"`
	Artist      string  `json:"artist,omitempty" yaml:"artist,omitempty"`
	AlbumArtist string  `json:"album_artist,omitempty" yaml:"album_artist,omitempty"`
	Album       string  `json:"album,omitempty" yaml:"album,omitempty"`
	Genre       string  `json:"genre,omitempty" yaml:"genre,omitempty"`
	Composer    string  `json:"composer,omitempty" yaml:"composer,omitempty"`
	Comment     string  `json:"comment,omitempty" yaml:"comment,omitempty"`
	Copyright   string  `json:"copyright,omitempty" yaml:"copyright,omitempty"`
	Grouping    string  `json:"grouping,omitempty" yaml:"grouping,omitempty"`
	Lyrics      string  `json:"lyrics,omitempty" yaml:"lyrics,omitempty"`
	Year        int     `json:"year,omitempty" yaml:"year,omitempty"`
	Track       int     `json:"track,omitempty" yaml:"track,omitempty"`
	Tracks      int     `json:"tracks,omitempty" yaml:"tracks,omitempty"`
	Disc        int     `json:"disc,omitempty" yaml:"disc,omitempty"`
	Discs       int     `json:"discs,omitempty" yaml:"discs,omitempty"`
	Compilation bool    `json:"compilation,omitempty" yaml:"compilation,omitempty"`
	Rating      byte    `json:"rating,omitempty" yaml:"rating,omitempty"`
	Tempo       int     `json:"tempo,omitempty" yaml:"tempo,omitempty"`
	DurationMS  int64   `json:"duration_ms" yaml:"duration_ms"`
	Speed       float64 `json:"speed" yaml:"speed"`
	Volume      float64 `json:"volume" yaml:"volume"`
	Cover       *cover  `json:"cover,omitempty" yaml:"cover,omitempty"`
}

type cover struct {
	MIMEType string `json:"mime_type,omitempty" yaml:"mime_type,omitempty"`
	Width    int    `json:"width,omitempty" yaml:"width,omitempty"`
	Height   int    `json:"height,omitempty" yaml:"height,omitempty"`
	Size     int    `json:"size" yaml:"size"`
}

func newRecord(f *audioinfo.File) record {
	r := record{
		Path:        f.Path,
		Format:      f.Format.String(),
		Size:        f.Size,
		Brand:       f.Brand,
		Version:     f.Version,
		Title:       f.Title,
		Artist:      f.Artist,
		AlbumArtist: f.AlbumArtist,
		Album:       f.Album,
		Genre:       f.Genre,
		Composer:    f.Composer,
		Comment:     f.Comment,
		Copyright:   f.Copyright,
		Grouping:    f.Grouping,
		Lyrics:      f.Lyrics,
		Year:        f.Year,
		Track:       f.Track,
		Tracks:      f.Tracks,
		Disc:        f.Disc,
		Discs:       f.Discs,
		Compilation: f.Compilation,
		Rating:      f.Rating,
		Tempo:       f.Tempo,
		DurationMS:  f.Duration.Milliseconds(),
		Speed:       f.Speed,
		Volume:      f.Volume,
	}
	if art := f.CoverArt(); art != nil {
		r.Cover = &cover{
			MIMEType: art.MIMEType,
			Width:    art.Width,
			Height:   art.Height,
			Size:     len(art.Data),
		}
	}
	return r
}

func writeRecords(w io.Writer, format string, files []*audioinfo.File) error {
	records := make([]record, len(files))
	for i, f := range files {
		records[i] = newRecord(f)
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	default:
		for i, f := range files {
			if i > 0 {
				fmt.Fprintln(w)
			}
			writeText(w, f)
		}
		return nil
	}
}

// writeText prints the set fields of one file, one per line.
func writeText(w io.Writer, f *audioinfo.File) {
	fmt.Fprintf(w, "File:         %s\n", f.Path)
	fmt.Fprintf(w, "Format:       %s (brand %s, version %s)\n", f.Format, f.Brand, f.Version)

	line := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, "%-13s %s\n", label+":", value)
		}
	}
	number := func(n, total int) string {
		switch {
		case n == 0:
			return ""
		case total == 0:
			return strconv.Itoa(n)
		default:
			return fmt.Sprintf("%d/%d", n, total)
		}
	}

	line("Title", f.Title)
	line("Artist", f.Artist)
	line("Album Artist", f.AlbumArtist)
	line("Album", f.Album)
	line("Genre", f.Genre)
	line("Composer", f.Composer)
	line("Grouping", f.Grouping)
	line("Comment", f.Comment)
	line("Copyright", f.Copyright)
	if f.Year > 0 {
		line("Year", strconv.Itoa(f.Year))
	}
	line("Track", number(f.Track, f.Tracks))
	line("Disc", number(f.Disc, f.Discs))
	if f.Compilation {
		line("Compilation", "yes")
	}
	switch f.Rating {
	case 2:
		line("Rating", "clean")
	case 4:
		line("Rating", "explicit")
	}
	if f.Tempo > 0 {
		line("Tempo", strconv.Itoa(f.Tempo)+" bpm")
	}
	line("Duration", f.Duration.String())
	if f.Speed != 1 {
		line("Speed", strconv.FormatFloat(f.Speed, 'g', -1, 64))
	}
	if f.Volume != 1 {
		line("Volume", strconv.FormatFloat(f.Volume, 'g', -1, 64))
	}
	if art := f.CoverArt(); art != nil {
		line("Cover", art.String())
	}
	if f.Lyrics != "" {
		fmt.Fprintf(w, "Lyrics:\n%s\n", f.Lyrics)
	}
}
