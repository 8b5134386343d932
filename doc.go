// Package audioinfo reads tag metadata and playback properties from
// M4A/M4B (MP4-family) audio files.
//
// The file is consumed as a forward-only stream: atoms are visited in file
// order, the ones that matter are decoded, and everything else (including
// the media data) is skipped as it streams past. Memory use is bounded by
// the nesting depth of the atom tree plus the cover image, if kept.
//
// # Quick Start
//
//	file, err := audioinfo.Open("song.m4a")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%s - %s (%s)\n", file.Artist, file.Title, file.Duration)
//
// Any io.Reader works, including pipes and network bodies:
//
//	md, err := audioinfo.Read(resp.Body)
//
// # What is extracted
//
//   - Brand and version from ftyp
//   - Duration, playback speed and volume from the movie header, corroborated
//     by the track media headers
//   - iTunes items from moov.udta.meta.ilst: title, artist, album artist,
//     album, genre (text or legacy ID3v1 code), composer, comment, copyright,
//     grouping, lyrics, year, track and disc numbers, compilation flag,
//     rating, tempo and cover image
//
// Metadata.CoverArt decodes just the image header of the cover to report
// its MIME type and dimensions.
//
// # Error Handling
//
// A parse either succeeds with a complete record or fails; there is no
// partial result. Failures are typed:
//
//   - *TruncatedInputError: the input ended inside a header or value
//   - *MalformedStructureError: an atom size is invalid or overruns its parent
//   - *SchemaMismatchError: a required atom (ftyp, moov, mdia, data...) is missing
//   - *UnsupportedFormatError: the input is not an MP4-family file
//
// Use errors.As to inspect them; each carries the dotted atom path, for
// example "moov.udta.meta.ilst.©nam".
//
// # Logging
//
// Diagnostics go to a *slog.Logger supplied with WithLogger. Each atom
// visited is traced at the debug level; unexpected brands are warnings.
// Without a logger nothing is emitted.
package audioinfo
