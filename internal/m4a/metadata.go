package m4a

import (
	"strconv"

	"github.com/simonhull/audioinfo/internal/binary"
	"github.com/simonhull/audioinfo/internal/genre"
	"github.com/simonhull/audioinfo/internal/mp4"
	"github.com/simonhull/audioinfo/internal/types"
)

// valueDecoder reads the payload of a data atom, positioned after its
// type and locale fields, into the record.
type valueDecoder func(data *mp4.Atom, md *types.Metadata) error

// decoders maps an item tag (the parent of the data atom) to its decoder.
// Tags not listed are skipped. In MP4, © is the single byte 0xA9.
var decoders = map[string]valueDecoder{
	"\xA9alb": text(func(md *types.Metadata) *string { return &md.Album }),
	"aART":    text(func(md *types.Metadata) *string { return &md.AlbumArtist }),
	"\xA9ART": text(func(md *types.Metadata) *string { return &md.Artist }),
	"\xA9cmt": text(func(md *types.Metadata) *string { return &md.Comment }),
	"\xA9nam": text(func(md *types.Metadata) *string { return &md.Title }),
	"\xA9grp": text(func(md *types.Metadata) *string { return &md.Grouping }),
	"\xA9lyr": text(func(md *types.Metadata) *string { return &md.Lyrics }),

	// Synonyms share a field; the first non-empty value wins.
	"\xA9com": firstText(composer),
	"\xA9wrt": firstText(composer),
	"cprt":    firstText(copyright),
	"\xA9cpy": firstText(copyright),
	"\xA9gen": firstText(genreName),
	"gnre":    genreCode,

	"\xA9day": year,
	"trkn":    pair(func(md *types.Metadata) (*int, *int) { return &md.Track, &md.Tracks }),
	"disk":    pair(func(md *types.Metadata) (*int, *int) { return &md.Disc, &md.Discs }),
	"cpil":    compilation,
	"rtng":    rating,
	"tmpo":    tempo,
	"covr":    cover,
}

func composer(md *types.Metadata) *string  { return &md.Composer }
func copyright(md *types.Metadata) *string { return &md.Copyright }
func genreName(md *types.Metadata) *string { return &md.Genre }

// udta stops at the first meta atom.
func (e *extractor) udta(udta *mp4.Atom) error {
	for udta.HasMoreChildren() {
		child, err := udta.NextChild()
		if err != nil {
			return err
		}
		if child.Type() == "meta" {
			e.trace(child)
			return e.meta(child)
		}
	}
	return nil
}

// meta is a full box: 4 bytes of version and flags precede its children.
func (e *extractor) meta(meta *mp4.Atom) error {
	if err := meta.Skip(4, "meta version and flags"); err != nil {
		return err
	}
	for meta.HasMoreChildren() {
		child, err := meta.NextChild()
		if err != nil {
			return err
		}
		if child.Type() == "ilst" {
			e.trace(child)
			return e.ilst(child)
		}
	}
	return nil
}

func (e *extractor) ilst(ilst *mp4.Atom) error {
	for ilst.HasMoreChildren() {
		item, err := ilst.NextChild()
		if err != nil {
			return err
		}
		e.trace(item)

		if item.Remaining() == 0 {
			e.debug("empty metadata item", "atom", item.Path())
			continue
		}

		data, err := item.NextChildUpTo("data")
		if err != nil {
			return err
		}
		if err := e.data(data); err != nil {
			return err
		}
	}
	return nil
}

// data decodes one value. The decoder is chosen by the tag of the item
// that encloses the data atom.
//
//	type indicator(4) locale(4) value(...)
func (e *extractor) data(data *mp4.Atom) error {
	if err := data.Skip(8, "data type and locale"); err != nil {
		return err
	}

	tag := data.Parent().Type()
	decode, ok := decoders[tag]
	if !ok {
		return nil
	}

	if tag == "covr" && !e.wantCover(data) {
		return data.Discard()
	}
	return decode(data, &e.md)
}

// wantCover applies the cover options to a covr value.
func (e *extractor) wantCover(data *mp4.Atom) bool {
	if e.cfg.SkipCover {
		return false
	}
	if limit := e.cfg.MaxCoverSize; limit > 0 && data.Remaining() > limit {
		e.debug("cover skipped", "atom", data.Path(), "size", data.Remaining(), "limit", limit)
		return false
	}
	return true
}

func readText(data *mp4.Atom) (string, error) {
	return data.ReadRemainingString(binary.UTF8, "text value")
}

func text(field func(*types.Metadata) *string) valueDecoder {
	return func(data *mp4.Atom, md *types.Metadata) error {
		s, err := readText(data)
		if err != nil {
			return err
		}
		*field(md) = s
		return nil
	}
}

func firstText(field func(*types.Metadata) *string) valueDecoder {
	return func(data *mp4.Atom, md *types.Metadata) error {
		if *field(md) != "" {
			return nil
		}
		return text(field)(data, md)
	}
}

// genreCode handles the legacy gnre item: a 16-bit, one-based ID3v1 genre
// code. Codes outside the table are ignored. Anything other than two bytes
// is read as text.
func genreCode(data *mp4.Atom, md *types.Metadata) error {
	if md.Genre != "" {
		return nil
	}
	if data.Remaining() != 2 {
		return firstText(genreName)(data, md)
	}
	code, err := data.ReadUint16("genre code")
	if err != nil {
		return err
	}
	if name, ok := genre.ByCode(int(code)); ok {
		md.Genre = name
	}
	return nil
}

// year takes the leading four characters of the release date, so both
// "2013" and "2013-05-01T07:00:00Z" give 2013.
func year(data *mp4.Atom, md *types.Metadata) error {
	s, err := readText(data)
	if err != nil {
		return err
	}
	if len(s) < 4 {
		return nil
	}
	if y, err := strconv.Atoi(s[:4]); err == nil && y > 0 {
		md.Year = y
	}
	return nil
}

// pair reads trkn and disk values: an optional 2-byte pad, then the number
// and the total as 16-bit integers.
func pair(fields func(*types.Metadata) (*int, *int)) valueDecoder {
	return func(data *mp4.Atom, md *types.Metadata) error {
		if data.Remaining() >= 6 {
			if err := data.Skip(2, "pad"); err != nil {
				return err
			}
		}
		n, err := data.ReadUint16("number")
		if err != nil {
			return err
		}
		number, total := fields(md)
		*number = int(n)

		if data.Remaining() < 2 {
			return nil
		}
		t, err := data.ReadUint16("total")
		if err != nil {
			return err
		}
		*total = int(t)
		return nil
	}
}

func compilation(data *mp4.Atom, md *types.Metadata) error {
	b, err := data.ReadBool("compilation flag")
	if err != nil {
		return err
	}
	md.Compilation = b
	return nil
}

func rating(data *mp4.Atom, md *types.Metadata) error {
	r, err := data.ReadUint8("rating")
	if err != nil {
		return err
	}
	md.Rating = r
	return nil
}

func tempo(data *mp4.Atom, md *types.Metadata) error {
	bpm, err := data.ReadUint16("tempo")
	if err != nil {
		return err
	}
	md.Tempo = int(bpm)
	return nil
}

func cover(data *mp4.Atom, md *types.Metadata) error {
	b, err := data.ReadBytes("cover")
	if err != nil {
		return err
	}
	md.Cover = b
	return nil
}
