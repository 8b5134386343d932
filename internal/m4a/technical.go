package m4a

import (
	"math"
	"time"

	"github.com/simonhull/audioinfo/internal/mp4"
)

// durationTolerance is how far the track duration may drift from the movie
// duration before the disagreement is logged.
const durationTolerance = 2 * time.Millisecond

// mvhd parses the movie header for duration, playback speed and volume.
//
//	version(1) flags(3) creation+modification(8 or 16)
//	timescale(4) duration(4 or 8) rate(4, 16.16) volume(2, 8.8)
func (e *extractor) mvhd(mvhd *mp4.Atom) error {
	timescale, units, err := readMediaTimes(mvhd)
	if err != nil {
		return err
	}
	e.duration(mvhd, timescale, units)

	speed, err := mvhd.ReadIntegerFixedPoint("preferred rate")
	if err != nil {
		return err
	}
	volume, err := mvhd.ReadShortFixedPoint("preferred volume")
	if err != nil {
		return err
	}
	e.md.Speed = speed
	e.md.Volume = volume
	return nil
}

// trak reads the media header of a track. The track duration only fills the
// record when the movie header did not.
func (e *extractor) trak(trak *mp4.Atom) error {
	mdia, err := trak.NextChildUpTo("mdia")
	if err != nil {
		return err
	}
	e.trace(mdia)

	mdhd, err := mdia.NextChildOf("mdhd")
	if err != nil {
		return err
	}
	e.trace(mdhd)

	timescale, units, err := readMediaTimes(mdhd)
	if err != nil {
		return err
	}
	e.duration(mdhd, timescale, units)
	return nil
}

// readMediaTimes reads the common prefix of mvhd and mdhd: version and
// flags, the two timestamps, the timescale and the duration in units.
// Version 1 uses 64-bit timestamps and duration.
func readMediaTimes(a *mp4.Atom) (timescale uint32, units uint64, err error) {
	version, err := a.ReadUint8("version")
	if err != nil {
		return 0, 0, err
	}
	if err := a.Skip(3, "flags"); err != nil {
		return 0, 0, err
	}

	stamps := int64(8)
	if version == 1 {
		stamps = 16
	}
	if err := a.Skip(stamps, "creation and modification times"); err != nil {
		return 0, 0, err
	}

	timescale, err = a.ReadUint32("timescale")
	if err != nil {
		return 0, 0, err
	}

	if version == 1 {
		units, err = a.ReadUint64("duration")
	} else {
		var u32 uint32
		u32, err = a.ReadUint32("duration")
		units = uint64(u32)
	}
	if err != nil {
		return 0, 0, err
	}
	return timescale, units, nil
}

// duration records the first duration seen and compares later ones
// against it.
func (e *extractor) duration(a *mp4.Atom, timescale uint32, units uint64) {
	d, ok := toDuration(units, timescale)
	if !ok {
		e.debug("duration ignored", "atom", a.Path(), "timescale", timescale, "units", units)
		return
	}

	if e.md.Duration == 0 {
		e.md.Duration = d
		return
	}
	if diff := e.md.Duration - d; diff > durationTolerance || diff < -durationTolerance {
		e.debug("duration mismatch", "atom", a.Path(), "have", e.md.Duration, "found", d)
	}
}

// toDuration converts media units to whole milliseconds, truncating.
// ok is false for a zero timescale or a duration that does not fit.
func toDuration(units uint64, timescale uint32) (time.Duration, bool) {
	if timescale == 0 {
		return 0, false
	}
	ts := uint64(timescale)
	whole := units / ts
	const maxMillis = uint64(math.MaxInt64 / int64(time.Millisecond))
	if whole >= maxMillis/1000 {
		return 0, false
	}
	ms := whole*1000 + (units%ts)*1000/ts
	return time.Duration(ms) * time.Millisecond, true
}
