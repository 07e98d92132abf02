// Package archive persists decoded Imagenex DeltaT pings to TileDB arrays,
// the same columnar sink shape emgsf/archive uses for Simrad pings (SPEC_FULL
// §4.10), adapted here to the 83P/83M beam-range/intensity record shape
// instead of recomputed bathymetry.
package archive

import (
	"errors"
	"time"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
	"github.com/samber/lo"

	"github.com/oceansensing/emgsf/imagenex"
)

var (
	ErrCreateSchema = errors.New("imagenex/archive: error creating tiledb schema")
	ErrWriteArray   = errors.New("imagenex/archive: error writing tiledb array")
)

// taggedPingHeader is one dense row per ping: the header scalars every
// .83P/.83M record carries regardless of beam count.
type taggedPingHeader struct {
	Row        []uint64    `tiledb:"dtype=uint64,ftype=dim"`
	Timestamp  []time.Time `tiledb:"dtype=datetime_ns,ftype=attr"`
	Latitude   []float64   `tiledb:"dtype=float64,ftype=attr"`
	Longitude  []float64   `tiledb:"dtype=float64,ftype=attr"`
	Heading    []float32   `tiledb:"dtype=float32,ftype=attr"`
	NumBeams   []uint32    `tiledb:"dtype=uint32,ftype=attr"`
	PingNumber []uint32    `tiledb:"dtype=uint32,ftype=attr"`
}

// taggedBeams is the flattened per-beam range/intensity table, with a
// parallel PingIndex column identifying which row of taggedPingHeader each
// beam belongs to, the same flatten-with-parent-index layout
// emgsf/archive's taggedSoundings uses.
type taggedBeams struct {
	Row       []uint64 `tiledb:"dtype=uint64,ftype=dim"`
	PingIndex []uint32 `tiledb:"dtype=uint32,ftype=attr"`
	Range     []uint32 `tiledb:"dtype=uint32,ftype=attr"`
	Intensity []uint32 `tiledb:"dtype=uint32,ftype=attr"`
}

// parsePingTimestamp builds the ping's absolute time, to the whole second,
// from the header's ASCII date and HH:MM:SS time fields; the hundredths
// field is not used. An unparseable date gives the zero time and a
// malformed time string gives midnight, so a malformed header does not
// abort the whole flatten pass.
func parsePingTimestamp(h imagenex.Header) time.Time {
	year, month, day, err := imagenex.ParseCalendar(h.Date)
	if err != nil {
		return time.Time{}
	}
	var hour, min, sec int
	_, _ = parseHMS(h.Time, &hour, &min, &sec)
	return time.Date(year, time.Month(month), day, hour, min, sec, 0, time.UTC)
}

// parseHMS parses an "HH:MM:SS" string in place; a malformed string leaves
// the output arguments at their zero values.
func parseHMS(s string, hour, min, sec *int) (int, error) {
	if len(s) != 8 || s[2] != ':' || s[5] != ':' {
		return 0, errBadTimeString
	}
	*hour = int(s[0]-'0')*10 + int(s[1]-'0')
	*min = int(s[3]-'0')*10 + int(s[4]-'0')
	*sec = int(s[6]-'0')*10 + int(s[7]-'0')
	return 0, nil
}

var errBadTimeString = errors.New("imagenex/archive: malformed HH:MM:SS time")

// FlattenPings builds the dense header table and the flattened beam table
// for a run of decoded pings.
func FlattenPings(pings []*imagenex.Ping) (taggedPingHeader, taggedBeams) {
	var hdr taggedPingHeader
	var beams taggedBeams

	rangeByPing := make([][]uint32, len(pings))
	intensityByPing := make([][]uint32, len(pings))

	for i, p := range pings {
		hdr.Timestamp = append(hdr.Timestamp, parsePingTimestamp(p.Header))
		hdr.Latitude = append(hdr.Latitude, p.Header.Latitude)
		hdr.Longitude = append(hdr.Longitude, p.Header.Longitude)
		hdr.Heading = append(hdr.Heading, p.Header.Heading)
		hdr.NumBeams = append(hdr.NumBeams, uint32(p.Header.NumBeams))
		hdr.PingNumber = append(hdr.PingNumber, p.Header.PingNumber)

		ranges := make([]uint32, len(p.Range))
		for j, r := range p.Range {
			ranges[j] = uint32(r)
		}
		rangeByPing[i] = ranges

		// intensities is kept the same length as ranges even when this ping
		// carries no intensity array, so the flattened Intensity column
		// stays row-aligned with Range/PingIndex across a run of mixed
		// v1.00 (no intensity) and v1.10 (intensity) pings.
		intensities := make([]uint32, len(p.Range))
		for j, v := range p.Intensity {
			intensities[j] = uint32(v)
		}
		intensityByPing[i] = intensities

		for range p.Range {
			beams.PingIndex = append(beams.PingIndex, uint32(i))
		}
	}

	beams.Range = lo.Flatten(rangeByPing)
	beams.Intensity = lo.Flatten(intensityByPing)

	return hdr, beams
}

// WritePingHeaders persists the dense per-ping header table.
func WritePingHeaders(ctx *tiledb.Context, uri string, hdr taggedPingHeader) error {
	nrows := uint64(len(hdr.Timestamp))
	schema, err := newDenseSchema(ctx, nrows, tileSizeFor(nrows))
	if err != nil {
		return errors.Join(ErrCreateSchema, err)
	}
	defer schema.Free()
	if err := buildAttrSchema(ctx, schema, &hdr); err != nil {
		return errors.Join(ErrCreateSchema, err)
	}

	array, err := tiledb.NewArray(ctx, uri)
	if err != nil {
		return errors.Join(ErrCreateSchema, err)
	}
	defer array.Free()
	if err := array.Create(schema); err != nil {
		return errors.Join(ErrCreateSchema, err)
	}

	wArray, err := arrayOpenWrite(ctx, uri)
	if err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	defer wArray.Free()
	defer wArray.Close()

	query, err := tiledb.NewQuery(ctx, wArray)
	if err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	defer query.Free()
	if err := query.SetLayout(tiledb.TILEDB_ROW_MAJOR); err != nil {
		return errors.Join(ErrWriteArray, err)
	}

	nanos := make([]int64, nrows)
	for i, t := range hdr.Timestamp {
		nanos[i] = t.UnixNano()
	}
	if _, err := query.SetDataBuffer("Timestamp", nanos); err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	if _, err := query.SetDataBuffer("Latitude", hdr.Latitude); err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	if _, err := query.SetDataBuffer("Longitude", hdr.Longitude); err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	if _, err := query.SetDataBuffer("Heading", hdr.Heading); err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	if _, err := query.SetDataBuffer("NumBeams", hdr.NumBeams); err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	if _, err := query.SetDataBuffer("PingNumber", hdr.PingNumber); err != nil {
		return errors.Join(ErrWriteArray, err)
	}

	if err := query.Submit(); err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	return query.Finalize()
}

// WriteBeams persists the flattened per-beam range/intensity table.
func WriteBeams(ctx *tiledb.Context, uri string, beams taggedBeams) error {
	nrows := uint64(len(beams.Range))
	schema, err := newDenseSchema(ctx, nrows, tileSizeFor(nrows))
	if err != nil {
		return errors.Join(ErrCreateSchema, err)
	}
	defer schema.Free()
	if err := buildAttrSchema(ctx, schema, &beams); err != nil {
		return errors.Join(ErrCreateSchema, err)
	}

	array, err := tiledb.NewArray(ctx, uri)
	if err != nil {
		return errors.Join(ErrCreateSchema, err)
	}
	defer array.Free()
	if err := array.Create(schema); err != nil {
		return errors.Join(ErrCreateSchema, err)
	}

	wArray, err := arrayOpenWrite(ctx, uri)
	if err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	defer wArray.Free()
	defer wArray.Close()

	query, err := tiledb.NewQuery(ctx, wArray)
	if err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	defer query.Free()
	if err := query.SetLayout(tiledb.TILEDB_ROW_MAJOR); err != nil {
		return errors.Join(ErrWriteArray, err)
	}

	if _, err := query.SetDataBuffer("PingIndex", beams.PingIndex); err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	if _, err := query.SetDataBuffer("Range", beams.Range); err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	if _, err := query.SetDataBuffer("Intensity", beams.Intensity); err != nil {
		return errors.Join(ErrWriteArray, err)
	}

	if err := query.Submit(); err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	return query.Finalize()
}

// tileSizeFor picks a tile extent that never exceeds the dimension's own
// span, mirroring emgsf/archive's identically-named helper.
func tileSizeFor(nrows uint64) uint64 {
	const want = 10000
	if nrows == 0 {
		return 1
	}
	if nrows < want {
		return nrows
	}
	return want
}
