package archive

import (
	"errors"
	"time"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
	"github.com/samber/lo"

	"github.com/oceansensing/emgsf"
	"github.com/oceansensing/emgsf/geo"
)

// taggedPingHeader is one dense row per completed ping: the scalar
// navigation/attitude fields recorded at transmit time.
type taggedPingHeader struct {
	Row       []uint64    `tiledb:"dtype=uint64,ftype=dim"`
	Timestamp []time.Time `tiledb:"dtype=datetime_ns,ftype=attr"`
	Latitude  []float64   `tiledb:"dtype=float64,ftype=attr"`
	Longitude []float64   `tiledb:"dtype=float64,ftype=attr"`
	Heading   []float32   `tiledb:"dtype=float32,ftype=attr"`
	NBeams    []uint32    `tiledb:"dtype=uint32,ftype=attr"`
}

// taggedSoundings is the flattened per-beam sounding table: every ping's
// Bath/BathAcross/BathAlong arrays concatenated, with a parallel PingIndex
// column identifying which row of taggedPingHeader each sounding belongs
// to — the same flatten-with-parent-index layout the original ping array
// writer used for its variable-length beam dimension (tiledb.go's
// lo.Flatten usage).
type taggedSoundings struct {
	Row        []uint64  `tiledb:"dtype=uint64,ftype=dim"`
	PingIndex  []uint32  `tiledb:"dtype=uint32,ftype=attr"`
	Bath       []float32 `tiledb:"dtype=float32,ftype=attr"`
	BathAcross []float32 `tiledb:"dtype=float32,ftype=attr"`
	BathAlong  []float32 `tiledb:"dtype=float32,ftype=attr"`
	// Lon/Lat are the per-sounding georeferenced positions (geo.BeamPositions
	// applied to each ping's navigated fix), carried alongside the dense
	// Row-indexed table and doubling as the X/Y dimensions of the sparse
	// array variant WriteSoundings builds when dense is false.
	Lon []float64 `tiledb:"dtype=float64,ftype=attr"`
	Lat []float64 `tiledb:"dtype=float64,ftype=attr"`
}

// FlattenPings builds the dense header table and the flattened sounding
// table for a run of completed pings.
func FlattenPings(pings []*emgsf.PingRecord) (taggedPingHeader, taggedSoundings) {
	var hdr taggedPingHeader
	var snd taggedSoundings

	bathByPing := make([][]float32, len(pings))
	acrossByPing := make([][]float32, len(pings))
	alongByPing := make([][]float32, len(pings))
	lonByPing := make([][]float64, len(pings))
	latByPing := make([][]float64, len(pings))

	coef := geo.WGS84()
	for i, p := range pings {
		hdr.Timestamp = append(hdr.Timestamp, p.Timestamp.ToTime())
		hdr.Latitude = append(hdr.Latitude, p.Latitude)
		hdr.Longitude = append(hdr.Longitude, p.Longitude)
		hdr.Heading = append(hdr.Heading, p.Heading)
		hdr.NBeams = append(hdr.NBeams, uint32(p.NBeams))

		bathByPing[i] = p.Bath
		acrossByPing[i] = p.BathAcross
		alongByPing[i] = p.BathAlong
		lonByPing[i], latByPing[i] = geo.BeamPositions(p.Longitude, p.Latitude, p.Heading, p.BathAcross, p.BathAlong, coef)

		for range p.Bath {
			snd.PingIndex = append(snd.PingIndex, uint32(i))
		}
	}

	snd.Bath = lo.Flatten(bathByPing)
	snd.BathAcross = lo.Flatten(acrossByPing)
	snd.BathAlong = lo.Flatten(alongByPing)
	snd.Lon = lo.Flatten(lonByPing)
	snd.Lat = lo.Flatten(latByPing)

	return hdr, snd
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

	wArray, err := ArrayOpenWrite(ctx, uri)
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
	if _, err := query.SetDataBuffer("NBeams", hdr.NBeams); err != nil {
		return errors.Join(ErrWriteArray, err)
	}

	if err := query.Submit(); err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	return query.Finalize()
}

// WriteSoundings persists the flattened per-beam sounding table. dense
// selects a Row-indexed dense array (buildAttrSchema over taggedSoundings,
// the same shape WritePingHeaders uses); the default, dense=false, builds a
// geospatially-indexed sparse array keyed on Lon/Lat, grounded on the
// teacher's beamSparseSchema (X/Y float64 dims, Hilbert cell order, capacity
// 100,000, duplicates allowed since multiple soundings can share a cell).
func WriteSoundings(ctx *tiledb.Context, uri string, snd taggedSoundings, dense bool) error {
	if dense {
		return writeSoundingsDense(ctx, uri, snd)
	}
	return writeSoundingsSparse(ctx, uri, snd)
}

func writeSoundingsDense(ctx *tiledb.Context, uri string, snd taggedSoundings) error {
	nrows := uint64(len(snd.Bath))
	schema, err := newDenseSchema(ctx, nrows, tileSizeFor(nrows))
	if err != nil {
		return errors.Join(ErrCreateSchema, err)
	}
	defer schema.Free()
	if err := buildAttrSchema(ctx, schema, &snd); err != nil {
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

	wArray, err := ArrayOpenWrite(ctx, uri)
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

	if _, err := query.SetDataBuffer("PingIndex", snd.PingIndex); err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	if _, err := query.SetDataBuffer("Bath", snd.Bath); err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	if _, err := query.SetDataBuffer("BathAcross", snd.BathAcross); err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	if _, err := query.SetDataBuffer("BathAlong", snd.BathAlong); err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	if _, err := query.SetDataBuffer("Lon", snd.Lon); err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	if _, err := query.SetDataBuffer("Lat", snd.Lat); err != nil {
		return errors.Join(ErrWriteArray, err)
	}

	if err := query.Submit(); err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	return query.Finalize()
}

func writeSoundingsSparse(ctx *tiledb.Context, uri string, snd taggedSoundings) error {
	schema, err := newSparseBeamSchema(ctx)
	if err != nil {
		return errors.Join(ErrCreateSchema, err)
	}
	defer schema.Free()

	array, err := tiledb.NewArray(ctx, uri)
	if err != nil {
		return errors.Join(ErrCreateSchema, err)
	}
	defer array.Free()
	if err := array.Create(schema); err != nil {
		return errors.Join(ErrCreateSchema, err)
	}

	wArray, err := ArrayOpenWrite(ctx, uri)
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
	if err := query.SetLayout(tiledb.TILEDB_UNORDERED); err != nil {
		return errors.Join(ErrWriteArray, err)
	}

	if _, err := query.SetDataBuffer("X", snd.Lon); err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	if _, err := query.SetDataBuffer("Y", snd.Lat); err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	if _, err := query.SetDataBuffer("PingIndex", snd.PingIndex); err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	if _, err := query.SetDataBuffer("Bath", snd.Bath); err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	if _, err := query.SetDataBuffer("BathAcross", snd.BathAcross); err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	if _, err := query.SetDataBuffer("BathAlong", snd.BathAlong); err != nil {
		return errors.Join(ErrWriteArray, err)
	}

	if err := query.Submit(); err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	return query.Finalize()
}
