package archive

import (
	"errors"
	"time"

	tiledb "github.com/TileDB-Inc/TileDB-Go"

	"github.com/oceansensing/emgsf"
)

// taggedAttitude mirrors emgsf.AttitudeRecord's flattened sample columns
// with the tiledb/filters struct tags the schema walker reads; kept
// separate from the decoder's own AttitudeRecord so the wire format isn't
// coupled to the archival layout.
type taggedAttitude struct {
	Row       []uint64    `tiledb:"dtype=uint64,ftype=dim"`
	Timestamp []time.Time `tiledb:"dtype=datetime_ns,ftype=attr"`
	Roll      []float32   `tiledb:"dtype=float32,ftype=attr"`
	Pitch     []float32   `tiledb:"dtype=float32,ftype=attr"`
	Heave     []float32   `tiledb:"dtype=float32,ftype=attr"`
	Heading   []float32   `tiledb:"dtype=float32,ftype=attr"`
}

// FlattenAttitude concatenates every sample across a run of AttitudeRecords
// into one column set, resolving each sample's absolute timestamp from its
// record's Base timestamp and per-sample OffsetMsec.
func FlattenAttitude(records []*emgsf.AttitudeRecord) taggedAttitude {
	var out taggedAttitude
	for _, rec := range records {
		base := rec.Base.ToTime()
		for _, s := range rec.Samples {
			out.Timestamp = append(out.Timestamp, base.Add(time.Duration(s.OffsetMsec)*time.Millisecond))
			out.Roll = append(out.Roll, s.Roll)
			out.Pitch = append(out.Pitch, s.Pitch)
			out.Heave = append(out.Heave, s.Heave)
			out.Heading = append(out.Heading, s.Heading)
		}
	}
	return out
}

// WriteAttitude persists a flattened attitude column set to a new dense
// TileDB array at uri, one row per sample.
func WriteAttitude(ctx *tiledb.Context, uri string, data taggedAttitude) error {
	nrows := uint64(len(data.Timestamp))

	schema, err := newDenseSchema(ctx, nrows, tileSizeFor(nrows))
	if err != nil {
		return errors.Join(ErrCreateSchema, err)
	}
	defer schema.Free()

	if err := buildAttrSchema(ctx, schema, &data); err != nil {
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
	for i, t := range data.Timestamp {
		nanos[i] = t.UnixNano()
	}
	if _, err := query.SetDataBuffer("Timestamp", nanos); err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	if _, err := query.SetDataBuffer("Roll", data.Roll); err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	if _, err := query.SetDataBuffer("Pitch", data.Pitch); err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	if _, err := query.SetDataBuffer("Heave", data.Heave); err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	if _, err := query.SetDataBuffer("Heading", data.Heading); err != nil {
		return errors.Join(ErrWriteArray, err)
	}

	if err := query.Submit(); err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	return query.Finalize()
}

// tileSizeFor picks a tile extent that never exceeds the dimension's own
// span (TileDB rejects a tile extent larger than the dimension domain).
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
