package archive

import (
	"errors"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
	"github.com/samber/lo"

	"github.com/oceansensing/emgsf"
)

// taggedSVP is the flattened depth/speed sample table for a run of sound
// velocity profiles, with a parallel ProfileIndex column identifying which
// profile each sample belongs to (same flatten-with-parent-index layout as
// taggedSoundings).
type taggedSVP struct {
	Row          []uint64  `tiledb:"dtype=uint64,ftype=dim"`
	ProfileIndex []uint32  `tiledb:"dtype=uint32,ftype=attr"`
	Depth        []float32 `tiledb:"dtype=float32,ftype=attr"`
	Speed        []float32 `tiledb:"dtype=float32,ftype=attr"`
}

// FlattenSVP concatenates every entry across a run of SVPRecords.
func FlattenSVP(profiles []*emgsf.SVPRecord) taggedSVP {
	var out taggedSVP
	depthByProfile := make([][]float32, len(profiles))
	speedByProfile := make([][]float32, len(profiles))

	for i, p := range profiles {
		depths := make([]float32, len(p.Entries))
		speeds := make([]float32, len(p.Entries))
		for j, e := range p.Entries {
			depths[j] = e.Depth
			speeds[j] = e.Speed
		}
		depthByProfile[i] = depths
		speedByProfile[i] = speeds
		for range p.Entries {
			out.ProfileIndex = append(out.ProfileIndex, uint32(i))
		}
	}

	out.Depth = lo.Flatten(depthByProfile)
	out.Speed = lo.Flatten(speedByProfile)
	return out
}

// WriteSVP persists a flattened SVP sample table.
func WriteSVP(ctx *tiledb.Context, uri string, data taggedSVP) error {
	nrows := uint64(len(data.Depth))
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

	if _, err := query.SetDataBuffer("ProfileIndex", data.ProfileIndex); err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	if _, err := query.SetDataBuffer("Depth", data.Depth); err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	if _, err := query.SetDataBuffer("Speed", data.Speed); err != nil {
		return errors.Join(ErrWriteArray, err)
	}

	if err := query.Submit(); err != nil {
		return errors.Join(ErrWriteArray, err)
	}
	return query.Finalize()
}
