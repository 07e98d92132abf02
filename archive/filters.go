// Package archive persists decoded Store records (ping, attitude, SVP) to
// TileDB arrays, adapted from the original GSF-container archival layer to
// the new ping/attitude/SVP record shapes (§4.8 "record store").
package archive

import (
	"errors"
	"math"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
)

var (
	ErrCreateSchema = errors.New("archive: error creating tiledb schema")
	ErrWriteArray   = errors.New("archive: error writing tiledb array")
)

// ArrayOpenWrite opens an existing array for a write query.
func ArrayOpenWrite(ctx *tiledb.Context, uri string) (*tiledb.Array, error) {
	array, err := tiledb.NewArray(ctx, uri)
	if err != nil {
		return nil, err
	}
	if err := array.Open(tiledb.TILEDB_WRITE); err != nil {
		array.Free()
		return nil, err
	}
	return array, nil
}

// zstdFilter builds the single compression filter every attribute and row
// dimension in this package uses; the corpus's GZIP/LZ4/RLE/BZIP2/
// bit-width-reduction variants are not exercised here since every field
// this package stores compresses well under zstd alone, and a second
// compressor adds a second failure surface with no measured benefit.
func zstdFilter(ctx *tiledb.Context, level int32) (*tiledb.Filter, error) {
	filt, err := tiledb.NewFilter(ctx, tiledb.TILEDB_FILTER_ZSTD)
	if err != nil {
		return nil, err
	}
	if err := filt.SetOption(tiledb.TILEDB_COMPRESSION_LEVEL, level); err != nil {
		filt.Free()
		return nil, err
	}
	return filt, nil
}

// rowDimension builds the "__rows" dense dimension every array in this
// package uses, with a positive-delta + zstd filter pipeline (rows are
// monotonically increasing so delta-encoding is essentially free).
func rowDimension(ctx *tiledb.Context, nrows uint64, tileSize uint64) (*tiledb.Dimension, error) {
	hi := nrows - 1
	if nrows == 0 {
		hi = 0
	}
	dim, err := tiledb.NewDimension(ctx, "__rows", tiledb.TILEDB_UINT64, []uint64{0, hi}, tileSize)
	if err != nil {
		return nil, err
	}

	filters, err := tiledb.NewFilterList(ctx)
	if err != nil {
		dim.Free()
		return nil, err
	}
	defer filters.Free()

	delta, err := tiledb.NewFilter(ctx, tiledb.TILEDB_FILTER_POSITIVE_DELTA)
	if err != nil {
		dim.Free()
		return nil, err
	}
	defer delta.Free()

	zstd, err := zstdFilter(ctx, 16)
	if err != nil {
		dim.Free()
		return nil, err
	}
	defer zstd.Free()

	if err := filters.AddFilter(delta); err != nil {
		dim.Free()
		return nil, err
	}
	if err := filters.AddFilter(zstd); err != nil {
		dim.Free()
		return nil, err
	}
	if err := dim.SetFilterList(filters); err != nil {
		dim.Free()
		return nil, err
	}
	return dim, nil
}

// newDenseSchema builds a one-dimensional dense schema over a row
// dimension, the shape every array in this package uses.
func newDenseSchema(ctx *tiledb.Context, nrows uint64, tileSize uint64) (*tiledb.ArraySchema, error) {
	domain, err := tiledb.NewDomain(ctx)
	if err != nil {
		return nil, err
	}
	defer domain.Free()

	dim, err := rowDimension(ctx, nrows, tileSize)
	if err != nil {
		return nil, err
	}
	defer dim.Free()

	if err := domain.AddDimensions(dim); err != nil {
		return nil, err
	}

	schema, err := tiledb.NewArraySchema(ctx, tiledb.TILEDB_DENSE)
	if err != nil {
		return nil, err
	}
	if err := schema.SetDomain(domain); err != nil {
		schema.Free()
		return nil, err
	}
	if err := schema.SetCellOrder(tiledb.TILEDB_ROW_MAJOR); err != nil {
		schema.Free()
		return nil, err
	}
	if err := schema.SetTileOrder(tiledb.TILEDB_ROW_MAJOR); err != nil {
		schema.Free()
		return nil, err
	}
	return schema, nil
}

// newSparseBeamSchema builds the geospatially-indexed sounding array: X/Y
// (lon/lat) float64 dimensions, Hilbert cell order, duplicates allowed since
// multiple soundings can legitimately share a cell, the same shape and
// constants (tile 1000, capacity 100,000) the teacher's beamSparseSchema
// used for its lon/lat-dimensioned beam array.
func newSparseBeamSchema(ctx *tiledb.Context) (*tiledb.ArraySchema, error) {
	domain, err := tiledb.NewDomain(ctx)
	if err != nil {
		return nil, err
	}
	defer domain.Free()

	const tileSz = 1000
	minF64 := -math.MaxFloat64

	xdim, err := tiledb.NewDimension(ctx, "X", tiledb.TILEDB_FLOAT64, []float64{minF64, math.MaxFloat64}, float64(tileSz))
	if err != nil {
		return nil, err
	}
	defer xdim.Free()

	ydim, err := tiledb.NewDimension(ctx, "Y", tiledb.TILEDB_FLOAT64, []float64{minF64, math.MaxFloat64}, float64(tileSz))
	if err != nil {
		return nil, err
	}
	defer ydim.Free()

	dimFilters, err := tiledb.NewFilterList(ctx)
	if err != nil {
		return nil, err
	}
	defer dimFilters.Free()

	zstd, err := zstdFilter(ctx, 16)
	if err != nil {
		return nil, err
	}
	defer zstd.Free()

	if err := dimFilters.AddFilter(zstd); err != nil {
		return nil, err
	}
	if err := xdim.SetFilterList(dimFilters); err != nil {
		return nil, err
	}
	if err := ydim.SetFilterList(dimFilters); err != nil {
		return nil, err
	}

	if err := domain.AddDimensions(xdim, ydim); err != nil {
		return nil, err
	}

	schema, err := tiledb.NewArraySchema(ctx, tiledb.TILEDB_SPARSE)
	if err != nil {
		return nil, err
	}
	if err := schema.SetDomain(domain); err != nil {
		schema.Free()
		return nil, err
	}
	if err := schema.SetCapacity(100_000); err != nil {
		schema.Free()
		return nil, err
	}
	if err := schema.SetCellOrder(tiledb.TILEDB_HILBERT); err != nil {
		schema.Free()
		return nil, err
	}
	if err := schema.SetTileOrder(tiledb.TILEDB_ROW_MAJOR); err != nil {
		schema.Free()
		return nil, err
	}
	if err := schema.SetAllowsDups(true); err != nil {
		schema.Free()
		return nil, err
	}

	for _, attr := range []struct {
		name  string
		dtype tiledb.Datatype
	}{
		{"PingIndex", tiledb.TILEDB_UINT32},
		{"Bath", tiledb.TILEDB_FLOAT32},
		{"BathAcross", tiledb.TILEDB_FLOAT32},
		{"BathAlong", tiledb.TILEDB_FLOAT32},
	} {
		if err := addZstdAttr(ctx, schema, attr.name, attr.dtype); err != nil {
			schema.Free()
			return nil, err
		}
	}

	if err := schema.Check(); err != nil {
		schema.Free()
		return nil, err
	}
	return schema, nil
}

// addZstdAttr is the one-line-per-field attribute constructor every schema
// builder in this package calls: every attribute this package stores gets
// the same zstd(level=16) pipeline.
func addZstdAttr(ctx *tiledb.Context, schema *tiledb.ArraySchema, name string, dtype tiledb.Datatype) error {
	attr, err := tiledb.NewAttribute(ctx, name, dtype)
	if err != nil {
		return err
	}
	defer attr.Free()

	filters, err := tiledb.NewFilterList(ctx)
	if err != nil {
		return err
	}
	defer filters.Free()

	zstd, err := zstdFilter(ctx, 16)
	if err != nil {
		return err
	}
	defer zstd.Free()

	if err := filters.AddFilter(zstd); err != nil {
		return err
	}
	if err := attr.SetFilterList(filters); err != nil {
		return err
	}
	return schema.AddAttributes(attr)
}
