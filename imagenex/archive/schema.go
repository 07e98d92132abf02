package archive

import (
	"fmt"
	"reflect"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
	stgpsr "github.com/yuin/stagparser"
)

// dtypeFromTag mirrors emgsf/archive's identically-named helper; kept
// separate since the two packages' tagged struct sets do not overlap.
func dtypeFromTag(name string) (tiledb.Datatype, error) {
	switch name {
	case "uint32":
		return tiledb.TILEDB_UINT32, nil
	case "uint64":
		return tiledb.TILEDB_UINT64, nil
	case "float32":
		return tiledb.TILEDB_FLOAT32, nil
	case "float64":
		return tiledb.TILEDB_FLOAT64, nil
	case "datetime_ns":
		return tiledb.TILEDB_DATETIME_NS, nil
	default:
		return 0, fmt.Errorf("imagenex/archive: unsupported tiledb dtype tag %q", name)
	}
}

// buildAttrSchema walks a tagged struct's exported fields and adds one
// zstd-compressed attribute per `tiledb:"ftype=attr"` field, the same
// reflection+stagparser walker emgsf/archive uses.
func buildAttrSchema(ctx *tiledb.Context, schema *tiledb.ArraySchema, tagged any) error {
	tdbDefs, err := stgpsr.ParseStruct(tagged, "tiledb")
	if err != nil {
		return err
	}

	values := reflect.ValueOf(tagged).Elem()
	types := values.Type()

	for i := 0; i < values.NumField(); i++ {
		name := types.Field(i).Name
		fieldDefs := make(map[string]stgpsr.Definition, len(tdbDefs[name]))
		for _, d := range tdbDefs[name] {
			fieldDefs[d.Name()] = d
		}

		ftypeDef, ok := fieldDefs["ftype"]
		if !ok {
			return fmt.Errorf("imagenex/archive: field %s missing ftype tag", name)
		}
		ftype, _ := ftypeDef.Attribute("ftype")
		if ftype == "dim" {
			continue
		}

		dtypeDef, ok := fieldDefs["dtype"]
		if !ok {
			return fmt.Errorf("imagenex/archive: field %s missing dtype tag", name)
		}
		dtypeName, _ := dtypeDef.Attribute("dtype")
		dtype, err := dtypeFromTag(fmt.Sprint(dtypeName))
		if err != nil {
			return err
		}

		if err := addZstdAttr(ctx, schema, name, dtype); err != nil {
			return err
		}
	}
	return nil
}

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

func arrayOpenWrite(ctx *tiledb.Context, uri string) (*tiledb.Array, error) {
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
