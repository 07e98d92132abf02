package archive

import (
	"fmt"
	"reflect"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
	stgpsr "github.com/yuin/stagparser"
)

// dtypeFromTag maps this package's small set of `tiledb:"dtype=..."` values
// to their tiledb.Datatype, the same tag vocabulary the original schema
// builder used.
func dtypeFromTag(name string) (tiledb.Datatype, error) {
	switch name {
	case "int16":
		return tiledb.TILEDB_INT16, nil
	case "uint16":
		return tiledb.TILEDB_UINT16, nil
	case "int32":
		return tiledb.TILEDB_INT32, nil
	case "uint32":
		return tiledb.TILEDB_UINT32, nil
	case "int64":
		return tiledb.TILEDB_INT64, nil
	case "uint64":
		return tiledb.TILEDB_UINT64, nil
	case "float32":
		return tiledb.TILEDB_FLOAT32, nil
	case "float64":
		return tiledb.TILEDB_FLOAT64, nil
	case "datetime_ns":
		return tiledb.TILEDB_DATETIME_NS, nil
	default:
		return 0, fmt.Errorf("archive: unsupported tiledb dtype tag %q", name)
	}
}

// buildAttrSchema walks every exported field of a tagged struct (passed as
// a pointer) via reflection and stagparser, adding one zstd-compressed
// attribute per field whose `tiledb:"ftype=attr"` tag is set; fields tagged
// `ftype=dim` are skipped since the row dimension is built separately by
// newDenseSchema. This generalizes the original per-record schemaAttrs
// methods into one reusable walker.
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
			return fmt.Errorf("archive: field %s missing ftype tag", name)
		}
		ftype, _ := ftypeDef.Attribute("ftype")
		if ftype == "dim" {
			continue
		}

		dtypeDef, ok := fieldDefs["dtype"]
		if !ok {
			return fmt.Errorf("archive: field %s missing dtype tag", name)
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
