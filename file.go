package emgsf

import (
	"bytes"
	"io"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
)

// SurveyFile is an opened survey file (EM series datagram stream or
// Imagenex .83P/.83M) backed by TileDB's VFS, so the same code path reads
// from a local filesystem or an object store such as S3 given a suitable
// TileDB config (grounded on the teacher's GsfFile/GenericStream pair).
type SurveyFile struct {
	Uri      string
	filesize uint64
	config   *tiledb.Config
	ctx      *tiledb.Context
	vfs      *tiledb.VFS
	handler  *tiledb.VFSfh
	Stream
}

// OpenSurvey opens uri for streamed IO. When inMemory is true the entire
// file is read into a byte buffer up front and served from memory;
// otherwise reads go straight through the VFS handle.
func OpenSurvey(uri, configUri string, inMemory bool) (*SurveyFile, error) {
	var (
		config *tiledb.Config
		err    error
	)

	if configUri == "" {
		config, err = tiledb.NewConfig()
	} else {
		config, err = tiledb.LoadConfig(configUri)
	}
	if err != nil {
		return nil, err
	}

	ctx, err := tiledb.NewContext(config)
	if err != nil {
		config.Free()
		return nil, err
	}

	vfs, err := tiledb.NewVFS(ctx, config)
	if err != nil {
		ctx.Free()
		config.Free()
		return nil, err
	}

	handler, err := vfs.Open(uri, tiledb.TILEDB_VFS_READ)
	if err != nil {
		vfs.Free()
		ctx.Free()
		config.Free()
		return nil, err
	}

	filesize, err := vfs.FileSize(uri)
	if err != nil {
		handler.Close()
		vfs.Free()
		ctx.Free()
		config.Free()
		return nil, err
	}

	stream, err := genericStream(handler, filesize, inMemory)
	if err != nil {
		handler.Close()
		vfs.Free()
		ctx.Free()
		config.Free()
		return nil, err
	}

	return &SurveyFile{
		Uri:      uri,
		filesize: filesize,
		config:   config,
		ctx:      ctx,
		vfs:      vfs,
		handler:  handler,
		Stream:   stream,
	}, nil
}

// genericStream mirrors the teacher's GenericStream: either the raw VFS
// handle (streamed IO) or the whole file slurped into a seekable in-memory
// buffer.
func genericStream(handler *tiledb.VFSfh, size uint64, inMemory bool) (Stream, error) {
	if !inMemory {
		return handler, nil
	}
	buffer := make([]byte, size)
	if _, err := io.ReadFull(handler, buffer); err != nil {
		return nil, err
	}
	return bytes.NewReader(buffer), nil
}

// Close releases the TileDB VFS handles backing the file.
func (f *SurveyFile) Close() error {
	err := f.handler.Close()
	f.vfs.Free()
	f.ctx.Free()
	f.config.Free()
	return err
}
