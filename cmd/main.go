package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
	"github.com/alitto/pond"
	"github.com/urfave/cli/v2"

	"github.com/oceansensing/emgsf"
	"github.com/oceansensing/emgsf/archive"
	_ "github.com/oceansensing/emgsf/decode"
	"github.com/oceansensing/emgsf/imagenex"
	imgarchive "github.com/oceansensing/emgsf/imagenex/archive"
	"github.com/oceansensing/emgsf/search"
)

// surveyIndex is the per-ping summary written alongside each converted
// survey, the metadata-only counterpart to the full TileDB archive.
type surveyIndex struct {
	Pings     int       `json:"pings"`
	Attitudes int       `json:"attitude_samples"`
	Comments  int       `json:"comments"`
	FirstPing emgsf.Timestamp `json:"first_ping,omitempty"`
	LastPing  emgsf.Timestamp `json:"last_ping,omitempty"`
}

// convertEM handles the conversion process for one Kongsberg EM series
// ("*.all") survey file.
func convertEM(surveyUri, configUri, outdirUri string, inMemory, metadataOnly, dense bool) error {
	dir, file := filepath.Split(surveyUri)
	if outdirUri == "" {
		outdirUri = dir
	}

	log.Println("Processing EM survey:", surveyUri)
	src, err := emgsf.OpenSurvey(surveyUri, configUri, inMemory)
	if err != nil {
		return err
	}
	defer src.Close()

	reader := emgsf.NewReader(src.Stream)

	var pings []*emgsf.PingRecord
	var attitudes []*emgsf.AttitudeRecord
	var svps []*emgsf.SVPRecord
	idx := surveyIndex{}

	for {
		completed, err := reader.Read()
		if err != nil {
			if errors.Is(err, emgsf.ErrEof) {
				break
			}
			return err
		}
		if completed == nil {
			continue
		}

		switch completed.Kind {
		case emgsf.KindData:
			if completed.Ping != nil {
				pings = append(pings, completed.Ping)
				idx.Pings++
				if idx.Pings == 1 {
					idx.FirstPing = completed.Ping.Timestamp
				}
				idx.LastPing = completed.Ping.Timestamp
			}

		case emgsf.KindAttitude:
			if att := reader.Store().Attitude; att != nil {
				attitudes = append(attitudes, att)
				idx.Attitudes += len(att.Samples)
			}

		case emgsf.KindVelocityProfile:
			if svp := reader.Store().SVP; svp != nil {
				svps = append(svps, svp)
			}
		}
	}
	idx.Comments = len(reader.Store().Comments)

	log.Println("Writing metadata and index")
	if _, err := emgsf.WriteJSON(filepath.Join(outdirUri, file+"-index.json"), configUri, idx); err != nil {
		return err
	}

	if metadataOnly {
		log.Println("Finished EM survey:", surveyUri)
		return nil
	}

	config, err := loadTileDBConfig(configUri)
	if err != nil {
		return err
	}
	defer config.Free()

	ctx, err := tiledb.NewContext(config)
	if err != nil {
		return err
	}
	defer ctx.Free()

	grpUri := filepath.Join(outdirUri, file+".tiledb")
	grp, err := tiledb.NewGroup(ctx, grpUri)
	if err != nil {
		return err
	}
	defer grp.Free()

	if err := grp.Create(); err != nil {
		return errors.Join(err, errors.New("error creating tiledb group"))
	}
	if err := grp.Open(tiledb.TILEDB_WRITE); err != nil {
		return errors.Join(err, errors.New("error opening tiledb group in write mode"))
	}

	log.Println("Writing attitude")
	attTagged := archive.FlattenAttitude(attitudes)
	if err := archive.WriteAttitude(ctx, filepath.Join(grpUri, "Attitude.tiledb"), attTagged); err != nil {
		return err
	}
	if err := grp.AddMember("Attitude.tiledb", "Attitude", true); err != nil {
		return errors.Join(err, errors.New("error adding attitude to group"))
	}

	log.Println("Writing sound velocity profiles")
	svpTagged := archive.FlattenSVP(svps)
	if err := archive.WriteSVP(ctx, filepath.Join(grpUri, "SVP.tiledb"), svpTagged); err != nil {
		return err
	}
	if err := grp.AddMember("SVP.tiledb", "SVP", true); err != nil {
		return errors.Join(err, errors.New("error adding svp to group"))
	}

	log.Println("Writing swath bathymetry ping data")
	hdr, snd := archive.FlattenPings(pings)
	if err := archive.WritePingHeaders(ctx, filepath.Join(grpUri, "PingHeaders.tiledb"), hdr); err != nil {
		return err
	}
	if err := grp.AddMember("PingHeaders.tiledb", "PingHeaders", true); err != nil {
		return errors.Join(err, errors.New("error adding ping headers to group"))
	}
	if err := archive.WriteSoundings(ctx, filepath.Join(grpUri, "Soundings.tiledb"), snd, dense); err != nil {
		return err
	}
	if err := grp.AddMember("Soundings.tiledb", "Soundings", true); err != nil {
		return errors.Join(err, errors.New("error adding soundings to group"))
	}
	log.Println("Finished EM survey:", surveyUri)
	return nil
}

// convertImagenex handles the conversion process for one Imagenex DeltaT
// ("*.83P"/"*.83M") survey file: metadata/index always, plus a TileDB ping
// header/beam archive unless metadataOnly is set (mirroring convertEM's
// metadataOnly short-circuit).
func convertImagenex(surveyUri, configUri, outdirUri string, inMemory, metadataOnly bool) error {
	dir, file := filepath.Split(surveyUri)
	if outdirUri == "" {
		outdirUri = dir
	}

	log.Println("Processing Imagenex survey:", surveyUri)
	src, err := emgsf.OpenSurvey(surveyUri, configUri, inMemory)
	if err != nil {
		return err
	}
	defer src.Close()

	reader := imagenex.NewReader(src.Stream)

	var pings []*imagenex.Ping
	comments := 0
	for {
		rec, err := reader.Next()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, imagenex.ErrEof) {
				break
			}
			return err
		}
		if rec.Ping != nil {
			pings = append(pings, rec.Ping)
		}
		if rec.Comment != "" {
			comments++
		}
	}

	idx := map[string]int{"pings": len(pings), "comments": comments}
	if _, err := emgsf.WriteJSON(filepath.Join(outdirUri, file+"-index.json"), configUri, idx); err != nil {
		return err
	}

	if metadataOnly {
		log.Println("Finished Imagenex survey:", surveyUri)
		return nil
	}

	config, err := loadTileDBConfig(configUri)
	if err != nil {
		return err
	}
	defer config.Free()

	ctx, err := tiledb.NewContext(config)
	if err != nil {
		return err
	}
	defer ctx.Free()

	grpUri := filepath.Join(outdirUri, file+".tiledb")
	grp, err := tiledb.NewGroup(ctx, grpUri)
	if err != nil {
		return err
	}
	defer grp.Free()

	if err := grp.Create(); err != nil {
		return errors.Join(err, errors.New("error creating tiledb group"))
	}
	if err := grp.Open(tiledb.TILEDB_WRITE); err != nil {
		return errors.Join(err, errors.New("error opening tiledb group in write mode"))
	}

	log.Println("Writing ping data")
	hdr, beams := imgarchive.FlattenPings(pings)
	if err := imgarchive.WritePingHeaders(ctx, filepath.Join(grpUri, "PingHeaders.tiledb"), hdr); err != nil {
		return err
	}
	if err := grp.AddMember("PingHeaders.tiledb", "PingHeaders", true); err != nil {
		return errors.Join(err, errors.New("error adding ping headers to group"))
	}
	if err := imgarchive.WriteBeams(ctx, filepath.Join(grpUri, "Beams.tiledb"), beams); err != nil {
		return err
	}
	if err := grp.AddMember("Beams.tiledb", "Beams", true); err != nil {
		return errors.Join(err, errors.New("error adding beams to group"))
	}

	log.Println("Finished Imagenex survey:", surveyUri)
	return nil
}

// convertSurvey dispatches on file extension to the EM series or Imagenex
// conversion path.
func convertSurvey(surveyUri, configUri, outdirUri string, inMemory, metadataOnly, dense bool) error {
	ext := strings.ToLower(filepath.Ext(surveyUri))
	switch ext {
	case ".83p", ".83m":
		return convertImagenex(surveyUri, configUri, outdirUri, inMemory, metadataOnly)
	default:
		return convertEM(surveyUri, configUri, outdirUri, inMemory, metadataOnly, dense)
	}
}

// convertSurveyList submits every survey file found under uri to a fixed
// worker pool sized at 2 * n_CPUs.
func convertSurveyList(uri, configUri, outdirUri string, inMemory, metadataOnly, dense bool) error {
	log.Println("Searching uri:", uri)
	items, err := search.FindSurveys(uri, configUri)
	if err != nil {
		return err
	}
	log.Println("Number of surveys to process:", len(items))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	n := runtime.NumCPU() * 2
	pool := pond.New(n, 0, pond.MinWorkers(n), pond.Context(ctx))
	defer pool.StopAndWait()

	for _, name := range items {
		itemUri := name
		pool.Submit(func() {
			if err := convertSurvey(itemUri, configUri, outdirUri, inMemory, metadataOnly, dense); err != nil {
				log.Printf("emgsf: failed converting %s: %v", itemUri, err)
			}
		})
	}

	return nil
}

func loadTileDBConfig(configUri string) (*tiledb.Config, error) {
	if configUri == "" {
		return tiledb.NewConfig()
	}
	return tiledb.LoadConfig(configUri)
}

func main() {
	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name: "convert",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "survey-uri", Usage: "URI or pathname to a survey file (*.all, *.83P, *.83M)."},
					&cli.StringFlag{Name: "config-uri", Usage: "URI or pathname to a TileDB config file."},
					&cli.StringFlag{Name: "outdir-uri", Usage: "URI or pathname to an output directory."},
					&cli.BoolFlag{Name: "in-memory", Usage: "Read the entire contents of the survey file into memory before processing."},
					&cli.BoolFlag{Name: "metadata-only", Usage: "Only decode and export metadata relating to the survey file."},
					&cli.BoolFlag{Name: "dense", Usage: "Create a dense TileDB array schema for the beam data. Default is sparse."},
				},
				Action: func(cCtx *cli.Context) error {
					return convertSurvey(cCtx.String("survey-uri"), cCtx.String("config-uri"), cCtx.String("outdir-uri"), cCtx.Bool("in-memory"), cCtx.Bool("metadata-only"), cCtx.Bool("dense"))
				},
			},
			{
				Name: "convert-trawl",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "uri", Usage: "URI or pathname to a directory containing survey files."},
					&cli.StringFlag{Name: "config-uri", Usage: "URI or pathname to a TileDB config file."},
					&cli.StringFlag{Name: "outdir-uri", Usage: "URI or pathname to an output directory."},
					&cli.BoolFlag{Name: "in-memory", Usage: "Read the entire contents of each survey file into memory before processing."},
					&cli.BoolFlag{Name: "metadata-only", Usage: "Only decode and export metadata relating to the survey files."},
					&cli.BoolFlag{Name: "dense", Usage: "Create a dense TileDB array schema for the beam data. Default is sparse."},
				},
				Action: func(cCtx *cli.Context) error {
					return convertSurveyList(cCtx.String("uri"), cCtx.String("config-uri"), cCtx.String("outdir-uri"), cCtx.Bool("in-memory"), cCtx.Bool("metadata-only"), cCtx.Bool("dense"))
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
