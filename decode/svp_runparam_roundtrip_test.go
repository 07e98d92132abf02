package decode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oceansensing/emgsf"
	"github.com/oceansensing/emgsf/encode"
)

func TestSVPRoundTrip(t *testing.T) {
	s := emgsf.NewStore()
	s.SVP = &emgsf.SVPRecord{
		Timestamp:   emgsf.Timestamp{Date: 20230101, Msec: 100},
		ProfileTime: emgsf.Timestamp{Date: 20230101, Msec: 50},
		Latitude:    -33.123456,
		Longitude:   151.123456,
		Entries: []emgsf.SVPEntry{
			{Depth: 0, Speed: 1500.1},
			{Depth: 10.5, Speed: 1498.2},
			{Depth: 50.25, Speed: 1490.0},
		},
	}

	body, err := encode.EncodeSVP(emgsf.BigEndian, s, 0)
	require.NoError(t, err)

	out := emgsf.NewStore()
	require.NoError(t, DecodeSVP(emgsf.BigEndian, body, out, 0))

	require.InDelta(t, -33.123456, out.SVP.Latitude, 1e-5)
	require.InDelta(t, 151.123456, out.SVP.Longitude, 1e-5)
	require.Len(t, out.SVP.Entries, 3)
	require.InDelta(t, 10.5, out.SVP.Entries[1].Depth, 0.05)
	require.InDelta(t, 1490.0, out.SVP.Entries[2].Speed, 0.05)
}

func TestRunParameterRoundTrip(t *testing.T) {
	s := emgsf.NewStore()
	s.RunParameter = &emgsf.RunParameterRecord{
		Timestamp:       emgsf.Timestamp{Date: 20230101, Msec: 100},
		Count:           5,
		Serial:          1000,
		OperatorStation: 1,
		Mode:            2,
		FilterID:        3,
		MinDepth:        5,
		MaxDepth:        500,
		AbsorptionCoef:  0.35,
		TxPulseLength:   150,
		TxBeamWidth:     1.5,
		TxPower:         -10,
	}

	body, err := encode.EncodeRunParameter(emgsf.BigEndian, s, 0)
	require.NoError(t, err)

	out := emgsf.NewStore()
	require.NoError(t, DecodeRunParameter(emgsf.BigEndian, body, out, 0))

	require.Equal(t, uint8(1), out.RunParameter.OperatorStation)
	require.Equal(t, uint8(2), out.RunParameter.Mode)
	require.InDelta(t, 5, out.RunParameter.MinDepth, 0.01)
	require.InDelta(t, 500, out.RunParameter.MaxDepth, 0.01)
	require.InDelta(t, 0.35, out.RunParameter.AbsorptionCoef, 0.01)
	require.InDelta(t, 1.5, out.RunParameter.TxBeamWidth, 0.1)
	require.Equal(t, int8(-10), out.RunParameter.TxPower)
}
