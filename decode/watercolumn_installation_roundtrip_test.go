package decode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oceansensing/emgsf"
	"github.com/oceansensing/emgsf/encode"
)

func TestWaterColumnRoundTripWithOddAmplitudeCount(t *testing.T) {
	s := emgsf.NewStore()
	s.WaterColumn = &emgsf.WaterColumnRecord{
		Timestamp: emgsf.Timestamp{Date: 20230101, Msec: 100},
		Count:     1,
		Serial:    10,
		Tx: []emgsf.WaterColumnTx{
			{TiltAngle: 0, CenterFreq: 300000, BandWidth: 2000},
		},
		Beams: []emgsf.WaterColumnBeam{
			{BeamAngle: -10, StartRange: 5, Amplitudes: []int8{1, 2, 3}},
			{BeamAngle: 10, StartRange: 6, Amplitudes: []int8{4, 5}},
		},
	}

	body, err := encode.EncodeWaterColumn(emgsf.BigEndian, s, 0)
	require.NoError(t, err)

	out := emgsf.NewStore()
	require.NoError(t, DecodeWaterColumn(emgsf.BigEndian, body, out, 0))

	require.Len(t, out.WaterColumn.Beams, 2)
	require.Equal(t, []int8{1, 2, 3}, out.WaterColumn.Beams[0].Amplitudes)
	require.Equal(t, []int8{4, 5}, out.WaterColumn.Beams[1].Amplitudes)
	require.InDelta(t, 300000, out.WaterColumn.Tx[0].CenterFreq, 1)
}

func TestInstallationRoundTripKnownAndExtraKeys(t *testing.T) {
	s := emgsf.NewStore()
	s.Installation = &emgsf.InstallationRecord{
		Timestamp:    emgsf.Timestamp{Date: 20230101, Msec: 0},
		SystemSerial: 100,
		Params: map[string]string{
			"WLZ": "1.5",
			"PSV": "2.10.5",
		},
		Extra: map[string]string{
			"ZZZ": "custom",
		},
		ProcessorVersion: 21005,
	}

	body, err := encode.EncodeInstallation(emgsf.BigEndian, s, 0)
	require.NoError(t, err)

	out := emgsf.NewStore()
	require.NoError(t, DecodeInstallation(emgsf.BigEndian, body, out, 0))

	require.Equal(t, "1.5", out.Installation.Params["WLZ"])
	require.Equal(t, "custom", out.Installation.Extra["ZZZ"])
	require.Equal(t, 21005, out.Installation.ProcessorVersion)

	require.Equal(t, 1, countOccurrences(string(body[installationHeaderSize:]), "PSV="))
}

func countOccurrences(s, substr string) int {
	count := 0
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			count++
		}
	}
	return count
}

func TestInstallationCOMCommaEscaping(t *testing.T) {
	s := emgsf.NewStore()
	s.Installation = &emgsf.InstallationRecord{
		Timestamp: emgsf.Timestamp{Date: 20230101, Msec: 0},
		Params: map[string]string{
			"COM": "survey line 1, leg A",
		},
		Extra: map[string]string{},
	}

	body, err := encode.EncodeInstallation(emgsf.BigEndian, s, 0)
	require.NoError(t, err)

	out := emgsf.NewStore()
	require.NoError(t, DecodeInstallation(emgsf.BigEndian, body, out, 0))

	require.Equal(t, "survey line 1, leg A", out.Installation.Params["COM"])
}
