package encode

import (
	"io"

	"github.com/oceansensing/emgsf"
)

// WritePing re-emits a completed ping as the datagram sequence a writer
// driver actually produces on the wire (§4.8): the bathymetry record first
// (extended "MBA" form if that is what was read, otherwise the vendor
// form), then the raw range/angle record if one contributed to the ping
// (whichever of v1/v2/v3 was seen), then the sidescan record if one
// contributed (extended form preferred over vendor). For a dual-head
// system, the caller writes head 0 then head 1 in two separate calls.
func WritePing(w io.Writer, o emgsf.ByteOrder, s *emgsf.Store, head int, sonarID uint16) error {
	ping := s.Ping(head)

	if ping.ReadFlags["BathExt"] {
		if err := writeRecord(w, o, s, head, sonarID, emgsf.DatagramBathExt, EncodeBathExtended); err != nil {
			return err
		}
	} else if ping.ReadFlags["Bath"] {
		if err := writeRecord(w, o, s, head, sonarID, emgsf.DatagramBath, EncodeBath); err != nil {
			return err
		}
	}

	if ping.ReadFlags["RawBeam"] {
		var t emgsf.DatagramType
		var fn emgsf.EncodeFunc
		switch ping.RawBeamVariant {
		case 1:
			t, fn = emgsf.DatagramRawBeam, EncodeRawBeam1
		case 2:
			t, fn = emgsf.DatagramRawBeam2, EncodeRawBeam2
		default:
			t, fn = emgsf.DatagramRawBeam3, EncodeRawBeam3
		}
		if err := writeRecord(w, o, s, head, sonarID, t, fn); err != nil {
			return err
		}
	}

	if ping.ReadFlags["SidescanExt"] {
		if err := writeRecord(w, o, s, head, sonarID, emgsf.DatagramSidescanExt, EncodeSidescanExtended); err != nil {
			return err
		}
	} else if ping.ReadFlags["Sidescan"] {
		if err := writeRecord(w, o, s, head, sonarID, emgsf.DatagramSidescan, EncodeSidescan); err != nil {
			return err
		}
	}

	return nil
}

func writeRecord(w io.Writer, o emgsf.ByteOrder, s *emgsf.Store, head int, sonarID uint16, t emgsf.DatagramType, fn emgsf.EncodeFunc) error {
	body, err := fn(o, s, head)
	if err != nil {
		return err
	}
	return emgsf.WriteFrame(w, o, t, sonarID, body)
}

// WriteNonPing encodes and writes any registered non-ping record kind
// currently held in the Store (attitude, heading, navigation, clock, tide,
// height, run parameters, sound velocity profiles, installation
// parameters, water column) as a single datagram.
func WriteNonPing(w io.Writer, o emgsf.ByteOrder, s *emgsf.Store, t emgsf.DatagramType, sonarID uint16) error {
	fn, ok := emgsf.Encoder(t)
	if !ok {
		return emgsf.ErrBadKind
	}
	return writeRecord(w, o, s, 0, sonarID, t, fn)
}
