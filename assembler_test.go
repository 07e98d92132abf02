package emgsf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssemblerFeedPingBathThenSidescanMatchingTimestamp(t *testing.T) {
	s := NewStore()
	a := &assembler{}
	ping := s.Ping(0)
	ping.Timestamp = Timestamp{Date: 20230101, Msec: 1000}
	ping.NBeams, ping.NBeamsMax = 1, 1
	ping.BeamNumber = append(ping.BeamNumber, 1)

	_, ok, err := a.feedPing(s, DatagramBathExt, 0)
	require.NoError(t, err)
	require.False(t, ok)

	ping.SSTimestamp = Timestamp{Date: 20230101, Msec: 1000}
	out, ok, err := a.feedPing(s, DatagramSidescanExt, 0)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, out)
	require.Equal(t, Timestamp{Date: 20230101, Msec: 1000}, out.Timestamp)
}

func TestAssemblerFeedPingSidescanWithoutBathEmitsImmediately(t *testing.T) {
	s := NewStore()
	a := &assembler{}
	ping := s.Ping(0)
	ping.NBeams, ping.NBeamsMax = 0, 0

	out, ok, err := a.feedPing(s, DatagramSidescanExt, 0)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, out)
}

func TestAssemblerFeedPingBathAfterBathEmitsPreviousBathOnly(t *testing.T) {
	s := NewStore()
	a := &assembler{}
	ping := s.Ping(0)
	ping.NBeams, ping.NBeamsMax = 0, 0
	ping.Count = 1

	_, ok, err := a.feedPing(s, DatagramBathExt, 0)
	require.NoError(t, err)
	require.False(t, ok)

	// A second BathExtended arrives before any sidescan: the in-progress
	// ping is emitted as bath-only and a new cycle starts.
	out, ok, err := a.feedPing(s, DatagramBathExt, 0)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint16(1), out.Count)
}

func TestAssemblerFeedPingSidescanEarlierThanBathIsUnintelligible(t *testing.T) {
	s := NewStore()
	a := &assembler{}
	ping := s.Ping(0)
	ping.Timestamp = Timestamp{Date: 20230101, Msec: 2000}
	ping.NBeams, ping.NBeamsMax = 0, 0

	_, _, err := a.feedPing(s, DatagramBathExt, 0)
	require.NoError(t, err)

	ping.SSTimestamp = Timestamp{Date: 20230101, Msec: 1000}
	_, ok, err := a.feedPing(s, DatagramSidescanExt, 0)
	require.ErrorIs(t, err, ErrUnintelligible)
	require.False(t, ok)
}

func TestAssemblerInterruptEmitsInProgressPing(t *testing.T) {
	s := NewStore()
	a := &assembler{}
	ping := s.Ping(0)
	ping.NBeams, ping.NBeamsMax = 0, 0
	ping.Count = 9

	_, _, err := a.feedPing(s, DatagramBathExt, 0)
	require.NoError(t, err)

	out, ok, err := a.interrupt(s, 0)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint16(9), out.Count)
}

func TestAssemblerInterruptNoOpWhenNoPingInProgress(t *testing.T) {
	s := NewStore()
	a := &assembler{}
	out, ok, err := a.interrupt(s, 0)
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, out)
}

func TestAssemblerEmitRejectsOutOfOrderBeamNumbers(t *testing.T) {
	s := NewStore()
	a := &assembler{}
	ping := s.Ping(0)
	ping.NBeams, ping.NBeamsMax = 2, 2
	ping.BeamNumber = []uint16{5, 3}

	_, ok, err := a.emit(s, ping, 0)
	require.ErrorIs(t, err, ErrUnintelligible)
	require.False(t, ok)
}

func TestAssemblerEmitRejectsNBeamsExceedingMax(t *testing.T) {
	s := NewStore()
	a := &assembler{}
	ping := s.Ping(0)
	ping.NBeams, ping.NBeamsMax = 5, 2

	_, ok, err := a.emit(s, ping, 0)
	require.ErrorIs(t, err, ErrUnintelligible)
	require.False(t, ok)
}

// TestAssemblerFeedPingDualHeadS2Sequence replays spec scenario S2: Bath,
// Bath, RawBeam3, RawBeam3, SidescanExt, SidescanExt across two heads with a
// shared ping count. Each head must complete its own bath+SS pair
// independently — head 1's Bath must not be mistaken for head 0's next
// bath and force a bogus bath-only emission.
func TestAssemblerFeedPingDualHeadS2Sequence(t *testing.T) {
	s := NewStore()
	a := &assembler{}
	a.resolveHead(100) // head 0's serial
	a.resolveHead(200) // head 1's serial, flips dualHead on

	ping0 := s.Ping(0)
	ping0.Timestamp = Timestamp{Date: 20230101, Msec: 1000}
	ping0.Count = 42
	ping0.NBeams, ping0.NBeamsMax = 1, 1
	ping0.BeamNumber = append(ping0.BeamNumber, 1)

	ping1 := s.Ping(1)
	ping1.Timestamp = Timestamp{Date: 20230101, Msec: 1000}
	ping1.Count = 42
	ping1.NBeams, ping1.NBeamsMax = 1, 1
	ping1.BeamNumber = append(ping1.BeamNumber, 1)

	// Bath(head0)
	_, ok, err := a.feedPing(s, DatagramBathExt, 0)
	require.NoError(t, err)
	require.False(t, ok)

	// Bath(head1): must buffer, not force-emit head0's bath as complete.
	_, ok, err = a.feedPing(s, DatagramBathExt, 1)
	require.NoError(t, err)
	require.False(t, ok)

	// RawBeam3(head0), RawBeam3(head1): fall through, no state change.
	_, ok, err = a.feedPing(s, DatagramRawBeam3, 0)
	require.NoError(t, err)
	require.False(t, ok)
	_, ok, err = a.feedPing(s, DatagramRawBeam3, 1)
	require.NoError(t, err)
	require.False(t, ok)

	ping0.SSTimestamp = Timestamp{Date: 20230101, Msec: 1000}
	out0, ok, err := a.feedPing(s, DatagramSidescanExt, 0)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint16(42), out0.Count)
	require.Equal(t, 0, out0.Head)

	ping1.SSTimestamp = Timestamp{Date: 20230101, Msec: 1000}
	out1, ok, err := a.feedPing(s, DatagramSidescanExt, 1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint16(42), out1.Count)
	require.Equal(t, 1, out1.Head)
}

// TestAssemblerEmitRejectsMismatchedDualHeadCount covers the cross-head
// completeness check (§4.5 "Dual-head EM3002"): a head's ping only
// completes once its count matches the sibling head's in-progress count.
func TestAssemblerEmitRejectsMismatchedDualHeadCount(t *testing.T) {
	s := NewStore()
	a := &assembler{}
	a.resolveHead(100)
	a.resolveHead(200)

	sibling := s.Ping(1)
	sibling.NBeams, sibling.NBeamsMax = 1, 1
	sibling.Count = 41

	ping := s.Ping(0)
	ping.NBeams, ping.NBeamsMax = 1, 1
	ping.Count = 42

	_, ok, err := a.emit(s, ping, 0)
	require.ErrorIs(t, err, ErrUnintelligible)
	require.False(t, ok)
}

// TestAssemblerCheckBeamIndexLogsMismatchWithoutFailing exercises §4.5
// "Beam-index matching": a beam-number/beam-index mismatch is a
// non-fatal diagnostic, never surfaced as an error from emit.
func TestAssemblerCheckBeamIndexLogsMismatchWithoutFailing(t *testing.T) {
	s := NewStore()
	a := &assembler{verbose: 1}
	ping := s.Ping(0)
	ping.NBeams, ping.NBeamsMax = 2, 2
	ping.NBeamsSS = 2
	ping.BeamNumber = []uint16{1, 2}
	ping.BeamIndex = []uint16{5, 6} // mismatched on purpose

	out, ok, err := a.emit(s, ping, 0)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, out)
}

func TestAssemblerResolveHeadTracksTwoSerials(t *testing.T) {
	a := &assembler{}
	require.Equal(t, 0, a.resolveHead(100))
	require.Equal(t, 0, a.resolveHead(100))
	require.Equal(t, 1, a.resolveHead(200))
	require.Equal(t, 0, a.resolveHead(100))
	require.Equal(t, 1, a.resolveHead(200))
}
