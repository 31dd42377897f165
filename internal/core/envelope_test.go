package core

import (
	"bytes"
	"errors"
	"testing"

	"github.com/FrozenMouseIV/EtrianMysteryDungeon2Translation/internal/utils"
	mocktesting "github.com/FrozenMouseIV/EtrianMysteryDungeon2Translation/internal/testing"
	"github.com/stretchr/testify/require"
)

func buildEnvelope(contentOff, pointerOff uint32) []byte {
	buf := make([]byte, HeaderSize)
	copy(buf[:4], Signature)
	buf[4] = byte(contentOff)
	buf[5] = byte(contentOff >> 8)
	buf[6] = byte(contentOff >> 16)
	buf[7] = byte(contentOff >> 24)
	buf[8] = byte(pointerOff)
	buf[9] = byte(pointerOff >> 8)
	buf[10] = byte(pointerOff >> 16)
	buf[11] = byte(pointerOff >> 24)
	return buf
}

func TestParseEnvelope(t *testing.T) {
	data := buildEnvelope(0x60, 0x1000)
	env, err := ParseEnvelope(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, uint32(0x60), env.ContentHeaderOffset)
	require.Equal(t, uint32(0x1000), env.PointerListOffset)
}

func TestParseEnvelope_BadMagic(t *testing.T) {
	data := buildEnvelope(0x60, 0x1000)
	copy(data[:4], "NOPE")

	_, err := ParseEnvelope(bytes.NewReader(data))
	require.Error(t, err)
	require.True(t, errors.Is(err, utils.ErrBadMagic))
}

func TestParseEnvelope_Truncated(t *testing.T) {
	_, err := ParseEnvelope(bytes.NewReader([]byte("SIR0")))
	require.Error(t, err)
	require.True(t, errors.Is(err, utils.ErrTruncatedHeader))
}

func TestParseEnvelope_ShortReadFromMockReader(t *testing.T) {
	r := mocktesting.NewMockReaderAt(buildEnvelope(0x60, 0x1000)[:10])
	_, err := ParseEnvelope(r)
	require.Error(t, err)
}

func TestEnvelopeWriteTo(t *testing.T) {
	env := &Envelope{ContentHeaderOffset: 0x60, PointerListOffset: 0x1000}

	var buf bytes.Buffer
	n, err := env.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(HeaderSize), n)

	roundTripped, err := ParseEnvelope(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, env, roundTripped)
}
