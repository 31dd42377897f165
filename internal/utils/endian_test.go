package utils

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

// mockReaderAt is a mock implementation of ReaderAt for testing.
type mockReaderAt struct {
	data []byte
	err  error
}

func (m *mockReaderAt) ReadAt(p []byte, off int64) (n int, err error) {
	if m.err != nil {
		return 0, m.err
	}

	if off < 0 || off >= int64(len(m.data)) {
		return 0, io.EOF
	}

	n = copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func TestReadUint32_LittleEndian(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		offset   int64
		expected uint32
	}{
		{
			name:     "zero value",
			data:     []byte{0x00, 0x00, 0x00, 0x00},
			offset:   0,
			expected: 0,
		},
		{
			name:     "max value",
			data:     []byte{0xFF, 0xFF, 0xFF, 0xFF},
			offset:   0,
			expected: 0xFFFFFFFF,
		},
		{
			name:     "small value",
			data:     []byte{0x01, 0x00, 0x00, 0x00},
			offset:   0,
			expected: 1,
		},
		{
			name:     "with offset",
			data:     []byte{0xFF, 0xFF, 0x01, 0x00, 0x00, 0x00},
			offset:   2,
			expected: 1,
		},
		{
			name:     "typical content header offset",
			data:     []byte{0x60, 0x00, 0x00, 0x00},
			offset:   0,
			expected: 0x60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := &mockReaderAt{data: tt.data}
			val, err := ReadUint32(reader, tt.offset, binary.LittleEndian)
			require.NoError(t, err)
			require.Equal(t, tt.expected, val)
		})
	}
}

func TestReadUint32_BigEndian(t *testing.T) {
	reader := &mockReaderAt{data: []byte{0x00, 0x00, 0x10, 0x00}}
	val, err := ReadUint32(reader, 0, binary.BigEndian)
	require.NoError(t, err)
	require.Equal(t, uint32(0x1000), val)
}

func TestReadUint32_Errors(t *testing.T) {
	tests := []struct {
		name   string
		reader ReaderAt
		offset int64
	}{
		{
			name:   "read error",
			reader: &mockReaderAt{data: []byte{}, err: errors.New("read error")},
			offset: 0,
		},
		{
			name:   "offset beyond data",
			reader: &mockReaderAt{data: []byte{0x01, 0x02}},
			offset: 100,
		},
		{
			name:   "not enough data",
			reader: &mockReaderAt{data: []byte{0x01, 0x02, 0x03}},
			offset: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadUint32(tt.reader, tt.offset, binary.LittleEndian)
			require.Error(t, err)
		})
	}
}

func TestReadUint32_WithBytesReader(t *testing.T) {
	data := []byte{0x12, 0x34, 0x56, 0x78}

	reader := bytes.NewReader(data)
	val, err := ReadUint32(reader, 0, binary.LittleEndian)
	require.NoError(t, err)

	expected := binary.LittleEndian.Uint32(data)
	require.Equal(t, expected, val)
}

func TestReaderAtInterface(t *testing.T) {
	t.Run("bytes.Reader", func(_ *testing.T) {
		data := []byte{0x01, 0x02, 0x03, 0x04}
		var _ ReaderAt = bytes.NewReader(data)
	})

	t.Run("mockReaderAt", func(_ *testing.T) {
		var _ ReaderAt = &mockReaderAt{}
	})
}

func BenchmarkReadUint32(b *testing.B) {
	data := make([]byte, 1024)
	for i := range data {
		data[i] = byte(i)
	}
	reader := &mockReaderAt{data: data}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		offset := int64((i * 4) % (len(data) - 4))
		_, _ = ReadUint32(reader, offset, binary.LittleEndian)
	}
}
