package memory

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRAM_ReadWrite(t *testing.T) {
	ram := NewRAM()

	t.Run("write then read", func(t *testing.T) {
		for address := 0; address < Size; address++ {
			value := byte(address*7 + 3)
			require.NoError(t, ram.Write(address, value))

			got, err := ram.Read(address)
			require.NoError(t, err)
			assert.Equal(t, value, got)
		}
	})

	t.Run("out of bounds", func(t *testing.T) {
		for _, address := range []int{Size, Size + 1, 1000, -1} {
			_, err := ram.Read(address)
			assert.ErrorIs(t, err, ErrOutOfBounds)
			assert.ErrorIs(t, ram.Write(address, 1), ErrOutOfBounds)
		}
	})
}

func TestRAM_Dump(t *testing.T) {
	ram := NewRAM()
	require.NoError(t, ram.Write(0, 5))
	require.NoError(t, ram.Write(1, 0xFF))

	assert.Equal(t, []string{"00000101", "11111111", "00000000"}, ram.Dump(0, 3))

	t.Run("clamps length", func(t *testing.T) {
		assert.Len(t, ram.Dump(250, 100), 6)
		assert.Len(t, ram.Dump(0, Size), Size)
	})

	t.Run("start past the end", func(t *testing.T) {
		assert.Empty(t, ram.Dump(Size, 10))
		assert.Empty(t, ram.Dump(-1, 10))
		assert.Empty(t, ram.Dump(0, 0))
	})
}

func TestRAM_Load(t *testing.T) {
	ram := NewRAM()

	require.NoError(t, ram.Load(10, []byte{1, 2, 3}))
	assert.Equal(t, []byte{1, 2, 3}, ram.Bytes()[10:13])

	err := ram.Load(Size-1, []byte{1, 2})
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.Equal(t, byte(0), ram.Bytes()[Size-1])

	ram.Reset()
	assert.Equal(t, make([]byte, Size), ram.Bytes())
}

func TestTracedBus(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	bus := NewTracedBus(NewRAM(), logger)

	require.NoError(t, bus.Write(3, 9))
	value, err := bus.Read(3)
	require.NoError(t, err)
	assert.Equal(t, byte(9), value)

	_, err = bus.Read(Size)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	assert.Contains(t, logs.String(), "msg=write")
	assert.Contains(t, logs.String(), "value=00001001")
	assert.Contains(t, logs.String(), "read failed")
}
