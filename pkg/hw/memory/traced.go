package memory

import (
	"log/slog"

	"github.com/Manu343726/micro8/pkg/utils"
)

type tracedBus struct {
	bus    Bus
	logger *slog.Logger
}

// NewTracedBus decorates a bus so that every access is logged at debug level
func NewTracedBus(bus Bus, logger *slog.Logger) Bus {
	return &tracedBus{
		bus:    bus,
		logger: logger.With(slog.String("component", "memory")),
	}
}

func (b *tracedBus) Read(address int) (byte, error) {
	value, err := b.bus.Read(address)

	if err != nil {
		b.logger.Debug("read failed", slog.Int("address", address), slog.Any("error", err))
	} else {
		b.logger.Debug("read", slog.Int("address", address), slog.String("value", utils.FormatByte(value)))
	}

	return value, err
}

func (b *tracedBus) Write(address int, value byte) error {
	err := b.bus.Write(address, value)

	if err != nil {
		b.logger.Debug("write failed", slog.Int("address", address), slog.Any("error", err))
	} else {
		b.logger.Debug("write", slog.Int("address", address), slog.String("value", utils.FormatByte(value)))
	}

	return err
}
