package display

import (
	"errors"
	"fmt"
	"image"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/inky"
	"periph.io/x/host/v3"

	"photo-frame/infrastructure/logger"
)

// Panel is an attached e-paper panel. Draw blocks for the physical refresh and
// converts src to the panel's own palette.
type Panel interface {
	Bounds() image.Rectangle
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
}

// Inky HAT control lines on the Raspberry Pi header
const (
	dcPin    = "22"
	resetPin = "27"
	busyPin  = "17"
)

// ErrPanelUnavailable wraps every reason DetectPanel could not bring up a panel
var ErrPanelUnavailable = errors.New("e-paper panel unavailable")

// DetectPanel identifies an Inky board from its EEPROM and opens it on spiPort
// ("" selects the first SPI port). A board that does not answer on I2C means
// no panel is attached.
func DetectPanel(spiPort string) (Panel, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("%w: host init failed: %v", ErrPanelUnavailable, err)
	}

	bus, err := i2creg.Open("")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open I2C bus: %v", ErrPanelUnavailable, err)
	}
	opts, err := DetectBoard(bus)
	bus.Close()
	if err != nil {
		return nil, err
	}

	dc, reset, busy := gpioreg.ByName(dcPin), gpioreg.ByName(resetPin), gpioreg.ByName(busyPin)
	if dc == nil || reset == nil || busy == nil {
		return nil, fmt.Errorf("%w: panel control pins not found", ErrPanelUnavailable)
	}
	port, err := spireg.Open(spiPort)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open SPI port: %v", ErrPanelUnavailable, err)
	}

	var panel Panel
	if opts.ModelColor == inky.Multi {
		panel, err = inky.NewImpression(port, dc, reset, busy, opts)
	} else {
		panel, err = inky.New(port, dc, reset, busy, opts)
	}
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("%w: failed to open %s: %v", ErrPanelUnavailable, opts.Model, err)
	}
	logger.GetLogger().WithFields(map[string]interface{}{
		"model":  opts.Model.String(),
		"color":  opts.ModelColor.String(),
		"bounds": panel.Bounds().String(),
	}).Info("E-paper panel detected")
	return panel, nil
}

// DetectBoard reads the board identification EEPROM on bus
func DetectBoard(bus i2c.Bus) (*inky.Opts, error) {
	opts, err := inky.DetectOpts(bus)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPanelUnavailable, err)
	}
	// The driver only keeps its per-model size when both dimensions are set.
	if opts.Width == 0 || opts.Height == 0 {
		opts.Width, opts.Height = modelResolution(opts.Model)
	}
	return opts, nil
}

func modelResolution(model inky.Model) (int, int) {
	switch model {
	case inky.PHAT:
		return 104, 212
	case inky.PHAT2:
		return 122, 250
	case inky.WHAT:
		return 400, 300
	case inky.IMPRESSION4:
		return 640, 400
	case inky.IMPRESSION73:
		return 800, 480
	default:
		return DefaultWidth, DefaultHeight
	}
}
