/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/allbin/ledlink"
	"github.com/allbin/ledlink/serial"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var errNoSerial = errors.New("no serial number given (use --serial or LEDLINK_SERIAL)")

// Port discovery and opening, replaced in tests
var (
	findPorts = serial.FindBySerialNumber
	openPort  = func(path string, baud int) (serial.Port, error) {
		return serial.Open(path,
			serial.WithBaudRate(baud),
			serial.WithFlowControl(serial.FlowControlRTSCTS),
		)
	}
)

// linkConfig is the per-invocation link setup read from flags, env and config file
type linkConfig struct {
	BaudRate     int
	Deadline     time.Duration
	PollInterval time.Duration
}

func loadLinkConfig() linkConfig {
	return linkConfig{
		BaudRate:     viper.GetInt("baud"),
		Deadline:     viper.GetDuration("deadline"),
		PollInterval: viper.GetDuration("poll-interval"),
	}
}

// configuredSerial returns the --serial value or errNoSerial
func configuredSerial() (string, error) {
	sn := viper.GetString("serial")
	if sn == "" {
		return "", errNoSerial
	}
	return sn, nil
}

// deviceResult is the outcome of one command on one matched port
type deviceResult struct {
	Path   string
	Result ledlink.Result
	Err    error
}

// executeOnDevices runs command against every port whose USB serial number
// equals serialNumber, one port at a time in discovery order. Each port is
// opened for the exchange and closed after it.
func executeOnDevices(serialNumber string, command ledlink.Command, cfg linkConfig) ([]deviceResult, error) {
	paths, err := findPorts(serialNumber)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no port with serial number %q: %w", serialNumber, serial.ErrDeviceNotFound)
	}

	results := make([]deviceResult, 0, len(paths))
	for _, path := range paths {
		logger := log.With().Str("port", path).Str("serial", serialNumber).Logger()

		x, err := ledlink.NewExchanger(
			ledlink.WithDeadline(cfg.Deadline),
			ledlink.WithPollInterval(cfg.PollInterval),
			ledlink.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("deadline %v, poll interval %v: %w", cfg.Deadline, cfg.PollInterval, err)
		}

		port, err := openPort(path, cfg.BaudRate)
		if err != nil {
			logger.Error().Err(err).Msg("failed to open port")
			results = append(results, deviceResult{Path: path, Err: err})
			continue
		}

		res, err := x.Execute(command, port)
		if cerr := port.Close(); cerr != nil {
			logger.Debug().Err(cerr).Msg("close failed")
		}

		logger.Info().
			Stringer("kind", command.Kind).
			Stringer("outcome", res.Outcome).
			Dur("elapsed", res.Elapsed).
			Msg("exchange finished")
		results = append(results, deviceResult{Path: path, Result: res, Err: err})
	}
	return results, nil
}

// firstError returns the first per-port failure, prefixed with its port
func firstError(results []deviceResult) error {
	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("%s: %w", r.Path, r.Err)
		}
	}
	return nil
}

// Process exit codes
const (
	exitFailure   = 1
	exitTimeout   = 2
	exitReadError = 3
)

func exitCode(err error) int {
	switch {
	case errors.Is(err, ledlink.ErrTimeout):
		return exitTimeout
	case errors.Is(err, ledlink.ErrReadFailed):
		return exitReadError
	default:
		return exitFailure
	}
}
