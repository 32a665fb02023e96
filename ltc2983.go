// Package ltc2983 drives the Linear Technology LTC2983 multi-sensor digital
// temperature measurement system over SPI.
//
// The device multiplexes up to 20 channels, each configured by a 32-bit
// assignment word describing the attached probe (thermocouple, diode, sense
// resistor, ...). A conversion is started by writing the command/status
// register and completes asynchronously; the caller polls Status until the
// done bit is set, then reads the channel's result register.
package ltc2983

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

var (
	// ErrInvalidChannel is returned for channel numbers outside 1..20.
	ErrInvalidChannel = errors.New("channel must be between 1 and 20")
	// ErrInvalidColdJunction is returned for a cold-junction channel that is
	// out of range or references the thermocouple's own channel.
	ErrInvalidColdJunction = errors.New("invalid cold-junction channel")
	// ErrParameterOutOfRange is returned when a probe parameter is outside
	// the range its register field can carry.
	ErrParameterOutOfRange = errors.New("parameter out of range")
	// ErrUnsupportedProbe is returned for probe families this driver does not
	// encode, and when decoding a word with an unknown selector code.
	ErrUnsupportedProbe = errors.New("unsupported probe type")
	// ErrChannelUnassigned is returned when decoding the assignment word of a
	// channel that was never configured.
	ErrChannelUnassigned = errors.New("channel unassigned")
	// ErrStaleResult is returned when a result is read without a matching
	// done status, so the register may reflect a superseded conversion.
	ErrStaleResult = errors.New("stale result")
)

// Opts holds configuration options for the device.
type Opts struct {
	// Rejection selects the ADC notch filter. The default rejects both 50Hz
	// and 60Hz mains noise.
	Rejection Rejection
	// SenseChannel is the channel Sense and SenseContinuous read. Defaults to
	// channel 1. The channel must be configured with ConfigureChannel before
	// the first reading.
	SenseChannel Channel
}

func DefaultOptions() *Opts {
	return &Opts{
		Rejection:    Reject50And60Hz,
		SenseChannel: firstChannel,
	}
}

// New connects to an LTC2983 on the given SPI port and programs its global
// configuration. It performs one status read to verify the device responds.
func New(p spi.Port, opts *Opts) (*Dev, error) {
	c, err := p.Connect(2*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("ltc2983: %v", err)
	}

	if opts == nil {
		opts = DefaultOptions()
	}
	senseChannel := opts.SenseChannel
	if senseChannel == 0 {
		senseChannel = firstChannel
	}
	if !senseChannel.Valid() {
		return nil, fmt.Errorf("ltc2983: sense channel %d: %w", senseChannel, ErrInvalidChannel)
	}

	d := &Dev{
		d:    c,
		opts: *opts,
		name: p.String(),
	}
	d.opts.SenseChannel = senseChannel

	// One conversion takes two to three ADC cycles; the cycle time depends on
	// the notch filter.
	switch opts.Rejection {
	case Reject50And60Hz:
		d.measDelay = 170 * time.Millisecond
	case Reject60Hz:
		d.measDelay = 140 * time.Millisecond
	case Reject50Hz:
		d.measDelay = 165 * time.Millisecond
	default:
		return nil, fmt.Errorf("ltc2983: rejection mode %d: %w", opts.Rejection, ErrParameterOutOfRange)
	}

	// Probe transaction: the device answers status reads as soon as it is out
	// of reset.
	if _, err := d.Status(); err != nil {
		return nil, err
	}

	if err := d.writeReg(globalConfigReg, []byte{byte(opts.Rejection)}); err != nil {
		return nil, err
	}

	return d, nil
}

// Dev is a handle to an LTC2983. It owns the bus connection for its lifetime;
// callers must not interleave transactions from multiple goroutines without
// external locking.
type Dev struct {
	d         conn.Conn
	opts      Opts
	measDelay time.Duration
	name      string

	mu   sync.Mutex
	stop chan struct{}
	wg   sync.WaitGroup
}

func (d *Dev) String() string {
	return fmt.Sprintf("%s{%s}", d.name, d.d)
}

// ConfigureChannel validates p, encodes it and writes the assignment word to
// the channel's assignment register. The configuration takes effect on the
// next conversion started on c.
func (d *Dev) ConfigureChannel(c Channel, p Probe) error {
	word, err := EncodeAssignment(c, p)
	if err != nil {
		return err
	}
	addr, err := AssignmentAddress(c)
	if err != nil {
		return err
	}
	b := [4]byte{byte(word >> 24), byte(word >> 16), byte(word >> 8), byte(word)}
	return d.writeReg(addr, b[:])
}

// ReadChannel reads back and decodes the channel's assignment word. Useful to
// verify a configuration survived the bus transfer.
func (d *Dev) ReadChannel(c Channel) (Probe, error) {
	addr, err := AssignmentAddress(c)
	if err != nil {
		return nil, err
	}
	var b [4]byte
	if err := d.readReg(addr, b[:]); err != nil {
		return nil, err
	}
	word := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	return DecodeAssignment(word)
}

// StartConversion commands a single conversion on channel c. The device
// services one conversion at a time: starting another before Status reports
// done supersedes the first.
func (d *Dev) StartConversion(c Channel) error {
	if err := checkChannel(c); err != nil {
		return err
	}
	return d.writeReg(statusReg, []byte{statusStart | byte(c)})
}

// StartConversions commands a multiplexed conversion over the given channels
// by programming the multi-channel mask register. The device converts the
// masked channels in ascending order; Status reports done once all have
// finished.
func (d *Dev) StartConversions(channels ...Channel) error {
	if len(channels) == 0 {
		return fmt.Errorf("ltc2983: no channels given: %w", ErrInvalidChannel)
	}
	var mask uint32
	for _, c := range channels {
		if err := checkChannel(c); err != nil {
			return err
		}
		mask |= 1 << uint(c-1)
	}
	b := [4]byte{byte(mask >> 24), byte(mask >> 16), byte(mask >> 8), byte(mask)}
	if err := d.writeReg(channelMaskReg, b[:]); err != nil {
		return err
	}
	// A start command with channel bits 0 runs the masked channels.
	return d.writeReg(statusReg, []byte{statusStart})
}

// Status reads the command/status register. It is a pure read; the snapshot
// is never cached, and no waiting or timeout is applied. Callers drive their
// own poll loop around it.
func (d *Dev) Status() (ConversionStatus, error) {
	var b [1]byte
	if err := d.readReg(statusReg, b[:]); err != nil {
		return ConversionStatus{}, err
	}
	return decodeStatus(b[0]), nil
}

// ReadTemperature reads and decodes the conversion result for channel c.
//
// The status register is checked first: unless it reports done for exactly
// this channel the read fails with ErrStaleResult, since the result register
// may hold a still-in-progress or superseded conversion. Device-reported
// faults do not fail the call; they are returned in ConversionResult.Faults
// alongside the decoded temperature.
func (d *Dev) ReadTemperature(c Channel) (ConversionResult, error) {
	addr, err := ResultAddress(c)
	if err != nil {
		return ConversionResult{}, err
	}
	st, err := d.Status()
	if err != nil {
		return ConversionResult{}, err
	}
	if !st.Done || st.Channel != c {
		return ConversionResult{}, fmt.Errorf("ltc2983: channel %d: status is done=%t channel=%d: %w",
			c, st.Done, st.Channel, ErrStaleResult)
	}
	var b [4]byte
	if err := d.readReg(addr, b[:]); err != nil {
		return ConversionResult{}, err
	}
	return decodeResult(b), nil
}

// ReadTemperatures reads the results of a completed multiplexed conversion
// started with StartConversions, one result per requested channel in order.
//
// A multiplexed conversion reports done with channel bits 0, so the per
// channel match of ReadTemperature does not apply; the caller must pass the
// same channels the mask was built from.
func (d *Dev) ReadTemperatures(channels ...Channel) ([]ConversionResult, error) {
	if len(channels) == 0 {
		return nil, fmt.Errorf("ltc2983: no channels given: %w", ErrInvalidChannel)
	}
	for _, c := range channels {
		if err := checkChannel(c); err != nil {
			return nil, err
		}
	}
	st, err := d.Status()
	if err != nil {
		return nil, err
	}
	if !st.Done || st.Channel != 0 {
		return nil, fmt.Errorf("ltc2983: status is done=%t channel=%d: %w", st.Done, st.Channel, ErrStaleResult)
	}
	results := make([]ConversionResult, 0, len(channels))
	for _, c := range channels {
		addr, err := ResultAddress(c)
		if err != nil {
			return nil, err
		}
		var b [4]byte
		if err := d.readReg(addr, b[:]); err != nil {
			return nil, err
		}
		results = append(results, decodeResult(b))
	}
	return results, nil
}

// Sense converts the configured SenseChannel once and reports the result.
// Unlike the lower-level conversion API it blocks, polling the status
// register until the conversion completes. A faulted reading is returned as
// an error.
func (d *Dev) Sense(e *physic.Env) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop != nil {
		return d.wrap(errors.New("already sensing continuously"))
	}

	return d.sense(e)
}

// SenseContinuous returns measurements of the configured SenseChannel on a
// continuous basis.
//
// The application must call Halt() to stop the sensing when done to stop the
// sensor and close the channel.
//
// It's the responsibility of the caller to retrieve the values from the
// channel as fast as possible, otherwise the interval may not be respected.
func (d *Dev) SenseContinuous(interval time.Duration) (<-chan physic.Env, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop != nil {
		// Don't send the stop command to the device.
		close(d.stop)
		d.stop = nil
		d.wg.Wait()
	}

	sensing := make(chan physic.Env)
	d.stop = make(chan struct{})
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer close(sensing)
		d.sensingContinuous(interval, sensing, d.stop)
	}()
	return sensing, nil
}

// Precision reports the temperature resolution of the 24-bit result word.
func (d *Dev) Precision(e *physic.Env) {
	e.Temperature = physic.Kelvin / 1024
}

// Halt stops the LTC2983 from acquiring measurements as initiated by
// SenseContinuous().
//
// It is recommended to call this function before terminating the process to
// reduce idle power usage and a goroutine leak.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop == nil {
		return nil
	}
	close(d.stop)
	d.stop = nil
	d.wg.Wait()

	return nil
}

func (d *Dev) sense(e *physic.Env) error {
	c := d.opts.SenseChannel
	if err := d.StartConversion(c); err != nil {
		return err
	}

	time.Sleep(d.measDelay)

	deadline := time.Now().Add(2 * d.measDelay)
	for {
		st, err := d.Status()
		if err != nil {
			return err
		}
		if st.Done && st.Channel == c {
			break
		}
		if time.Now().After(deadline) {
			return d.wrap(fmt.Errorf("channel %d: conversion did not complete", c))
		}
		time.Sleep(10 * time.Millisecond)
	}

	res, err := d.ReadTemperature(c)
	if err != nil {
		return err
	}
	e.Temperature = res.Temperature

	if res.Faults != 0 {
		return d.wrap(fmt.Errorf("channel %d: fault detected: %s", c, res.Faults))
	}

	return nil
}

func (d *Dev) sensingContinuous(interval time.Duration, sensing chan<- physic.Env, stop <-chan struct{}) {
	// Ensure the interval is at least the minimum measurement delay.
	if interval < d.measDelay {
		interval = d.measDelay
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	var err error
	for {
		// Do one initial sensing right away.
		e := physic.Env{}
		d.mu.Lock()
		err = d.sense(&e)
		d.mu.Unlock()
		if err != nil {
			return
		}
		select {
		case sensing <- e:
		case <-stop:
			return
		}
		select {
		case <-stop:
			return
		case <-t.C:
		}
	}
}

// readReg reads len(b) bytes starting at the 16-bit register address addr.
func (d *Dev) readReg(addr uint16, b []byte) error {
	write := make([]byte, len(b)+3)
	write[0] = spiRead
	write[1] = byte(addr >> 8)
	write[2] = byte(addr)
	read := make([]byte, len(write))

	if err := d.d.Tx(write, read); err != nil {
		return d.wrap(err)
	}
	copy(b, read[3:])

	return nil
}

// writeReg writes b starting at the 16-bit register address addr.
func (d *Dev) writeReg(addr uint16, b []byte) error {
	write := make([]byte, len(b)+3)
	write[0] = spiWrite
	write[1] = byte(addr >> 8)
	write[2] = byte(addr)
	copy(write[3:], b)

	if err := d.d.Tx(write, nil); err != nil {
		return d.wrap(err)
	}

	return nil
}

func (d *Dev) wrap(err error) error {
	return fmt.Errorf("%s: %w", strings.ToLower(d.name), err)
}

var _ conn.Resource = &Dev{}
var _ physic.SenseEnv = &Dev{}
