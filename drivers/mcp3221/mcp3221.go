// Package mcp3221 provides a driver for the Microchip MCP3221 12-bit
// single-channel I²C ADC.
//
// The part has no registers: every read returns the latest conversion as two
// bytes, upper nibble first, and starts the next one.
//
//	d := mcp3221.New(bus)
//	v, err := d.Read() // 0..4095
package mcp3221

import (
	"errors"

	"tinygo.org/x/drivers"
)

// Address is the factory address of the MCP3221A5T. Other variants use
// 0x48..0x4F.
const Address = 0x4D

// Bits is the converter resolution.
const Bits = 12

const maxCode = 1<<Bits - 1

var ErrProtocol = errors.New("mcp3221: protocol error")

// Device wraps an I2C connection to an MCP3221.
type Device struct {
	bus     drivers.I2C
	Address uint16

	buf [2]byte
}

// New creates a device on a configured bus. It does not touch the device.
func New(bus drivers.I2C) Device {
	return Device{bus: bus, Address: Address}
}

// Read returns one 12-bit conversion result.
func (d *Device) Read() (uint16, error) {
	if err := d.bus.Tx(d.Address, nil, d.buf[:]); err != nil {
		return 0, err
	}
	// The top four bits of the first byte are always zero.
	if d.buf[0]&0xF0 != 0 {
		return 0, ErrProtocol
	}
	return uint16(d.buf[0])<<8 | uint16(d.buf[1]), nil
}

// ReadScaled returns one conversion widened to bits (1..16) by shifting.
func (d *Device) ReadScaled(bits uint8) (uint16, error) {
	v, err := d.Read()
	if err != nil {
		return 0, err
	}
	switch {
	case bits > Bits && bits <= 16:
		return v << (bits - Bits), nil
	case bits < Bits && bits > 0:
		return v >> (Bits - bits), nil
	}
	return v & maxCode, nil
}
