package gds

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// GDSII record tags. The high byte is the record type, the low byte the
// data type (0x00 none, 0x01 bit array, 0x02 int16, 0x03 int32,
// 0x05 real64, 0x06 string).
const (
	recHeader   = 0x0002
	recBgnLib   = 0x0102
	recLibName  = 0x0206
	recUnits    = 0x0305
	recEndLib   = 0x0400
	recBgnStr   = 0x0502
	recStrName  = 0x0606
	recEndStr   = 0x0700
	recBoundary = 0x0800
	recSRef     = 0x0A00
	recText     = 0x0C00
	recLayer    = 0x0D02
	recDatatype = 0x0E02
	recXY       = 0x1003
	recEndEl    = 0x1100
	recSName    = 0x1206
	recTextType = 0x1602
	recPresent  = 0x1701
	recString   = 0x1906
	recSTrans   = 0x1A01
	recAngle    = 0x1C05
)

// streamVersion is the GDSII format version written in the HEADER record.
const streamVersion = 600

// maxXYPairs is the largest number of coordinate pairs a single XY record
// can carry: the record length field is a uint16 counting the 4 header
// bytes plus 8 bytes per pair.
const maxXYPairs = 8191

// recordWriter emits GDSII records onto an io.Writer, retaining the first
// error so call sites can chain writes without checking each one.
type recordWriter struct {
	w   io.Writer
	err error
}

// record writes a single record: uint16 total length, the uint16 tag, and
// the payload. The payload length must be even; str already pads.
func (rw *recordWriter) record(tag uint16, data []byte) {
	if rw.err != nil {
		return
	}
	if len(data)%2 != 0 {
		rw.err = fmt.Errorf("record 0x%04X: odd payload length %d", tag, len(data))
		return
	}
	total := 4 + len(data)
	if total > math.MaxUint16 {
		rw.err = fmt.Errorf("record 0x%04X: payload too large (%d bytes)", tag, len(data))
		return
	}
	var hdr [4]byte
	binary.BigEndian.PutUint16(hdr[0:2], uint16(total))
	binary.BigEndian.PutUint16(hdr[2:4], tag)
	if _, err := rw.w.Write(hdr[:]); err != nil {
		rw.err = err
		return
	}
	if len(data) > 0 {
		if _, err := rw.w.Write(data); err != nil {
			rw.err = err
		}
	}
}

// empty writes a record with no payload (BOUNDARY, SREF, ENDEL, ...).
func (rw *recordWriter) empty(tag uint16) {
	rw.record(tag, nil)
}

// int16s writes a record of big-endian int16 values.
func (rw *recordWriter) int16s(tag uint16, vals ...int16) {
	data := make([]byte, 2*len(vals))
	for i, v := range vals {
		binary.BigEndian.PutUint16(data[2*i:], uint16(v))
	}
	rw.record(tag, data)
}

// int32s writes a record of big-endian int32 values.
func (rw *recordWriter) int32s(tag uint16, vals ...int32) {
	data := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.BigEndian.PutUint32(data[4*i:], uint32(v))
	}
	rw.record(tag, data)
}

// real64s writes a record of 8-byte excess-64 reals.
func (rw *recordWriter) real64s(tag uint16, vals ...float64) {
	data := make([]byte, 8*len(vals))
	for i, v := range vals {
		binary.BigEndian.PutUint64(data[8*i:], real8(v))
	}
	rw.record(tag, data)
}

// str writes a string record, NUL-padded to an even byte count.
func (rw *recordWriter) str(tag uint16, s string) {
	data := []byte(s)
	if len(data)%2 != 0 {
		data = append(data, 0)
	}
	rw.record(tag, data)
}

// real8 converts a float64 to the GDSII 8-byte real: a sign bit, a 7-bit
// base-16 exponent biased by 64, and a 56-bit mantissa normalized into
// [1/16, 1). This is the one place the format predates IEEE 754.
func real8(f float64) uint64 {
	if f == 0 {
		return 0
	}
	var sign uint64
	if f < 0 {
		sign = 1 << 63
		f = -f
	}
	exp := 0
	for f >= 1 {
		f /= 16
		exp++
	}
	for f < 1.0/16 {
		f *= 16
		exp--
	}
	// f is now in [1/16, 1), so the mantissa fits in 56 bits. Rounding can
	// still carry it to exactly 1<<56; renormalize so the carry does not
	// bleed into the exponent field.
	mantissa := uint64(f*(1<<56) + 0.5)
	if mantissa >= 1<<56 {
		mantissa >>= 4
		exp++
	}
	return sign | uint64(exp+64)<<56 | mantissa
}
