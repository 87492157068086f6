// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package decode

import (
	"errors"
)

// The "compress" coding is the output of the Unix compress utility: a
// three byte header followed by LZW codes of 9 to 16 bits packed least
// significant bit first. The standard library's compress/lzw reads the
// GIF/TIFF flavor, which stops at 12 bits and knows neither the header
// nor the code group padding below, so it cannot be used here.

const (
	compressMagic0 = 0x1f
	compressMagic1 = 0x9d
	compressBlock  = 0x80
	compressMaxBit = 0x1f
	compressClear  = 256
)

var (
	errCompressHeader = errors.New("not in compress format")
	errCompressFlags  = errors.New("unsupported compress flags")
	errCompressTrunc  = errors.New("premature end of compressed data")
	errCompressCode   = errors.New("invalid compress code")
)

func uncompress(b []byte) ([]byte, error) {
	if len(b) < 3 || b[0] != compressMagic0 || b[1] != compressMagic1 {
		return nil, errCompressHeader
	}
	flags := b[2]
	if flags&0x60 != 0 {
		return nil, errCompressFlags
	}
	maxBits := uint(flags & compressMaxBit)
	if maxBits < 9 || maxBits > 16 {
		return nil, errCompressFlags
	}
	if maxBits == 9 {
		// Nine really means ten in files written by compress.
		maxBits = 10
	}
	block := flags&compressBlock != 0

	data := b[3:]
	if len(data) == 0 {
		return []byte{}, nil
	}
	if len(data) < 2 {
		return nil, errCompressTrunc
	}

	var (
		prefix = make([]uint16, 1<<16)
		suffix = make([]byte, 1<<16)
		stack  = make([]byte, 0, 1<<16)
		out    = make([]byte, 0, len(data)*3)
	)

	bits := uint(9)
	mask := uint32(1<<bits - 1)
	end := uint32(255)
	if block {
		end = 256
	}

	// The first code is a literal and creates no table entry.
	buf := uint32(data[0]) | uint32(data[1])<<8
	prev := buf & mask
	buf >>= bits
	left := 16 - bits
	if prev > 255 {
		return nil, errCompressCode
	}
	final := byte(prev)
	out = append(out, final)

	mark, next := 0, 2
	// The Unix compress tool reads codes in groups of bits bytes and
	// discards the rest of a group when the code width changes.
	flush := func() {
		if rem := (next - mark) % int(bits); rem != 0 {
			next += int(bits) - rem
			if next > len(data) {
				next = len(data)
			}
		}
		buf, left = 0, 0
		mark = next
	}

	for next < len(data) || left >= bits {
		if end >= mask && bits < maxBits {
			flush()
			bits++
			mask = mask<<1 | 1
		}

		if left < bits {
			if next >= len(data) {
				break
			}
			buf |= uint32(data[next]) << left
			next++
			left += 8
			if left < bits {
				if next >= len(data) {
					return nil, errCompressTrunc
				}
				buf |= uint32(data[next]) << left
				next++
				left += 8
			}
		}
		code := buf & mask
		buf >>= bits
		left -= bits

		if code == compressClear && block {
			flush()
			bits = 9
			mask = 1<<bits - 1
			end = 255
			continue
		}

		temp := code
		stack = stack[:0]
		if code > end {
			if code != end+1 || prev > end {
				return nil, errCompressCode
			}
			stack = append(stack, final)
			code = prev
		}
		for code >= 256 {
			stack = append(stack, suffix[code])
			code = uint32(prefix[code])
		}
		stack = append(stack, byte(code))
		final = byte(code)

		if end < mask {
			end++
			prefix[end] = uint16(prev)
			suffix[end] = final
		}
		prev = temp

		for i := len(stack) - 1; i >= 0; i-- {
			out = append(out, stack[i])
		}
	}

	return out, nil
}
