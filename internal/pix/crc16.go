package pix

import "fmt"

const (
	crcInit       = 0xFFFF
	crcPolynomial = 0x1021
)

// CRC16 computes the CRC16/CCITT-FALSE checksum used by BR Code payloads
// and renders it as 4 uppercase hex digits.
//
// The input must be the payload up to and including the "6304" prefix of the
// checksum field.
func CRC16(s string) string {
	return fmt.Sprintf("%04X", crc16(s))
}

func crc16(s string) uint16 {
	crc := uint16(crcInit)
	for i := 0; i < len(s); i++ {
		crc ^= uint16(s[i]) << 8
		for j := 0; j < 8; j++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ crcPolynomial
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
