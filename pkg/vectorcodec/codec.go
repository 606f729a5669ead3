package vectorcodec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/x448/float16"
)

// Mode selects the on-wire precision for cached feature vectors. FP16 halves
// the cache footprint at the cost of ~3 decimal digits of precision, which is
// acceptable for featurizer outputs.
type Mode byte

const (
	FP32 Mode = 0x01
	FP16 Mode = 0x02
)

func ParseMode(name string) (Mode, error) {
	switch name {
	case "", "fp32":
		return FP32, nil
	case "fp16":
		return FP16, nil
	}
	return 0, fmt.Errorf("unknown vector codec mode %q", name)
}

// Encode serializes a feature vector as a 1-byte mode header followed by
// little-endian packed components.
func Encode(vector []float32, mode Mode) ([]byte, error) {
	switch mode {
	case FP32:
		buf := make([]byte, 1+4*len(vector))
		buf[0] = byte(FP32)
		for i, v := range vector {
			binary.LittleEndian.PutUint32(buf[1+4*i:], math.Float32bits(v))
		}
		return buf, nil
	case FP16:
		buf := make([]byte, 1+2*len(vector))
		buf[0] = byte(FP16)
		for i, v := range vector {
			binary.LittleEndian.PutUint16(buf[1+2*i:], float16.Fromfloat32(v).Bits())
		}
		return buf, nil
	}
	return nil, fmt.Errorf("unknown vector codec mode %#x", byte(mode))
}

// Decode reverses Encode. The mode is read from the header byte, so a cache
// can hold a mix of precisions across config reloads.
func Decode(data []byte) ([]float32, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty vector payload")
	}
	payload := data[1:]
	switch Mode(data[0]) {
	case FP32:
		if len(payload)%4 != 0 {
			return nil, fmt.Errorf("fp32 vector payload length %d is not a multiple of 4", len(payload))
		}
		vector := make([]float32, len(payload)/4)
		for i := range vector {
			vector[i] = math.Float32frombits(binary.LittleEndian.Uint32(payload[4*i:]))
		}
		return vector, nil
	case FP16:
		if len(payload)%2 != 0 {
			return nil, fmt.Errorf("fp16 vector payload length %d is not a multiple of 2", len(payload))
		}
		vector := make([]float32, len(payload)/2)
		for i := range vector {
			vector[i] = float16.Frombits(binary.LittleEndian.Uint16(payload[2*i:])).Float32()
		}
		return vector, nil
	}
	return nil, fmt.Errorf("unknown vector codec mode %#x", data[0])
}
