package machine

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// cpuSnapshot is the gob-serializable subset of CPU state SaveState
// round-trips; it is prefixed onto the Bus's own encoded state. gob
// streams are self-delimiting, so decoding it off a bytes.Reader leaves
// exactly the Bus's bytes behind for the next decode.
type cpuSnapshot struct {
	A, F, B, C, D, E, H, L uint8
	SP, PC                 uint16
}

func encodeCPUSnapshot(s cpuSnapshot) []byte {
	var buf bytes.Buffer
	gob.NewEncoder(&buf).Encode(s)
	return buf.Bytes()
}

func decodeCPUSnapshot(data []byte) (cpuSnapshot, []byte, error) {
	r := bytes.NewReader(data)
	var s cpuSnapshot
	if err := gob.NewDecoder(r).Decode(&s); err != nil {
		return cpuSnapshot{}, nil, fmt.Errorf("machine: decoding cpu snapshot: %w", err)
	}
	return s, data[len(data)-r.Len():], nil
}
