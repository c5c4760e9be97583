package misc

import (
	"bytes"
	"encoding/gob"
)

func EncodeToBytes(data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	err := enc.Encode(data)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeFromBytes(data []byte, a any) error {
	buf := bytes.NewBuffer(data)
	dec := gob.NewDecoder(buf)
	err := dec.Decode(a)
	return err
}

func CopyBytes(a []byte) []byte {
	b := make([]byte, len(a))
	copy(b, a)
	return b
}
