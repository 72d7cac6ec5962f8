// Package libio provides small binary stream helpers with latched errors:
// a failed read or write sets Err and turns every later call into a no-op,
// so a whole header can be read or written before checking once.
package libio

import (
	"encoding/binary"
	"io"
)

type BinaryReader struct {
	Order binary.ByteOrder
	Src   io.Reader
	// Index is the stream offset after the last successful read,
	// LastIndex the offset where it started. Useful in error messages.
	Index     int
	LastIndex int
	Err       error
}

// ReadRef reads into data, which must be a pointer to a fixed-size value
// as understood by encoding/binary.
func (br *BinaryReader) ReadRef(data any) (ok bool) {
	if br.Err != nil {
		return false
	}
	err := binary.Read(br.Src, br.Order, data)
	br.Err = err
	br.LastIndex = br.Index
	if err == nil {
		br.Index += binary.Size(data)
	}
	return err == nil
}

func (br *BinaryReader) Read(p []byte) (n int, err error) {
	return br.Src.Read(p)
}

type BinaryWriter struct {
	Order binary.ByteOrder
	Dst   io.Writer
	Err   error
}

// WriteRef writes data, which must be a fixed-size value as understood by
// encoding/binary.
func (bw *BinaryWriter) WriteRef(data any) (ok bool) {
	if bw.Err != nil {
		return false
	}
	err := binary.Write(bw.Dst, bw.Order, data)
	bw.Err = err
	return err == nil
}

func (bw *BinaryWriter) Write(p []byte) (n int, err error) {
	return bw.Dst.Write(p)
}
