package proto

import "encoding/binary"

// ErrorPayload encodes a MsgError payload.
//
// Layout (little-endian):
//   - u16: code
//   - u16: kind of the request that failed
//   - u32: request ID (0 when the request had none)
//   - bytes: optional detail
func ErrorPayload(code ErrCode, ref Kind, requestID uint32, detail []byte) []byte {
	buf := make([]byte, 8+len(detail))
	binary.LittleEndian.PutUint16(buf[0:2], uint16(code))
	binary.LittleEndian.PutUint16(buf[2:4], uint16(ref))
	binary.LittleEndian.PutUint32(buf[4:8], requestID)
	copy(buf[8:], detail)
	return buf
}

// DecodeErrorPayload decodes an ErrorPayload.
func DecodeErrorPayload(b []byte) (code ErrCode, ref Kind, requestID uint32, detail []byte, ok bool) {
	if len(b) < 8 {
		return 0, 0, 0, nil, false
	}
	code = ErrCode(binary.LittleEndian.Uint16(b[0:2]))
	ref = Kind(binary.LittleEndian.Uint16(b[2:4]))
	requestID = binary.LittleEndian.Uint32(b[4:8])
	return code, ref, requestID, b[8:], true
}
