package proto

// LogLinePayload copies b into a MsgLogLine payload.
//
// Lines are UTF-8 without a trailing newline. Delivery is best-effort.
func LogLinePayload(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
