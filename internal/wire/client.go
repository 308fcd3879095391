package wire

import "net"

// RoundTrip writes a request of msgType carrying payload to conn, then
// blocks for the single framed response. There is no multiplexing: callers
// issuing concurrent requests to the same peer need separate connections.
// If out is non-nil, the response payload is unpacked into it.
func RoundTrip(conn net.Conn, msgType MessageType, payload any, out any) (MessageType, error) {
	req, err := Pack(msgType, payload)
	if err != nil {
		return 0, err
	}
	if err := WriteMessage(conn, req); err != nil {
		return 0, err
	}
	resp, err := ReadMessage(conn)
	if err != nil {
		return 0, err
	}
	if out != nil {
		if err := Unpack(resp, out); err != nil {
			return resp.Type, err
		}
	}
	return resp.Type, nil
}
