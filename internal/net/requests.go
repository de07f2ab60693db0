package net

import "golang.org/x/crypto/ssh"

// Session channel request payloads (RFC 4254 section 6).

type ptyRequest struct {
	Term     string
	Columns  uint32
	Rows     uint32
	WidthPx  uint32
	HeightPx uint32
	Modes    string
}

type windowChange struct {
	Columns  uint32
	Rows     uint32
	WidthPx  uint32
	HeightPx uint32
}

type exitStatus struct {
	Status uint32
}

func parsePtyRequest(payload []byte) (ptyRequest, bool) {
	var req ptyRequest
	if err := ssh.Unmarshal(payload, &req); err != nil {
		return ptyRequest{}, false
	}
	return req, true
}

func parseWindowChange(payload []byte) (windowChange, bool) {
	var req windowChange
	if err := ssh.Unmarshal(payload, &req); err != nil {
		return windowChange{}, false
	}
	return req, true
}
