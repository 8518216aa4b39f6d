package promptbuilder

import "encoding/base64"

// encodeBase64 is the single place raw bytes become a base64 payload, so the
// transport adapter decision called out in DESIGN NOTES §9 ("binary files as
// file parts ... the transport adapter decides how to encode") has one seam.
func encodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
