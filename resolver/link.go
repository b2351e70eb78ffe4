package resolver

import "strings"

const (
	httpsScheme = "https://"
	ipfsScheme  = "ipfs://"
	ipfsPath    = "ipfs/"
)

// LinkToHTTPS converts a metadata image link into a fetchable url.
// https links pass through, ipfs links are rewritten onto the gateway and
// anything else has no usable image, reported by false.
func LinkToHTTPS(link, gateway string) (string, bool) {
	switch {
	case strings.HasPrefix(link, httpsScheme):
		return link, true
	case strings.HasPrefix(link, ipfsScheme):
		cid := strings.TrimPrefix(link, ipfsScheme)
		// ipfs://ipfs/<cid> is common in the wild.
		if i := strings.LastIndex(cid, ipfsPath); i >= 0 {
			cid = cid[i+len(ipfsPath):]
		}
		if cid == "" {
			return "", false
		}
		return strings.TrimRight(gateway, "/") + "/" + cid, true
	}

	return "", false
}
