package idtoolkit

// Version is the library version, reported to the Identity Toolkit API
// through the X-Client-Version header on every request.
const Version = "0.1.0"

// clientVersion is the full header value identifying this SDK generation.
const clientVersion = "Go/Admin/" + Version
