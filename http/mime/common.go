package mime

type MIME = string

const (
	OctetStream MIME = "application/octet-stream"
	Plain       MIME = "text/plain"
	HTML        MIME = "text/html"
	CSS         MIME = "text/css"
	JavaScript  MIME = "application/javascript"
	JSON        MIME = "application/json"
	XML         MIME = "text/xml"
	PDF         MIME = "application/pdf"
	GIF         MIME = "image/gif"
	JPEG        MIME = "image/jpeg"
	PNG         MIME = "image/png"
	SVG         MIME = "image/svg+xml"
	ICO         MIME = "image/x-icon"
	WEBP        MIME = "image/webp"
	AVIF        MIME = "image/avif"
	WASM        MIME = "application/wasm"
)

// Fallback is reported for every extension the table doesn't know about.
const Fallback = OctetStream
