package http1

import (
	"path/filepath"
	"strings"

	"github.com/indigo-web/static/http"
)

// Parse builds a request out of a complete frame, as returned by Detect. The frame is
// copied, so the caller is free to reuse its buffer right after the call. Parse never fails:
// anything wrong with the request is found by the validation afterwards.
func Parse(frame []byte, root string) *http.Request {
	request := http.NewRequest()
	request.Root = nativeSeparators(root)

	head, body, _ := strings.Cut(string(frame), separator)
	lines := splitLines(head)
	if len(lines) > 0 {
		tokens := strings.Split(lines[0], " ")
		request.Method = tokens[0]
		if len(tokens) > 1 {
			request.Target = tokens[1]
		}
		if len(tokens) > 2 {
			request.ProtocolToken = tokens[2]
		}

		for _, line := range lines[1:] {
			request.Headers.Set(splitHeader(line))
		}
	}

	request.Normalized = nativeSeparators(request.Target)
	request.Path = filepath.Join(request.Root, request.Normalized)
	request.Extension = strings.ToLower(filepath.Ext(request.Path))

	if isChunked(request.Headers.Value("transfer-encoding")) {
		var decoded []byte
		_, _, _ = walkChunked([]byte(body), func(chunk []byte) {
			decoded = append(decoded, chunk...)
		})
		request.Body = decoded
	} else if len(body) > 0 {
		request.Body = []byte(body)
	}

	return request
}

func nativeSeparators(path string) string {
	if filepath.Separator == '/' {
		return strings.ReplaceAll(path, `\`, "/")
	}

	return strings.ReplaceAll(path, "/", string(filepath.Separator))
}
