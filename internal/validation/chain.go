package validation

import (
	"path/filepath"
	"strings"

	"github.com/indigo-web/static/filesystem"
	"github.com/indigo-web/static/http"
	"github.com/indigo-web/static/http/method"
	"github.com/indigo-web/static/http/mime"
	"github.com/indigo-web/static/http/proto"
	"github.com/indigo-web/static/http/status"
)

// Step inspects the request and either lets it pass or returns a terminal outcome. Steps
// may fill in request and response fields on their way.
type Step func(request *http.Request, response *http.Response) http.Outcome

// Chain runs the steps in order and stops at the first failure.
type Chain struct {
	fs    filesystem.Filesystem
	mimes mime.Table
	steps []Step
}

func New(fs filesystem.Filesystem, mimes mime.Table) *Chain {
	c := &Chain{
		fs:    fs,
		mimes: mimes,
	}
	c.steps = []Step{
		checkProtocol, resolveMode, checkMethod, checkPath, c.checkExtension, c.checkFile,
	}

	return c
}

// Run validates the request and prepares the response: either the error page or the headers
// of the file. A request, which has already failed before, is left untouched and its
// outcome is returned. The error is non-nil only if the response couldn't be built.
func (c *Chain) Run(request *http.Request, response *http.Response) (http.Outcome, error) {
	if !request.Outcome.Passed() {
		return request.Outcome, nil
	}

	for _, step := range c.steps {
		if outcome := step(request, response); !outcome.Passed() {
			request.Fail(outcome)
			return outcome, response.SetErrorBody(outcome.Code, outcome.Reason)
		}
	}

	return request.Outcome, response.SetSuccessHeaders(
		status.OK, request.File.Size, request.ContentType, request.File.ModTime,
	)
}

func checkProtocol(request *http.Request, response *http.Response) http.Outcome {
	protocol := proto.Parse(request.ProtocolToken)
	if protocol == proto.Unknown {
		// answer in the version we speak and don't try to guess the framing of whatever
		// comes next
		request.Protocol, response.Protocol = proto.Default, proto.Default
		request.Mode, response.Mode = proto.Close, proto.Close

		return http.Fail(status.HTTPVersionNotSupported, status.ReasonVersion)
	}

	request.Protocol, response.Protocol = protocol, protocol
	return http.Success
}

func resolveMode(request *http.Request, response *http.Response) http.Outcome {
	mode := proto.ParseMode(request.Headers.Value("Connection"))
	if mode == proto.Unset {
		mode = request.Protocol.DefaultMode()
	}

	request.Mode, response.Mode = mode, mode
	return http.Success
}

func checkMethod(request *http.Request, _ *http.Response) http.Outcome {
	if method.Parse(request.Method) != method.Supported {
		return http.Fail(status.InternalServerError, status.ReasonMethodNotImplemented)
	}

	return http.Success
}

func checkPath(request *http.Request, _ *http.Response) http.Outcome {
	target := request.Target
	if len(target) == 0 || target[0] != '/' {
		return http.Fail(status.NotFound, status.ReasonBadPathURL)
	}

	if len(target) > 1 {
		switch target[1] {
		case '.', '~', '/':
			return http.Fail(status.Forbidden, status.ReasonRelativePath)
		}
	}

	if escapes(request.Root, request.Path) {
		return http.Fail(status.Forbidden, status.ReasonRelativePath)
	}

	return http.Success
}

// escapes reports whether the path points outside the root.
func escapes(root, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), path)
	if err != nil {
		return true
	}

	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (c *Chain) checkExtension(request *http.Request, _ *http.Response) http.Outcome {
	contentType, supported := c.mimes.Lookup(request.Extension)
	request.ContentType = contentType
	if !supported {
		return http.Fail(status.UnsupportedMediaType, status.ReasonUnsupportedMediaType)
	}

	return http.Success
}

func (c *Chain) checkFile(request *http.Request, _ *http.Response) http.Outcome {
	info, err := c.fs.Stat(request.Path)
	switch {
	case err != nil:
		return http.Fail(status.NotFound, status.ReasonNotFound)
	case info.IsDir, !info.IsFile:
		return http.Fail(status.NotFound, status.ReasonDirectoryPath)
	}

	_ = request.Close()
	stream, err := c.fs.Open(request.Path)
	if err != nil {
		return http.Fail(status.NotFound, status.ReasonFileReading)
	}

	request.Stream = stream
	request.File = http.FileInfo{
		Size:    info.Size,
		ModTime: info.ModTime,
	}

	return http.Success
}
