package assembly

import (
	"bytes"
	"fmt"

	"github.com/signadot/descmerge/encode"
	"github.com/signadot/descmerge/mappings"
	"github.com/signadot/descmerge/merge"
	"github.com/signadot/descmerge/parse"
)

// Handler consumes the files it handles and replaces them with merged
// files when the assembly is finished.
type Handler interface {
	Name() string
	Handles(path string) bool
	Add(path string, data []byte) error
	// Finish returns the merged files and resets the handler.
	Finish() ([]Entry, error)
}

type xmlHandler struct {
	session *merge.Session
	opts    []encode.EncodeOption
}

// XMLHandler feeds the files a descriptor family matches through a merge
// session.
func XMLHandler(f merge.Family, opts ...encode.EncodeOption) Handler {
	return &xmlHandler{session: merge.NewSession(f), opts: opts}
}

func (h *xmlHandler) Name() string { return h.session.Family().Name() }

func (h *xmlHandler) Handles(path string) bool { return h.session.Matches(path) }

func (h *xmlHandler) Add(path string, data []byte) error {
	doc, err := parse.Parse(data)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", merge.ErrMalformedInput, path, err)
	}
	return h.session.Accept(path, doc)
}

func (h *xmlHandler) Finish() ([]Entry, error) {
	outs, err := h.session.Finalize()
	if err != nil {
		return nil, err
	}
	res := make([]Entry, 0, len(outs))
	for _, out := range outs {
		buf := bytes.NewBuffer(nil)
		if err := encode.Encode(out.Doc, buf, h.opts...); err != nil {
			return nil, fmt.Errorf("error encoding %s: %w", out.Path, err)
		}
		res = append(res, Entry{Path: out.Path, Data: buf.Bytes()})
	}
	return res, nil
}

type mappingsHandler struct {
	set *mappings.Set
}

// MappingsHandler merges resource mapping property files.
func MappingsHandler(s *mappings.Set) Handler {
	return &mappingsHandler{set: s}
}

func (h *mappingsHandler) Name() string { return h.set.Name() }

func (h *mappingsHandler) Handles(path string) bool { return h.set.Matches(path) }

func (h *mappingsHandler) Add(path string, data []byte) error {
	h.set.Add(path, data)
	return nil
}

func (h *mappingsHandler) Finish() ([]Entry, error) {
	data, ok := h.set.Finish()
	if !ok {
		return nil, nil
	}
	return []Entry{{Path: h.set.Path(), Data: data}}, nil
}
