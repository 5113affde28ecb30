package asset

import (
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// ContentTypeWasm is sent with every binary asset response so browsers can
// compile the module with WebAssembly.instantiateStreaming.
const ContentTypeWasm = "application/wasm"

const (
	DefaultIndex  = "index.html"
	DefaultBinary = "./pkg/wasm_demo_bg.wasm"
)

// Rule maps a request path onto one of two files: "/" gets Index,
// everything else gets Binary.
type Rule struct {
	Index  string
	Binary string
}

// Selection is the file chosen for one request.
type Selection struct {
	Name        string
	ContentType string // empty for the index page
}

func DefaultRule() Rule {
	return Rule{Index: DefaultIndex, Binary: DefaultBinary}
}

// Select applies the rule to a raw request target. Only the exact target "/"
// is the index; "/?v=1" is not. Nothing else is recognized or validated.
func (r Rule) Select(target string) Selection {
	if target == "/" {
		return Selection{Name: r.Index}
	}
	return Selection{Name: r.Binary, ContentType: ContentTypeWasm}
}

// Files returns both file names the rule can select.
func (r Rule) Files() []string {
	return []string{r.Index, r.Binary}
}

// OpenRoot returns the on-disk filesystem the rule's paths are resolved against.
func OpenRoot(root string) billy.Filesystem {
	if root == "" {
		root = "."
	}
	return osfs.New(root)
}
