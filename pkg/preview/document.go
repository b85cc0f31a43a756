package preview

import "github.com/yaklabco/mdview/pkg/mdast"

// ErrorDocument returns a document consisting of a single paragraph that
// reports err, so failures render through the ordinary block path.
func ErrorDocument(err error) []mdast.Block {
	message := "unknown error"
	if err != nil {
		message = err.Error()
	}
	return []mdast.Block{
		mdast.Paragraph{Content: mdast.InlineContent{
			mdast.Bold("Error:"),
			mdast.Text(" " + message),
		}},
	}
}
