package blob

import "fmt"

// DocumentKey is the canonical key for a source-document scan attached to a
// saved return.
func DocumentKey(returnID, documentID string) string {
	return fmt.Sprintf("returns/%s/docs/%s", returnID, documentID)
}

// FilledFormKey is the canonical key for a filled-form artifact produced for
// a saved return.
func FilledFormKey(returnID, form string) string {
	return fmt.Sprintf("returns/%s/forms/%s.pdf", returnID, form)
}
