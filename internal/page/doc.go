// Package page renders the latest release into an HTML document.
//
// Documents are golang.org/x/net/html node trees. Render locates three target
// elements (the section, the version label and the links container), appends one
// download block per asset in display order, writes the version label and finally
// removes the hidden class from the section. If anything fails before the first
// mutation the document is left untouched, so the section stays hidden.
package page
