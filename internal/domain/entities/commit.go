package entities

import "strings"

// Commit is a version-control commit as shown in reports.
type Commit struct {
	Hash    string
	Message string
}

// Subject returns the first line of the commit message.
func (c Commit) Subject() string {
	subject, _, _ := strings.Cut(c.Message, "\n")
	return strings.TrimSpace(subject)
}

// ShortHash returns the first seven characters of the hash.
func (c Commit) ShortHash() string {
	const shortLen = 7
	if len(c.Hash) <= shortLen {
		return c.Hash
	}
	return c.Hash[:shortLen]
}
