package jira

import "strings"

// Atlassian Document Format, the rich-text body shape used by the
// Jira Cloud v3 API for descriptions and comments.
type adfDoc struct {
	Type    string    `json:"type"`
	Version int       `json:"version,omitempty"`
	Content []adfNode `json:"content,omitempty"`
}

type adfNode struct {
	Type    string    `json:"type"`
	Text    string    `json:"text,omitempty"`
	Marks   []adfMark `json:"marks,omitempty"`
	Content []adfNode `json:"content,omitempty"`
}

type adfMark struct {
	Type  string            `json:"type"`
	Attrs map[string]string `json:"attrs,omitempty"`
}

// plainText flattens every text node of the document into a single
// space-joined string.
func (d adfDoc) plainText() string {
	if d.Type != "doc" {
		return ""
	}
	var texts []string
	var walk func(nodes []adfNode)
	walk = func(nodes []adfNode) {
		for _, n := range nodes {
			if n.Type == "text" && n.Text != "" {
				texts = append(texts, n.Text)
			}
			if len(n.Content) > 0 {
				walk(n.Content)
			}
		}
	}
	walk(d.Content)
	return strings.Join(texts, " ")
}

func paragraph(text string) adfNode {
	return adfNode{
		Type:    "paragraph",
		Content: []adfNode{{Type: "text", Text: text}},
	}
}

// commitCommentDoc builds the comment body for a commit annotation: a
// header paragraph, the commit message, and an optional link paragraph
// pointing at the commit.
func commitCommentDoc(commitMessage, commitURL string) adfDoc {
	content := []adfNode{
		paragraph("Commit Message:"),
		paragraph(commitMessage),
	}
	if commitURL != "" {
		content = append(content, adfNode{
			Type: "paragraph",
			Content: []adfNode{{
				Type:  "text",
				Text:  "View Commit in GitHub",
				Marks: []adfMark{{Type: "link", Attrs: map[string]string{"href": commitURL}}},
			}},
		})
	}
	return adfDoc{Type: "doc", Version: 1, Content: content}
}
