package services

import (
	"html/template"

	"commentbox/internal/models"
	"commentbox/internal/utils"
)

// CommentNode is one comment plus its nested replies, shaped for the JSON API.
type CommentNode struct {
	models.Comment
	TextHTML template.HTML  `json:"text_html"`
	Replies  []*CommentNode `json:"replies"`
}

// NewCommentNode wraps a freshly stored comment with an empty reply list.
func NewCommentNode(comment models.Comment) *CommentNode {
	return &CommentNode{
		Comment:  comment,
		TextHTML: utils.RenderMarkdown(comment.Text),
		Replies:  make([]*CommentNode, 0),
	}
}

// BuildCommentTree assembles the flat comment rows into a forest of reply
// trees. Both root order and reply order follow the input order. A comment
// whose parent id refers to a row not present in the input is dropped from
// the result entirely.
//
// The construction is two-pass rather than a recursive descent, so a cyclic
// parent chain cannot loop it; such rows simply end up unreachable from any
// root and are therefore not emitted.
func BuildCommentTree(comments []models.Comment) []*CommentNode {
	nodes := make(map[string]*CommentNode, len(comments))
	for _, comment := range comments {
		nodes[comment.ID] = NewCommentNode(comment)
	}

	roots := make([]*CommentNode, 0)
	for _, comment := range comments {
		node := nodes[comment.ID]
		if comment.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*comment.ParentID]; ok {
			parent.Replies = append(parent.Replies, node)
		}
		// orphan: referenced parent is gone, omit silently
	}
	return roots
}
