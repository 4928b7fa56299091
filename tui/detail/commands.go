package detail

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/termblog/domain"
	"github.com/CrestNiraj12/termblog/follow"
)

func (m Model) fetchPost() tea.Cmd {
	posts := m.deps.Posts
	id := m.postID
	return func() tea.Msg {
		post, err := posts.PostDetail(context.Background(), id)
		return LoadedMsg{ID: id, Post: post, Err: err}
	}
}

func (m Model) fetchFollowStatus(target domain.ID) tea.Cmd {
	follows := m.deps.Follows
	return func() tea.Msg {
		following, err := follows.IsFollowing(context.Background(), target)
		return followStatusMsg{TargetID: target, Following: following, Err: err}
	}
}

func (m Model) sendFollowToggle(req follow.Request) tea.Cmd {
	follows := m.deps.Follows
	return func() tea.Msg {
		res, err := follows.ToggleFollow(context.Background(), req.TargetID, req.WasFollowing)
		return followResultMsg{TargetID: req.TargetID, Result: res, Err: err}
	}
}

func (m Model) submitRoot(content string) tea.Cmd {
	submitter := m.submitter
	postID := m.postID
	return func() tea.Msg {
		c, err := submitter.SubmitRoot(context.Background(), postID, content)
		return commentSubmittedMsg{PostID: postID, Comment: c, Err: err}
	}
}

func (m Model) submitReply(parentID domain.ID, content string) tea.Cmd {
	submitter := m.submitter
	postID := m.postID
	return func() tea.Msg {
		c, err := submitter.SubmitReply(context.Background(), postID, parentID, content)
		return commentSubmittedMsg{PostID: postID, ParentID: parentID, Comment: c, Err: err}
	}
}

func (m Model) fetchSummary() tea.Cmd {
	summaries := m.deps.Summaries
	id := m.postID
	return func() tea.Msg {
		s, err := summaries.Summary(context.Background(), id)
		return summaryLoadedMsg{ID: id, Summary: s, Err: err}
	}
}

func (m Model) deletePost() tea.Cmd {
	posts := m.deps.Posts
	id := m.postID
	return func() tea.Msg {
		return deleteResultMsg{ID: id, Err: posts.DeletePost(context.Background(), id)}
	}
}
