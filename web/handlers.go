package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/CrestNiraj12/termblog/app"
	"github.com/CrestNiraj12/termblog/domain"
	"github.com/CrestNiraj12/termblog/follow"
	"github.com/CrestNiraj12/termblog/paging"
	"github.com/CrestNiraj12/termblog/thread"
)

// --- Page data ---

type base struct {
	Title    string
	Viewer   app.Session
	LoginURL string
}

type pageLink struct {
	Label   string
	URL     string
	Current bool
}

type pager struct {
	Links   []pageLink
	PrevURL string
	NextURL string
}

type topicOption struct {
	Name     string
	Selected bool
}

type listPage struct {
	base
	Filter domain.PostFilter
	Topics []topicOption
	Posts  []domain.PostSummary
	Total  int
	Pager  pager
	Err    string
}

type rootView struct {
	thread.RootView
	ToggleURL string
}

type postPage struct {
	base
	Post       domain.PostDetail
	Roots      []rootView
	Total      int
	MoreURL    string
	ReturnURL  string
	Notice     string
	CanFollow  bool
	Following  bool
	IsOwn      bool
	Authorized bool
}

type profilePage struct {
	base
	Profile   domain.Profile
	Follow    follow.State
	CanFollow bool
	IsOwn     bool
	Posts     []domain.PostSummary
	Pager     pager
}

type errorPage struct {
	base
	Message string
	Detail  string
}

type loginPage struct {
	base
	SessionPath string
}

func (s *Server) base(viewer app.Session, title string) base {
	return base{Title: title, Viewer: viewer, LoginURL: s.deps.LoginURL}
}

// --- Listing ---

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewer := s.session()
	q := r.URL.Query()

	filter := domain.PostFilter{
		Query:     strings.TrimSpace(q.Get("query")),
		MinRating: atoi(q.Get("minRating")),
		Topics:    nonEmpty(q["topic"]),
	}
	ctrl := paging.NewController(s.deps.PageSize, filter).GoTo(atoi(q.Get("page")))

	data := listPage{base: s.base(viewer, "Posts"), Filter: filter}
	topics, err := s.deps.Posts.Topics(ctx)
	if err != nil {
		s.logger.Printf("web: topics: %v", err)
	}
	for _, t := range topics {
		data.Topics = append(data.Topics, topicOption{Name: t.Name, Selected: slices.Contains(filter.Topics, t.Name)})
	}

	page, err := s.deps.Posts.ListPosts(ctx, ctrl.Page, ctrl.Size, filter)
	if err != nil {
		s.logger.Printf("web: list posts: %v", err)
		data.Err = "Posts could not be loaded."
		s.render(w, http.StatusBadGateway, "list.html", data)
		return
	}
	ctrl, _ = ctrl.Apply(page, ctrl.Seq)
	data.Posts = page.Content
	data.Total = ctrl.TotalElements
	data.Pager = buildPager(ctrl, func(n int) string { return listURL(filter, n) })
	s.render(w, http.StatusOK, "list.html", data)
}

func listURL(f domain.PostFilter, page int) string {
	q := url.Values{}
	if f.Query != "" {
		q.Set("query", f.Query)
	}
	if f.MinRating > 0 {
		q.Set("minRating", strconv.Itoa(f.MinRating))
	}
	for _, t := range f.Topics {
		q.Add("topic", t)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if len(q) == 0 {
		return "/posts"
	}
	return "/posts?" + q.Encode()
}

func buildPager(ctrl paging.Controller, link func(int) string) pager {
	var p pager
	for _, n := range ctrl.Window() {
		p.Links = append(p.Links, pageLink{Label: strconv.Itoa(n + 1), URL: link(n), Current: n == ctrl.Page})
	}
	if ctrl.HasPrev() {
		p.PrevURL = link(ctrl.Page - 1)
	}
	if ctrl.HasNext() {
		p.NextURL = link(ctrl.Page + 1)
	}
	return p
}

// --- Post detail ---

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewer := s.session()
	id := domain.ID(chi.URLParam(r, "id"))
	q := r.URL.Query()

	post, err := s.deps.Posts.PostDetail(ctx, id)
	if err != nil {
		s.logger.Printf("web: post %s: %v", id, err)
		s.renderError(w, viewer, "post", err)
		return
	}

	vis := thread.RestoreVisibility(atoi(q.Get("roots")), ids(q["open"]))
	created := domain.ID(strings.TrimSpace(q.Get("new")))
	layout := vis.Layout(promoteRoot(thread.Build(post.Comments), created))

	data := postPage{
		base:       s.base(viewer, post.Title),
		Post:       post,
		Total:      layout.Total,
		ReturnURL:  postURL(id, vis, created),
		Notice:     noticeText(q.Get("notice")),
		Authorized: viewer.Authenticated(),
	}
	for _, rv := range layout.Roots {
		view := rootView{RootView: rv}
		if rv.ToggleLabel != "" {
			view.ToggleURL = postURL(id, vis.ToggleReplies(rv.Comment.ID), created) + "#comment-" + url.PathEscape(rv.Comment.ID.String())
		}
		data.Roots = append(data.Roots, view)
	}
	if layout.HasMoreRoots {
		data.MoreURL = postURL(id, vis.ShowMoreRoots(), created) + "#comments"
	}

	if post.Author != nil && !post.Author.ID.IsZero() {
		data.IsOwn = viewer.IsViewer(post.Author.ID)
		if viewer.Authenticated() && !data.IsOwn {
			following, err := s.deps.Follows.IsFollowing(ctx, post.Author.ID)
			if err != nil {
				s.logger.Printf("web: follow status %s: %v", post.Author.ID, err)
			} else {
				data.CanFollow = true
				data.Following = following
			}
		}
	}
	s.render(w, http.StatusOK, "post.html", data)
}

// postURL links to a post with the given comment visibility. A non-zero
// created id keeps that root comment listed first.
func postURL(id domain.ID, vis thread.Visibility, created domain.ID) string {
	path := "/posts/" + url.PathEscape(id.String())
	q := url.Values{}
	if !created.IsZero() {
		q.Set("new", created.String())
	}
	if vis.VisibleRoots() > thread.RootPageSize {
		q.Set("roots", strconv.Itoa(vis.VisibleRoots()))
	}
	open := vis.ExpandedIDs()
	slices.Sort(open)
	for _, o := range open {
		q.Add("open", o.String())
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// promoteRoot moves the root comment with id to the front, the place a
// freshly posted root comment takes.
func promoteRoot(roots []domain.Comment, id domain.ID) []domain.Comment {
	if id.IsZero() {
		return roots
	}
	i := slices.IndexFunc(roots, func(c domain.Comment) bool { return c.ID == id })
	if i < 0 {
		return roots
	}
	rest := slices.Delete(slices.Clone(roots), i, i+1)
	return thread.PrependRoot(rest, roots[i])
}

func (s *Server) handleComment(w http.ResponseWriter, r *http.Request) {
	viewer := s.session()
	id := domain.ID(chi.URLParam(r, "id"))
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	back := safeReturn(r.PostForm.Get("return"), "/posts/"+url.PathEscape(id.String()))

	submitter := thread.NewSubmitter(s.deps.Comments, viewer, s.logger)
	content := r.PostForm.Get("content")
	var (
		created domain.Comment
		err     error
	)
	parent := domain.ID(strings.TrimSpace(r.PostForm.Get("parentId")))
	if parent.IsZero() {
		created, err = submitter.SubmitRoot(r.Context(), id, content)
	} else {
		created, err = submitter.SubmitReply(r.Context(), id, parent, content)
	}

	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		http.Redirect(w, r, s.deps.LoginURL, http.StatusSeeOther)
	case errors.Is(err, domain.ErrEmptyComment):
		http.Redirect(w, r, withParam(back, "notice", "empty")+"#comments", http.StatusSeeOther)
	case err != nil:
		// Already logged by the submitter; the page is shown unchanged.
		http.Redirect(w, r, back+"#comments", http.StatusSeeOther)
	default:
		target := back
		if parent.IsZero() && !created.ID.IsZero() {
			target = withParam(stripParam(back, "new"), "new", created.ID.String())
		}
		http.Redirect(w, r, target+"#comment-"+url.PathEscape(created.ID.String()), http.StatusSeeOther)
	}
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	id := domain.ID(chi.URLParam(r, "id"))
	summary, err := s.deps.Summaries.Summary(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrNoSummary):
		s.render(w, http.StatusOK, "summary.html", "")
	case err != nil:
		s.logger.Printf("web: summary %s: %v", id, err)
		http.Error(w, "Summary unavailable", http.StatusBadGateway)
	default:
		s.render(w, http.StatusOK, "summary.html", summary)
	}
}

// --- Profiles ---

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewer := s.session()
	id := domain.ID(chi.URLParam(r, "id"))

	profile, err := s.deps.Users.UserByID(ctx, id)
	if err != nil {
		s.logger.Printf("web: profile %s: %v", id, err)
		s.renderError(w, viewer, "profile", err)
		return
	}

	rec, err := s.loadFollow(ctx, viewer, id)
	if err != nil {
		s.logger.Printf("web: follow state %s: %v", id, err)
	}

	ref := profile.Ref()
	data := profilePage{
		base:    s.base(viewer, domain.DisplayName(&ref)),
		Profile: profile,
		Follow:  rec.State(),
		IsOwn:   viewer.IsViewer(id),
	}
	data.CanFollow = viewer.Authenticated() && !data.IsOwn

	ctrl := paging.NewController(s.deps.PageSize, domain.PostFilter{}).GoTo(atoi(r.URL.Query().Get("page")))
	page, err := s.deps.Posts.UserPosts(ctx, id, ctrl.Page, ctrl.Size)
	if err != nil {
		s.logger.Printf("web: user posts %s: %v", id, err)
	} else {
		ctrl, _ = ctrl.Apply(page, ctrl.Seq)
		data.Posts = page.Content
		data.Pager = buildPager(ctrl, func(n int) string {
			return "/users/" + url.PathEscape(id.String()) + "?page=" + strconv.Itoa(n)
		})
	}
	s.render(w, http.StatusOK, "profile.html", data)
}

// loadFollow hydrates a reconciler from the stats and status requests.
func (s *Server) loadFollow(ctx context.Context, viewer app.Session, id domain.ID) (follow.Reconciler, error) {
	rec := follow.New(id)
	stats, err := s.deps.Follows.FollowStats(ctx, id)
	if err != nil {
		return rec, err
	}
	rec = rec.ApplyStats(stats)
	if viewer.Authenticated() && !viewer.IsViewer(id) {
		following, err := s.deps.Follows.IsFollowing(ctx, id)
		if err != nil {
			return rec, err
		}
		rec = rec.ApplyStatus(following)
	}
	return rec, nil
}

func (s *Server) handleFollow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewer := s.session()
	id := domain.ID(chi.URLParam(r, "id"))
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	back := safeReturn(r.PostForm.Get("return"), "/users/"+url.PathEscape(id.String()))

	if !viewer.Authenticated() {
		s.metrics.followToggles.WithLabelValues("unauthenticated").Inc()
		http.Redirect(w, r, s.deps.LoginURL, http.StatusSeeOther)
		return
	}
	if viewer.IsViewer(id) {
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	rec, err := s.loadFollow(ctx, viewer, id)
	if err != nil {
		s.logger.Printf("web: follow state %s: %v", id, err)
		s.metrics.followToggles.WithLabelValues("error").Inc()
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}
	_, err = rec.Toggle(viewer, func(req follow.Request) (domain.FollowToggle, error) {
		return s.deps.Follows.ToggleFollow(ctx, req.TargetID, req.WasFollowing)
	})
	if err != nil {
		s.logger.Printf("web: follow toggle %s: %v", id, err)
		s.metrics.followToggles.WithLabelValues("error").Inc()
	} else {
		s.metrics.followToggles.WithLabelValues("ok").Inc()
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "login.html", loginPage{
		base:        s.base(s.session(), "Log in"),
		SessionPath: s.deps.SessionPath,
	})
}

// --- Helpers ---

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func ids(in []string) []domain.ID {
	out := make([]domain.ID, 0, len(in))
	for _, s := range nonEmpty(in) {
		out = append(out, domain.ID(s))
	}
	return out
}

func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// safeReturn accepts only local absolute paths.
func safeReturn(target, fallback string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, `\`) {
		return fallback
	}
	return target
}

func withParam(target, key, value string) string {
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + url.QueryEscape(key) + "=" + url.QueryEscape(value)
}

// stripParam drops key from target's query, keeping the other parameters.
func stripParam(target, key string) string {
	path, raw, ok := strings.Cut(target, "?")
	if !ok {
		return target
	}
	q, err := url.ParseQuery(raw)
	if err != nil || !q.Has(key) {
		return target
	}
	q.Del(key)
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func noticeText(code string) string {
	switch code {
	case "empty":
		return "Comment cannot be empty."
	default:
		return ""
	}
}
