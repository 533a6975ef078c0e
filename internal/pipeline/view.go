package pipeline

import (
	"net/http"

	derrors "git.home.luguber.info/inful/postserve/internal/foundation/errors"
	"git.home.luguber.info/inful/postserve/internal/post"
)

// FailureMessage is the only error text end users ever see.
const FailureMessage = "Oh no! Something is not right"

// View is everything needed to render one post page.
type View struct {
	CurrentPost post.Post
	ContentHTML string
	SeeAlso     []post.Link
	// DateUpdated is CurrentPost.Updated in DateLayout, "" when unknown.
	DateUpdated string
	// Description comes from the optional frontmatter of the body.
	Description string
	// Source names the source that served the view.
	Source      string
	Fingerprint string
}

// ErrorView is the terminal page shown when no source could serve a view.
type ErrorView struct {
	Message string
	Status  int
}

// FailureView maps a pipeline error to the generic page. The error itself is
// for logs only.
func FailureView(err error) ErrorView {
	status := http.StatusServiceUnavailable
	if derrors.HasCategory(err, derrors.CategoryInternal) {
		status = http.StatusInternalServerError
	}
	return ErrorView{Message: FailureMessage, Status: status}
}
