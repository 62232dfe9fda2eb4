package templates

import (
	"github.com/a-h/templ"
	"github.com/louisbranch/sacredverses/internal/services/web/content"
	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
)

// Upload progress states, mirroring the tracker's.
const (
	UploadUploading = "uploading"
	UploadDone      = "done"
	UploadFailed    = "failed"
)

// UploadSectionView is the input of UploadSection.
type UploadSectionView struct {
	Index     int
	Title     string
	Image     content.Option[*content.Image]
	IsAdmin   bool
	CSRFToken string
	// Error is a localized validation or upload failure message.
	Error string
	// Progress resumes polling an upload started by a non-HTMX form post.
	Progress *UploadProgressView
}

// UploadProgressView is one poll of an in-flight upload.
type UploadProgressView struct {
	ID      string
	Percent int
	Status  string
}

// UploadSection renders the story image and, for admins, the upload form.
func UploadSection(loc Localizer, view UploadSectionView) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<section class="image-section"`)
		h.attr("id", uploadSectionID(view.Index))
		h.raw(`><h2>`)
		h.text(view.Title)
		h.raw(`</h2>`)
		if img, ok := view.Image.Get(); ok && img != nil {
			h.render(Image(loc, img, view.Title))
			if view.IsAdmin {
				h.raw(`<p class="muted">`)
				h.text(T(loc, "web.story.replace_hint"))
				h.raw(`</p>`)
			}
		} else {
			h.raw(`<div class="image-empty"><p>`)
			h.text(T(loc, "web.story.no_image"))
			h.raw(`</p></div>`)
		}
		if view.IsAdmin {
			h.render(UploadForm(loc, view))
		}
		h.raw(`</section>`)
	})
}

// UploadForm renders the admin upload form and its status slot.
func UploadForm(loc Localizer, view UploadSectionView) templ.Component {
	return component(func(h *htmlWriter) {
		action := routepath.StoryImage(view.Index)
		statusID := uploadStatusID(view.Index)
		h.raw(`<form method="post" enctype="multipart/form-data" class="upload-form"`)
		h.attr("action", action)
		h.attr("hx-post", action)
		h.attr("hx-target", "#"+statusID)
		h.raw(` hx-encoding="multipart/form-data" hx-swap="innerHTML">`)
		h.csrfField(view.CSRFToken)
		h.raw(`<label`)
		h.attr("for", "image-upload-"+itoa(view.Index))
		h.raw(`>`)
		h.text(T(loc, "web.story.upload_label"))
		h.raw(`</label><input type="file" name="image" accept="image/*" required`)
		h.attr("id", "image-upload-"+itoa(view.Index))
		h.raw(`><p class="hint">`)
		h.text(T(loc, "web.story.upload_formats"))
		h.raw(`</p><div class="upload-status"`)
		h.attr("id", statusID)
		h.raw(`>`)
		if view.Error != "" {
			h.render(Alert(AlertError, view.Error))
		}
		if view.Progress != nil {
			h.render(UploadProgress(loc, *view.Progress))
		}
		h.raw(`</div><button type="submit" class="btn btn-primary btn-block">`)
		h.text(T(loc, "web.story.upload_button"))
		h.raw(`</button></form>`)
	})
}

// UploadProgress renders one progress poll. In-flight uploads poll again;
// finished ones render their outcome.
func UploadProgress(loc Localizer, view UploadProgressView) templ.Component {
	return component(func(h *htmlWriter) {
		switch view.Status {
		case UploadDone:
			h.render(Alert(AlertSuccess, T(loc, "web.story.upload_done")))
		case UploadFailed:
			h.render(Alert(AlertError, T(loc, "web.story.upload_failed")))
		default:
			h.raw(`<div class="upload-progress"`)
			h.attr("hx-get", routepath.Upload(view.ID))
			h.raw(` hx-trigger="every 500ms" hx-swap="outerHTML"><progress max="100"`)
			h.attr("value", itoa(view.Percent))
			h.raw(`></progress><p class="muted center">`)
			h.text(T(loc, "web.story.upload_progress", view.Percent))
			h.raw(`</p></div>`)
		}
	})
}

func uploadSectionID(index int) string {
	return "story-image-" + itoa(index)
}

func uploadStatusID(index int) string {
	return "upload-status-" + itoa(index)
}
